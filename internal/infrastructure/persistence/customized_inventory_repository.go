package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCustomizedInventoryRepository reads inventory rows joined with
// their product, receipt, store and currency.
type GormCustomizedInventoryRepository struct {
	db *gorm.DB
}

// NewGormCustomizedInventoryRepository creates a new GormCustomizedInventoryRepository
func NewGormCustomizedInventoryRepository(db *gorm.DB) *GormCustomizedInventoryRepository {
	return &GormCustomizedInventoryRepository{db: db}
}

const customizedInventoryJoins = "JOIN products ON products.id = inventories.product_id " +
	"JOIN receipts ON receipts.id = inventories.receipt_id " +
	"JOIN stores ON stores.id = receipts.store_id " +
	"JOIN currencies ON currencies.id = receipts.currency_id"

var customizedInventoryColumns = []string{
	"inventories.id AS inventory_id",
	"inventories.price AS price",
	"inventories.quantity AS quantity",
	"inventories.product_id AS product_id",
	"inventories.receipt_id AS receipt_id",
	"products.name AS product_name",
	"products.alias AS product_alias",
	"products.brand AS product_brand",
	"products.specification_amount AS product_specification_amount",
	"products.specification_unit AS product_specification_unit",
	"products.specification_others AS product_specification_others",
	"receipts.transaction_date AS transaction_date",
	"receipts.is_inventory_taxed AS is_inventory_taxed",
	"receipts.transaction_id AS transaction_id",
	"receipts.store_id AS store_id",
	"receipts.currency_id AS currency_id",
	"stores.name AS store_name",
	"stores.alias AS store_alias",
	"stores.branch AS store_branch",
	"stores.address AS store_address",
	"currencies.name AS currency_name",
}

type customizedInventoryRow struct {
	InventoryID                int64
	Price                      decimal.Decimal
	Quantity                   int32
	ProductID                  int64
	ReceiptID                  int64
	ProductName                string
	ProductAlias               *string
	ProductBrand               *string
	ProductSpecificationAmount *int32
	ProductSpecificationUnit   *string
	ProductSpecificationOthers *string
	TransactionDate            time.Time
	IsInventoryTaxed           bool
	TransactionID              *uuid.UUID
	StoreID                    int64
	CurrencyID                 int64
	StoreName                  string
	StoreAlias                 *string
	StoreBranch                *string
	StoreAddress               *string
	CurrencyName               string
}

func (row customizedInventoryRow) toDomain() receipt.CustomizedInventory {
	return receipt.CustomizedInventory{
		Inventory: receipt.Inventory{
			ID:        row.InventoryID,
			Price:     row.Price,
			Quantity:  row.Quantity,
			ProductID: row.ProductID,
			ReceiptID: row.ReceiptID,
		},
		Product: receipt.Product{
			ID:                  row.ProductID,
			Name:                row.ProductName,
			Alias:               row.ProductAlias,
			Brand:               row.ProductBrand,
			SpecificationAmount: row.ProductSpecificationAmount,
			SpecificationUnit:   row.ProductSpecificationUnit,
			SpecificationOthers: row.ProductSpecificationOthers,
		},
		Receipt: receipt.Receipt{
			ID:               row.ReceiptID,
			TransactionDate:  row.TransactionDate,
			IsInventoryTaxed: row.IsInventoryTaxed,
			CurrencyID:       row.CurrencyID,
			StoreID:          row.StoreID,
			TransactionID:    row.TransactionID,
		},
		Store: receipt.Store{
			ID:      row.StoreID,
			Name:    row.StoreName,
			Alias:   row.StoreAlias,
			Branch:  row.StoreBranch,
			Address: row.StoreAddress,
		},
		Currency: receipt.Currency{
			ID:   row.CurrencyID,
			Name: row.CurrencyName,
		},
	}
}

func (r *GormCustomizedInventoryRepository) base(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Table("inventories").Joins(customizedInventoryJoins)
}

// FindByID loads one customized inventory
func (r *GormCustomizedInventoryRepository) FindByID(ctx context.Context, id int64) (*receipt.CustomizedInventory, error) {
	var rows []customizedInventoryRow
	if err := r.base(ctx).
		Select(customizedInventoryColumns).
		Where("inventories.id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	if len(rows) == 0 {
		return nil, shared.ErrNoRecord
	}
	out := rows[0].toDomain()
	return &out, nil
}

// FindAll returns one page of customized inventories matching query, plus the total
func (r *GormCustomizedInventoryRepository) FindAll(ctx context.Context, query receipt.InventoryQuery, page shared.Pagination) ([]receipt.CustomizedInventory, int64, error) {
	build := func() *gorm.DB {
		return r.base(ctx).Scopes(
			contains("products.name", query.ProductName),
			contains("products.brand", query.ProductBrand),
			contains("products.alias", query.ProductAlias),
			within("receipts.transaction_date", query.Dates),
			equals("currencies.name", query.Currency),
			contains("stores.name", query.StoreName),
			contains("stores.alias", query.StoreAlias),
			equals("inventories.product_id", query.ProductID),
			equals("inventories.receipt_id", query.ReceiptID),
			equals("receipts.store_id", query.StoreID),
			equals("receipts.currency_id", query.CurrencyID),
		)
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var rows []customizedInventoryRow
	if err := build().
		Select(customizedInventoryColumns).
		Scopes(paginate(page)).
		Order("receipts.transaction_date DESC, inventories.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, 0, translateError(err)
	}

	out := make([]receipt.CustomizedInventory, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, total, nil
}

var _ receipt.CustomizedInventoryRepository = (*GormCustomizedInventoryRepository)(nil)
