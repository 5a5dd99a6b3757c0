package persistence

import (
	"context"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by its ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id int64) (*receipt.Receipt, error) {
	var rec receipt.Receipt
	if err := conn(ctx, r.db).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &rec, nil
}

// ExistsByID checks whether a receipt with the ID exists
func (r *GormReceiptRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Receipt{}).Where("id = ?", id))
}

// FindDetailByID loads a receipt with its currency, store and lines
func (r *GormReceiptRepository) FindDetailByID(ctx context.Context, id int64) (*receipt.ReceiptDetail, error) {
	rec, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := r.attach(ctx, []receipt.Receipt{*rec})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// FindDetails returns one page of receipts within the date range, newest first
func (r *GormReceiptRepository) FindDetails(ctx context.Context, dates shared.DateRange, page shared.Pagination) ([]receipt.ReceiptDetail, int64, error) {
	build := func() *gorm.DB {
		return conn(ctx, r.db).Model(&receipt.Receipt{}).Scopes(within("transaction_date", dates))
	}
	var receipts []receipt.Receipt
	total, err := findPage(build, page, "transaction_date DESC, id DESC", &receipts)
	if err != nil {
		return nil, 0, err
	}
	details, err := r.attach(ctx, receipts)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// attach loads currencies, stores and lines of receipts in one query per table
func (r *GormReceiptRepository) attach(ctx context.Context, receipts []receipt.Receipt) ([]receipt.ReceiptDetail, error) {
	if len(receipts) == 0 {
		return []receipt.ReceiptDetail{}, nil
	}

	receiptIDs := make([]int64, len(receipts))
	currencyIDs := make([]int64, 0, len(receipts))
	storeIDs := make([]int64, 0, len(receipts))
	for i, rec := range receipts {
		receiptIDs[i] = rec.ID
		currencyIDs = append(currencyIDs, rec.CurrencyID)
		storeIDs = append(storeIDs, rec.StoreID)
	}

	db := conn(ctx, r.db)
	var currencies []receipt.Currency
	if err := db.Where("id IN ?", currencyIDs).Find(&currencies).Error; err != nil {
		return nil, translateError(err)
	}
	var stores []receipt.Store
	if err := db.Where("id IN ?", storeIDs).Find(&stores).Error; err != nil {
		return nil, translateError(err)
	}
	var inventories []receipt.Inventory
	if err := db.Where("receipt_id IN ?", receiptIDs).Order("id ASC").Find(&inventories).Error; err != nil {
		return nil, translateError(err)
	}
	lines, err := withProducts(db, inventories)
	if err != nil {
		return nil, err
	}

	currencyByID := indexBy(currencies, func(c receipt.Currency) int64 { return c.ID })
	storeByID := indexBy(stores, func(s receipt.Store) int64 { return s.ID })
	linesByReceipt := make(map[int64][]receipt.InventoryLine, len(receipts))
	for _, line := range lines {
		linesByReceipt[line.Inventory.ReceiptID] = append(linesByReceipt[line.Inventory.ReceiptID], line)
	}

	details := make([]receipt.ReceiptDetail, len(receipts))
	for i, rec := range receipts {
		currency, ok := currencyByID[rec.CurrencyID]
		if !ok {
			return nil, shared.ErrNoRecord.WithMessage("Currency of receipt not found")
		}
		store, ok := storeByID[rec.StoreID]
		if !ok {
			return nil, shared.ErrNoRecord.WithMessage("Store of receipt not found")
		}
		recLines := linesByReceipt[rec.ID]
		if recLines == nil {
			recLines = []receipt.InventoryLine{}
		}
		details[i] = receipt.ReceiptDetail{Receipt: rec, Currency: currency, Store: store, Lines: recLines}
	}
	return details, nil
}

// Create inserts a receipt
func (r *GormReceiptRepository) Create(ctx context.Context, rec *receipt.Receipt) error {
	return translateError(conn(ctx, r.db).Create(rec).Error)
}

// Save updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, rec *receipt.Receipt) error {
	return translateError(conn(ctx, r.db).Save(rec).Error)
}

// Delete deletes a receipt
func (r *GormReceiptRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&receipt.Receipt{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNoRecord
	}
	return nil
}

// ExistsByStoreID checks whether any receipt references the store
func (r *GormReceiptRepository) ExistsByStoreID(ctx context.Context, storeID int64) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Receipt{}).Where("store_id = ?", storeID))
}

// ExistsByCurrencyID checks whether any receipt references the currency
func (r *GormReceiptRepository) ExistsByCurrencyID(ctx context.Context, currencyID int64) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Receipt{}).Where("currency_id = ?", currencyID))
}

func indexBy[T any](items []T, key func(T) int64) map[int64]T {
	out := make(map[int64]T, len(items))
	for _, item := range items {
		out[key(item)] = item
	}
	return out
}

var _ receipt.ReceiptRepository = (*GormReceiptRepository)(nil)
