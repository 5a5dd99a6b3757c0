package persistence

import (
	"context"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory row by its ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id int64) (*receipt.Inventory, error) {
	var inv receipt.Inventory
	if err := conn(ctx, r.db).First(&inv, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &inv, nil
}

// FindLineByID loads an inventory row with its product
func (r *GormInventoryRepository) FindLineByID(ctx context.Context, id int64) (*receipt.InventoryLine, error) {
	inv, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := withProducts(conn(ctx, r.db), []receipt.Inventory{*inv})
	if err != nil {
		return nil, err
	}
	return &lines[0], nil
}

// FindLines returns one page of inventory rows with their products
func (r *GormInventoryRepository) FindLines(ctx context.Context, page shared.Pagination) ([]receipt.InventoryLine, int64, error) {
	build := func() *gorm.DB {
		return conn(ctx, r.db).Model(&receipt.Inventory{})
	}
	var inventories []receipt.Inventory
	total, err := findPage(build, page, "id ASC", &inventories)
	if err != nil {
		return nil, 0, err
	}
	lines, err := withProducts(conn(ctx, r.db), inventories)
	if err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}

// FindRefsByReceiptID returns the (inventory, product) pairs of a receipt
func (r *GormInventoryRepository) FindRefsByReceiptID(ctx context.Context, receiptID int64) ([]receipt.InventoryRef, error) {
	var refs []receipt.InventoryRef
	if err := conn(ctx, r.db).Model(&receipt.Inventory{}).
		Select("id", "product_id").
		Where("receipt_id = ?", receiptID).
		Order("id ASC").
		Scan(&refs).Error; err != nil {
		return nil, translateError(err)
	}
	return refs, nil
}

// Create inserts an inventory row
func (r *GormInventoryRepository) Create(ctx context.Context, inv *receipt.Inventory) error {
	return translateError(conn(ctx, r.db).Create(inv).Error)
}

// Save updates an inventory row
func (r *GormInventoryRepository) Save(ctx context.Context, inv *receipt.Inventory) error {
	return translateError(conn(ctx, r.db).Save(inv).Error)
}

// DeleteByIDs deletes the given inventory rows
func (r *GormInventoryRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return translateError(conn(ctx, r.db).Where("id IN ?", ids).Delete(&receipt.Inventory{}).Error)
}

// ExistsByProductID checks whether any inventory row references the product
func (r *GormInventoryRepository) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Inventory{}).Where("product_id = ?", productID))
}

// withProducts pairs inventory rows with their products using a single IN query
func withProducts(db *gorm.DB, inventories []receipt.Inventory) ([]receipt.InventoryLine, error) {
	if len(inventories) == 0 {
		return []receipt.InventoryLine{}, nil
	}
	productIDs := make([]int64, len(inventories))
	for i, inv := range inventories {
		productIDs[i] = inv.ProductID
	}
	var products []receipt.Product
	if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, translateError(err)
	}
	productByID := indexBy(products, func(p receipt.Product) int64 { return p.ID })

	lines := make([]receipt.InventoryLine, len(inventories))
	for i, inv := range inventories {
		product, ok := productByID[inv.ProductID]
		if !ok {
			return nil, shared.ErrNoRecord.WithMessage("Product of inventory not found")
		}
		lines[i] = receipt.InventoryLine{Inventory: inv, Product: product}
	}
	return lines, nil
}

var _ receipt.InventoryRepository = (*GormInventoryRepository)(nil)
