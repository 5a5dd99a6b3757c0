package persistence

import (
	"context"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*receipt.Product, error) {
	var product receipt.Product
	if err := conn(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// ExistsByID checks whether a product with the ID exists
func (r *GormProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Product{}).Where("id = ?", id))
}

// ExistsByAttributes checks whether a product with the same specification tuple exists
func (r *GormProductRepository) ExistsByAttributes(ctx context.Context, attrs receipt.ProductAttributes) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Product{}).
		Where("name = ?", attrs.Name).
		Scopes(
			sameAs("brand", attrs.Brand),
			sameAs("specification_amount", attrs.SpecificationAmount),
			sameAs("specification_unit", attrs.SpecificationUnit),
			sameAs("specification_others", attrs.SpecificationOthers),
		))
}

// FindAll returns one page of products whose name contains the keyword
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) ([]receipt.Product, int64, error) {
	build := func() *gorm.DB {
		return conn(ctx, r.db).Model(&receipt.Product{}).Scopes(contains("name", filter.Keyword))
	}
	var products []receipt.Product
	total, err := findPage(build, page, "id ASC", &products)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Create inserts a product
func (r *GormProductRepository) Create(ctx context.Context, product *receipt.Product) error {
	return translateError(conn(ctx, r.db).Create(product).Error)
}

// Save updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *receipt.Product) error {
	return translateError(conn(ctx, r.db).Save(product).Error)
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&receipt.Product{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNoRecord
	}
	return nil
}

var _ receipt.ProductRepository = (*GormProductRepository)(nil)
