package persistence

import (
	"context"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id int64) (*receipt.Store, error) {
	var store receipt.Store
	if err := conn(ctx, r.db).First(&store, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &store, nil
}

// ExistsByID checks whether a store with the ID exists
func (r *GormStoreRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Store{}).Where("id = ?", id))
}

// ExistsByAttributes checks whether a store with the same name and branch exists
func (r *GormStoreRepository) ExistsByAttributes(ctx context.Context, attrs receipt.StoreAttributes) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Store{}).
		Where("name = ?", attrs.Name).
		Scopes(sameAs("branch", attrs.Branch)))
}

// FindAll returns one page of stores whose name contains the keyword
func (r *GormStoreRepository) FindAll(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) ([]receipt.Store, int64, error) {
	build := func() *gorm.DB {
		return conn(ctx, r.db).Model(&receipt.Store{}).Scopes(contains("name", filter.Keyword))
	}
	var stores []receipt.Store
	total, err := findPage(build, page, "id ASC", &stores)
	if err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// Create inserts a store
func (r *GormStoreRepository) Create(ctx context.Context, store *receipt.Store) error {
	return translateError(conn(ctx, r.db).Create(store).Error)
}

// Save updates a store
func (r *GormStoreRepository) Save(ctx context.Context, store *receipt.Store) error {
	return translateError(conn(ctx, r.db).Save(store).Error)
}

// Delete deletes a store
func (r *GormStoreRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&receipt.Store{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNoRecord
	}
	return nil
}

var _ receipt.StoreRepository = (*GormStoreRepository)(nil)
