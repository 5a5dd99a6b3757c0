package persistence

import (
	"context"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCurrencyRepository implements CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByID finds a currency by its ID
func (r *GormCurrencyRepository) FindByID(ctx context.Context, id int64) (*receipt.Currency, error) {
	var currency receipt.Currency
	if err := conn(ctx, r.db).First(&currency, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &currency, nil
}

// ExistsByID checks whether a currency with the ID exists
func (r *GormCurrencyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Currency{}).Where("id = ?", id))
}

// ExistsByName checks whether a currency with the name exists
func (r *GormCurrencyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(conn(ctx, r.db).Model(&receipt.Currency{}).Where("name = ?", name))
}

// FindAll returns one page of currencies whose name contains the keyword
func (r *GormCurrencyRepository) FindAll(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) ([]receipt.Currency, int64, error) {
	build := func() *gorm.DB {
		return conn(ctx, r.db).Model(&receipt.Currency{}).Scopes(contains("name", filter.Keyword))
	}
	var currencies []receipt.Currency
	total, err := findPage(build, page, "id ASC", &currencies)
	if err != nil {
		return nil, 0, err
	}
	return currencies, total, nil
}

// Create inserts a currency
func (r *GormCurrencyRepository) Create(ctx context.Context, currency *receipt.Currency) error {
	return translateError(conn(ctx, r.db).Create(currency).Error)
}

// Save updates a currency
func (r *GormCurrencyRepository) Save(ctx context.Context, currency *receipt.Currency) error {
	return translateError(conn(ctx, r.db).Save(currency).Error)
}

// Delete deletes a currency
func (r *GormCurrencyRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&receipt.Currency{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNoRecord
	}
	return nil
}

var _ receipt.CurrencyRepository = (*GormCurrencyRepository)(nil)
