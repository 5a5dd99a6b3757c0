package receipt

import (
	"context"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCurrencyRepository is a mock implementation of CurrencyRepository
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindByID(ctx context.Context, id int64) (*receipt.Currency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCurrencyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCurrencyRepository) FindAll(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) ([]receipt.Currency, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]receipt.Currency), args.Get(1).(int64), args.Error(2)
}

func (m *MockCurrencyRepository) Create(ctx context.Context, currency *receipt.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) Save(ctx context.Context, currency *receipt.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStoreRepository is a mock implementation of StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id int64) (*receipt.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.Store), args.Error(1)
}

func (m *MockStoreRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStoreRepository) ExistsByAttributes(ctx context.Context, attrs receipt.StoreAttributes) (bool, error) {
	args := m.Called(ctx, attrs)
	return args.Bool(0), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) ([]receipt.Store, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]receipt.Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) Create(ctx context.Context, store *receipt.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) Save(ctx context.Context, store *receipt.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*receipt.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByAttributes(ctx context.Context, attrs receipt.ProductAttributes) (bool, error) {
	args := m.Called(ctx, attrs)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) ([]receipt.Product, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]receipt.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Create(ctx context.Context, product *receipt.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Save(ctx context.Context, product *receipt.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReceiptRepository is a mock implementation of ReceiptRepository
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, id int64) (*receipt.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReceiptRepository) FindDetailByID(ctx context.Context, id int64) (*receipt.ReceiptDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.ReceiptDetail), args.Error(1)
}

func (m *MockReceiptRepository) FindDetails(ctx context.Context, dates shared.DateRange, page shared.Pagination) ([]receipt.ReceiptDetail, int64, error) {
	args := m.Called(ctx, dates, page)
	return args.Get(0).([]receipt.ReceiptDetail), args.Get(1).(int64), args.Error(2)
}

func (m *MockReceiptRepository) Create(ctx context.Context, rec *receipt.Receipt) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReceiptRepository) Save(ctx context.Context, rec *receipt.Receipt) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReceiptRepository) ExistsByStoreID(ctx context.Context, storeID int64) (bool, error) {
	args := m.Called(ctx, storeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReceiptRepository) ExistsByCurrencyID(ctx context.Context, currencyID int64) (bool, error) {
	args := m.Called(ctx, currencyID)
	return args.Bool(0), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, id int64) (*receipt.Inventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) FindLineByID(ctx context.Context, id int64) (*receipt.InventoryLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.InventoryLine), args.Error(1)
}

func (m *MockInventoryRepository) FindLines(ctx context.Context, page shared.Pagination) ([]receipt.InventoryLine, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]receipt.InventoryLine), args.Get(1).(int64), args.Error(2)
}

func (m *MockInventoryRepository) FindRefsByReceiptID(ctx context.Context, receiptID int64) ([]receipt.InventoryRef, error) {
	args := m.Called(ctx, receiptID)
	return args.Get(0).([]receipt.InventoryRef), args.Error(1)
}

func (m *MockInventoryRepository) Create(ctx context.Context, inv *receipt.Inventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInventoryRepository) Save(ctx context.Context, inv *receipt.Inventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInventoryRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockInventoryRepository) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

// MockCustomizedInventoryRepository is a mock implementation of CustomizedInventoryRepository
type MockCustomizedInventoryRepository struct {
	mock.Mock
}

func (m *MockCustomizedInventoryRepository) FindByID(ctx context.Context, id int64) (*receipt.CustomizedInventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.CustomizedInventory), args.Error(1)
}

func (m *MockCustomizedInventoryRepository) FindAll(ctx context.Context, query receipt.InventoryQuery, page shared.Pagination) ([]receipt.CustomizedInventory, int64, error) {
	args := m.Called(ctx, query, page)
	return args.Get(0).([]receipt.CustomizedInventory), args.Get(1).(int64), args.Error(2)
}

var (
	_ receipt.CurrencyRepository            = (*MockCurrencyRepository)(nil)
	_ receipt.StoreRepository               = (*MockStoreRepository)(nil)
	_ receipt.ProductRepository             = (*MockProductRepository)(nil)
	_ receipt.ReceiptRepository             = (*MockReceiptRepository)(nil)
	_ receipt.InventoryRepository           = (*MockInventoryRepository)(nil)
	_ receipt.CustomizedInventoryRepository = (*MockCustomizedInventoryRepository)(nil)
)
