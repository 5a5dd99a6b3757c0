package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/receipts/backend/internal/application/command"
	receiptapp "github.com/receipts/backend/internal/application/receipt"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, cmd command.Command) (uuid.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockCurrencyReader struct {
	mock.Mock
}

func (m *mockCurrencyReader) GetByID(ctx context.Context, id int64) (*receiptapp.CurrencyResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receiptapp.CurrencyResponse), args.Error(1)
}

func (m *mockCurrencyReader) List(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) (shared.Paginated[receiptapp.CurrencyResponse], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(shared.Paginated[receiptapp.CurrencyResponse]), args.Error(1)
}

type mockStoreReader struct {
	mock.Mock
}

func (m *mockStoreReader) GetByID(ctx context.Context, id int64) (*receiptapp.StoreResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receiptapp.StoreResponse), args.Error(1)
}

func (m *mockStoreReader) List(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) (shared.Paginated[receiptapp.StoreResponse], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(shared.Paginated[receiptapp.StoreResponse]), args.Error(1)
}

type mockReceiptReader struct {
	mock.Mock
}

func (m *mockReceiptReader) GetByID(ctx context.Context, id int64) (*receiptapp.ReceiptResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receiptapp.ReceiptResponse), args.Error(1)
}

func (m *mockReceiptReader) List(ctx context.Context, dates shared.DateRange, page shared.Pagination) (shared.Paginated[receiptapp.ReceiptResponse], error) {
	args := m.Called(ctx, dates, page)
	return args.Get(0).(shared.Paginated[receiptapp.ReceiptResponse]), args.Error(1)
}

type mockCustomizedReader struct {
	mock.Mock
}

func (m *mockCustomizedReader) GetCustomized(ctx context.Context, id int64) (*receiptapp.CustomizedInventoryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receiptapp.CustomizedInventoryResponse), args.Error(1)
}

func (m *mockCustomizedReader) ListCustomized(ctx context.Context, query receipt.InventoryQuery, page shared.Pagination) (shared.Paginated[receiptapp.CustomizedInventoryResponse], error) {
	args := m.Called(ctx, query, page)
	return args.Get(0).(shared.Paginated[receiptapp.CustomizedInventoryResponse]), args.Error(1)
}

type mockSessionManager struct {
	mock.Mock
}

func (m *mockSessionManager) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *mockSessionManager) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
