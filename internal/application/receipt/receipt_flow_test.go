package receipt_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	appreceipt "github.com/receipts/backend/internal/application/receipt"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/infrastructure/persistence"
	"github.com/receipts/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type flowFixture struct {
	db       *gorm.DB
	receipts *appreceipt.ReceiptService
}

func newFlowFixture(t *testing.T, transactional bool) *flowFixture {
	t.Helper()
	db := testutil.NewReceiptDB(t)

	svc := appreceipt.NewReceiptService(
		persistence.NewGormReceiptRepository(db),
		persistence.NewGormInventoryRepository(db),
		persistence.NewGormCurrencyRepository(db),
		persistence.NewGormStoreRepository(db),
		persistence.NewGormProductRepository(db),
	)
	if transactional {
		svc.SetTransactor(&persistence.Database{DB: db})
	}
	return &flowFixture{db: db, receipts: svc}
}

func (f *flowFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func acmeWidgetDraft(currencyID int64) receipt.ReceiptDraft {
	return receipt.ReceiptDraft{
		TransactionDate:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		IsInventoryTaxed: true,
		Currency:         receipt.CurrencyRef{ID: int64Ptr(currencyID)},
		Store:            receipt.StoreRef{Name: strPtr("Acme")},
		Inventories: []receipt.LineDraft{
			{Price: decimal.RequireFromString("9.99"), Quantity: 2, Product: receipt.ProductRef{Name: strPtr("Widget")}},
		},
	}
}

func TestReceiptFlow(t *testing.T) {
	for _, transactional := range []bool{false, true} {
		name := "plain"
		if transactional {
			name = "transactional"
		}
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			f := newFlowFixture(t, transactional)
			usd := receipt.Currency{Name: "USD"}
			require.NoError(t, f.db.Create(&usd).Error)

			txID := uuid.New()
			result, err := f.receipts.Create(ctx, acmeWidgetDraft(usd.ID), txID)
			require.NoError(t, err)
			assert.Equal(t, txID, result.TransactionID)

			assert.Equal(t, int64(1), f.count(t, &receipt.Currency{}))
			assert.Equal(t, int64(1), f.count(t, &receipt.Store{}))
			assert.Equal(t, int64(1), f.count(t, &receipt.Product{}))
			assert.Equal(t, int64(1), f.count(t, &receipt.Receipt{}))
			assert.Equal(t, int64(1), f.count(t, &receipt.Inventory{}))

			detail, err := f.receipts.GetByID(ctx, result.ReceiptID)
			require.NoError(t, err)
			assert.Equal(t, usd.ID, detail.Currency.ID)
			assert.Equal(t, "Acme", detail.Store.Name)
			require.Len(t, detail.Inventories, 1)
			assert.Equal(t, "9.99", detail.Inventories[0].Price.String())
			assert.Equal(t, int32(2), detail.Inventories[0].Quantity)

			// the identical payload now describes an existing store
			_, err = f.receipts.Create(ctx, acmeWidgetDraft(usd.ID), uuid.New())
			assert.ErrorIs(t, err, receipt.ErrStoreNameDuplicated)
			assert.Equal(t, int64(1), f.count(t, &receipt.Receipt{}))

			require.NoError(t, f.receipts.Delete(ctx, result.ReceiptID))
			assert.Equal(t, int64(0), f.count(t, &receipt.Inventory{}))
			assert.Equal(t, int64(0), f.count(t, &receipt.Product{}))
			assert.Equal(t, int64(0), f.count(t, &receipt.Receipt{}))
			assert.Equal(t, int64(0), f.count(t, &receipt.Store{}))
			assert.Equal(t, int64(0), f.count(t, &receipt.Currency{}))

			assert.ErrorIs(t, f.receipts.Delete(ctx, result.ReceiptID), receipt.ErrDeleteReceiptIDNotExisted)
		})
	}
}

func TestReceiptFlow_DeleteKeepsSharedReferences(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture(t, false)

	first, err := f.receipts.Create(ctx, receipt.ReceiptDraft{
		TransactionDate: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Currency:        receipt.CurrencyRef{Name: strPtr("USD")},
		Store:           receipt.StoreRef{Name: strPtr("Acme")},
		Inventories: []receipt.LineDraft{
			{Price: decimal.RequireFromString("1.00"), Quantity: 1, Product: receipt.ProductRef{Name: strPtr("Milk")}},
			{Price: decimal.RequireFromString("2.00"), Quantity: 1, Product: receipt.ProductRef{Name: strPtr("Bread")}},
		},
	}, uuid.New())
	require.NoError(t, err)

	firstDetail, err := f.receipts.GetByID(ctx, first.ReceiptID)
	require.NoError(t, err)
	milkID := firstDetail.Inventories[0].Product.ID

	second, err := f.receipts.Create(ctx, receipt.ReceiptDraft{
		TransactionDate: time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
		Currency:        receipt.CurrencyRef{ID: int64Ptr(firstDetail.Currency.ID)},
		Store:           receipt.StoreRef{ID: int64Ptr(firstDetail.Store.ID)},
		Inventories: []receipt.LineDraft{
			{Price: decimal.RequireFromString("1.10"), Quantity: 3, Product: receipt.ProductRef{ID: int64Ptr(milkID)}},
		},
	}, uuid.New())
	require.NoError(t, err)

	require.NoError(t, f.receipts.Delete(ctx, first.ReceiptID))

	var products []receipt.Product
	require.NoError(t, f.db.Find(&products).Error)
	require.Len(t, products, 1)
	assert.Equal(t, "Milk", products[0].Name)
	assert.Equal(t, int64(1), f.count(t, &receipt.Store{}))
	assert.Equal(t, int64(1), f.count(t, &receipt.Currency{}))

	remaining, err := f.receipts.GetByID(ctx, second.ReceiptID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", remaining.Store.Name)

	list, err := f.receipts.List(ctx, shared.DateRange{}, shared.Pagination{Offset: -5, Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, shared.MaxLimit, list.Limit)
}

func TestReceiptFlow_FieldLimitsCheckedBeforeWrites(t *testing.T) {
	long := func(n int) *string { return strPtr(strings.Repeat("x", n)) }

	tests := []struct {
		name    string
		mutate  func(d *receipt.ReceiptDraft)
		wantErr error
	}{
		{
			name:    "currency name",
			mutate:  func(d *receipt.ReceiptDraft) { d.Currency = receipt.CurrencyRef{Name: long(65)} },
			wantErr: receipt.ErrCurrencyInvalid,
		},
		{
			name:    "store alias",
			mutate:  func(d *receipt.ReceiptDraft) { d.Store.Alias = long(201) },
			wantErr: receipt.ErrStoreInvalid,
		},
		{
			name: "product name on a later line",
			mutate: func(d *receipt.ReceiptDraft) {
				d.Inventories = append(d.Inventories, receipt.LineDraft{
					Price: decimal.RequireFromString("1.50"), Quantity: 1,
					Product: receipt.ProductRef{Name: long(201)},
				})
			},
			wantErr: receipt.ErrProductInvalid,
		},
		{
			name: "product brand",
			mutate: func(d *receipt.ReceiptDraft) {
				d.Inventories[0].Product.Brand = long(201)
			},
			wantErr: receipt.ErrProductInvalid,
		},
		{
			name: "product specification unit",
			mutate: func(d *receipt.ReceiptDraft) {
				d.Inventories[0].Product.SpecificationUnit = long(33)
			},
			wantErr: receipt.ErrProductInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFlowFixture(t, false)
			usd := receipt.Currency{Name: "USD"}
			require.NoError(t, f.db.Create(&usd).Error)

			draft := acmeWidgetDraft(usd.ID)
			tt.mutate(&draft)

			_, err := f.receipts.Create(ctx, draft, uuid.New())
			require.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, int64(1), f.count(t, &receipt.Currency{}))
			assert.Equal(t, int64(0), f.count(t, &receipt.Store{}))
			assert.Equal(t, int64(0), f.count(t, &receipt.Product{}))
			assert.Equal(t, int64(0), f.count(t, &receipt.Receipt{}))
			assert.Equal(t, int64(0), f.count(t, &receipt.Inventory{}))
		})
	}
}

func TestReceiptFlow_MultibyteNames(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture(t, false)

	draft := acmeWidgetDraft(0)
	draft.Currency = receipt.CurrencyRef{Name: strPtr(strings.Repeat("元", 30))}
	draft.Inventories[0].Product.Name = strPtr(strings.Repeat("蘋", 70))

	_, err := f.receipts.Create(ctx, draft, uuid.New())
	require.NoError(t, err)

	var product receipt.Product
	require.NoError(t, f.db.First(&product).Error)
	assert.Equal(t, strings.Repeat("蘋", 70), product.Name)
	assert.Equal(t, int64(1), f.count(t, &receipt.Inventory{}))
}
