package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	receiptapp "github.com/receipts/backend/internal/application/receipt"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64  { return &v }

type receiptFixture struct {
	db          *TestDB
	receipts    *receiptapp.ReceiptService
	inventories *receiptapp.InventoryService
	stores      *receiptapp.StoreService
}

func newReceiptFixture(t *testing.T) *receiptFixture {
	t.Helper()
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	return &receiptFixture{
		db:          tdb,
		receipts:    newReceiptService(tdb.DB),
		inventories: receiptapp.NewInventoryService(persistence.NewGormInventoryRepository(tdb.DB), persistence.NewGormCustomizedInventoryRepository(tdb.DB)),
		stores:      receiptapp.NewStoreService(persistence.NewGormStoreRepository(tdb.DB)),
	}
}

func newReceiptService(db *gorm.DB) *receiptapp.ReceiptService {
	return receiptapp.NewReceiptService(
		persistence.NewGormReceiptRepository(db),
		persistence.NewGormInventoryRepository(db),
		persistence.NewGormCurrencyRepository(db),
		persistence.NewGormStoreRepository(db),
		persistence.NewGormProductRepository(db),
	)
}

func sampleDraft(date time.Time) receipt.ReceiptDraft {
	return receipt.ReceiptDraft{
		TransactionDate:  date,
		IsInventoryTaxed: true,
		Currency:         receipt.CurrencyRef{Name: strPtr("JPY")},
		Store:            receipt.StoreRef{Name: strPtr("Acme"), Alias: strPtr("acme")},
		Inventories: []receipt.LineDraft{
			{Price: decimal.RequireFromString("9.99"), Quantity: 2, Product: receipt.ProductRef{Name: strPtr("Widget")}},
			{Price: decimal.RequireFromString("1.50"), Quantity: 1, Product: receipt.ProductRef{Name: strPtr("Gadget"), Brand: strPtr("Acme")}},
			{Price: decimal.RequireFromString("9.99"), Quantity: 3, Product: receipt.ProductRef{Name: strPtr("Widget")}},
		},
	}
}

func TestReceiptService_CreateAndDelete(t *testing.T) {
	skipShort(t)
	f := newReceiptFixture(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	txID := uuid.New()
	created, err := f.receipts.Create(ctx, sampleDraft(date), txID)
	require.NoError(t, err)
	assert.Equal(t, txID, created.TransactionID)

	assert.Equal(t, int64(1), f.db.Count("currencies"))
	assert.Equal(t, int64(1), f.db.Count("stores"))
	assert.Equal(t, int64(2), f.db.Count("products"), "identical product lines share one row")
	assert.Equal(t, int64(1), f.db.Count("receipts"))
	assert.Equal(t, int64(3), f.db.Count("inventories"))

	got, err := f.receipts.GetByID(ctx, created.ReceiptID)
	require.NoError(t, err)
	assert.Equal(t, txID, *got.TransactionID)
	assert.Equal(t, "JPY", got.Currency.Name)
	assert.Equal(t, "Acme", got.Store.Name)
	assert.Nil(t, got.Store.Branch)
	require.Len(t, got.Inventories, 3)
	assert.True(t, decimal.RequireFromString("9.99").Equal(got.Inventories[0].Price), "price is stored exactly")

	require.NoError(t, f.receipts.Delete(ctx, created.ReceiptID))
	for _, table := range []string{"inventories", "receipts", "products", "stores", "currencies"} {
		assert.Zero(t, f.db.Count(table), table)
	}

	err = f.receipts.Delete(ctx, created.ReceiptID)
	assert.True(t, errors.Is(err, receipt.ErrDeleteReceiptIDNotExisted))
}

func TestReceiptService_DeleteKeepsSharedReferences(t *testing.T) {
	skipShort(t)
	f := newReceiptFixture(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	first, err := f.receipts.Create(ctx, sampleDraft(date), uuid.New())
	require.NoError(t, err)
	detail, err := f.receipts.GetByID(ctx, first.ReceiptID)
	require.NoError(t, err)

	second, err := f.receipts.Create(ctx, receipt.ReceiptDraft{
		TransactionDate: date.AddDate(0, 0, 1),
		Currency:        receipt.CurrencyRef{ID: i64Ptr(detail.Currency.ID)},
		Store:           receipt.StoreRef{ID: i64Ptr(detail.Store.ID)},
		Inventories: []receipt.LineDraft{
			{Price: decimal.NewFromInt(5), Quantity: 1, Product: receipt.ProductRef{ID: i64Ptr(detail.Inventories[0].Product.ID)}},
		},
	}, uuid.New())
	require.NoError(t, err)

	require.NoError(t, f.receipts.Delete(ctx, first.ReceiptID))

	assert.Equal(t, int64(1), f.db.Count("receipts"))
	assert.Equal(t, int64(1), f.db.Count("inventories"))
	assert.Equal(t, int64(1), f.db.Count("products"), "the product still referenced survives, the other goes")
	assert.Equal(t, int64(1), f.db.Count("stores"))
	assert.Equal(t, int64(1), f.db.Count("currencies"))

	_, err = f.receipts.GetByID(ctx, second.ReceiptID)
	assert.NoError(t, err)
}

func TestReceiptService_RejectsDuplicateAttributes(t *testing.T) {
	skipShort(t)
	f := newReceiptFixture(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	_, err := f.receipts.Create(ctx, sampleDraft(date), uuid.New())
	require.NoError(t, err)

	draft := sampleDraft(date)
	draft.Currency = receipt.CurrencyRef{Name: strPtr("EUR")}
	_, err = f.receipts.Create(ctx, draft, uuid.New())
	assert.True(t, errors.Is(err, receipt.ErrStoreNameDuplicated), "a store without branch is matched by name")

	assert.Equal(t, int64(1), f.db.Count("currencies"), "nothing is written when validation fails")
	assert.Equal(t, int64(1), f.db.Count("receipts"))
}

func TestStoreRepository_UniqueIndexTreatsNullBranchAsEqual(t *testing.T) {
	skipShort(t)
	f := newReceiptFixture(t)
	ctx := context.Background()
	repo := persistence.NewGormStoreRepository(f.db.DB)

	require.NoError(t, repo.Create(ctx, &receipt.Store{Name: "Corner"}))
	err := repo.Create(ctx, &receipt.Store{Name: "Corner"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, persistence.ErrConstraintViolation))

	require.NoError(t, repo.Create(ctx, &receipt.Store{Name: "Corner", Branch: strPtr("North")}))
}

func TestReceiptService_TransactionalCreateRollsBack(t *testing.T) {
	skipShort(t)
	f := newReceiptFixture(t)
	ctx := context.Background()

	// A product inserted between validation and resolution makes the insert fail
	products := persistence.NewGormProductRepository(f.db.DB)
	svc := receiptapp.NewReceiptService(
		persistence.NewGormReceiptRepository(f.db.DB),
		persistence.NewGormInventoryRepository(f.db.DB),
		persistence.NewGormCurrencyRepository(f.db.DB),
		persistence.NewGormStoreRepository(f.db.DB),
		&racingProductRepo{GormProductRepository: products, db: f.db.DB},
	)
	svc.SetTransactor(&persistence.Database{DB: f.db.DB})

	_, err := svc.Create(ctx, sampleDraft(time.Now().UTC()), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, receipt.ErrInsertProductFailed))

	assert.Zero(t, f.db.Count("currencies"))
	assert.Zero(t, f.db.Count("stores"))
	assert.Zero(t, f.db.Count("receipts"))
	assert.Zero(t, f.db.Count("inventories"))
	assert.Equal(t, int64(1), f.db.Count("products"), "only the competing writer's row remains")
}

// racingProductRepo inserts a conflicting product, outside the transaction,
// right before the service creates its own
type racingProductRepo struct {
	*persistence.GormProductRepository
	db   *gorm.DB
	once bool
}

func (r *racingProductRepo) Create(ctx context.Context, p *receipt.Product) error {
	if !r.once {
		r.once = true
		clone := *p
		if err := r.db.WithContext(context.Background()).Create(&clone).Error; err != nil {
			return err
		}
	}
	return r.GormProductRepository.Create(ctx, p)
}

func TestInventoryService_ListCustomized(t *testing.T) {
	skipShort(t)
	f := newReceiptFixture(t)
	ctx := context.Background()
	march := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)

	_, err := f.receipts.Create(ctx, sampleDraft(march), uuid.New())
	require.NoError(t, err)
	_, err = f.receipts.Create(ctx, receipt.ReceiptDraft{
		TransactionDate: april,
		Currency:        receipt.CurrencyRef{Name: strPtr("EUR")},
		Store:           receipt.StoreRef{Name: strPtr("100% Mart")},
		Inventories: []receipt.LineDraft{
			{Price: decimal.NewFromInt(3), Quantity: 1, Product: receipt.ProductRef{Name: strPtr("Milk_1L")}},
		},
	}, uuid.New())
	require.NoError(t, err)
	_, err = f.receipts.Create(ctx, receipt.ReceiptDraft{
		TransactionDate: april,
		Currency:        receipt.CurrencyRef{Name: strPtr("USD")},
		Store:           receipt.StoreRef{Name: strPtr("1000 Mart")},
		Inventories: []receipt.LineDraft{
			{Price: decimal.NewFromInt(4), Quantity: 1, Product: receipt.ProductRef{Name: strPtr("Milk-1L")}},
		},
	}, uuid.New())
	require.NoError(t, err)

	page := shared.DefaultPagination()

	t.Run("currency is an exact match", func(t *testing.T) {
		got, err := f.inventories.ListCustomized(ctx, receipt.InventoryQuery{Currency: strPtr("JPY")}, page)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Total)
		for _, item := range got.Items {
			assert.Equal(t, "JPY", item.Currency.Name)
		}

		got, err = f.inventories.ListCustomized(ctx, receipt.InventoryQuery{Currency: strPtr("JP")}, page)
		require.NoError(t, err)
		assert.Zero(t, got.Total)
	})

	t.Run("wildcards in keywords are literal", func(t *testing.T) {
		got, err := f.inventories.ListCustomized(ctx, receipt.InventoryQuery{StoreName: strPtr("100%")}, page)
		require.NoError(t, err)
		require.Equal(t, int64(1), got.Total)
		assert.Equal(t, "100% Mart", got.Items[0].Store.Name)

		got, err = f.inventories.ListCustomized(ctx, receipt.InventoryQuery{ProductName: strPtr("Milk_")}, page)
		require.NoError(t, err)
		require.Equal(t, int64(1), got.Total)
		assert.Equal(t, "Milk_1L", got.Items[0].Product.Name)
	})

	t.Run("date range needs both ends", func(t *testing.T) {
		start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

		got, err := f.inventories.ListCustomized(ctx, receipt.InventoryQuery{Dates: shared.DateRange{Start: &start, End: &end}}, page)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Total)

		got, err = f.inventories.ListCustomized(ctx, receipt.InventoryQuery{Dates: shared.DateRange{Start: &start}}, page)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Total)
	})

	t.Run("pagination reports the full total", func(t *testing.T) {
		got, err := f.inventories.ListCustomized(ctx, receipt.InventoryQuery{}, shared.Pagination{Offset: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Total)
		assert.Len(t, got.Items, 2)
	})
}

func TestStoreService_ListByKeyword(t *testing.T) {
	skipShort(t)
	f := newReceiptFixture(t)
	ctx := context.Background()
	repo := persistence.NewGormStoreRepository(f.db.DB)

	for _, name := range []string{"Acme North", "Acme South", "Bodega"} {
		require.NoError(t, repo.Create(ctx, &receipt.Store{Name: name}))
	}

	got, err := f.stores.List(ctx, shared.KeywordFilter{Keyword: strPtr("Acme")}, shared.DefaultPagination())
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Total)

	got, err = f.stores.List(ctx, shared.KeywordFilter{Keyword: strPtr("acme")}, shared.DefaultPagination())
	require.NoError(t, err)
	assert.Zero(t, got.Total, "keyword match is case-sensitive")
}
