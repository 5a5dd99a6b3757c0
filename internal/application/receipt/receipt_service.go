package receipt

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Transactor runs fn inside a single database transaction
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReceiptService handles the receipt aggregate: creation with reference
// resolution, deletion with orphan cleanup, header updates and reads.
type ReceiptService struct {
	receiptRepo   receipt.ReceiptRepository
	inventoryRepo receipt.InventoryRepository
	currencyRepo  receipt.CurrencyRepository
	storeRepo     receipt.StoreRepository
	productRepo   receipt.ProductRepository

	currencies *CurrencyService
	stores     *StoreService
	products   *ProductService

	transactor Transactor
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receiptRepo receipt.ReceiptRepository,
	inventoryRepo receipt.InventoryRepository,
	currencyRepo receipt.CurrencyRepository,
	storeRepo receipt.StoreRepository,
	productRepo receipt.ProductRepository,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:   receiptRepo,
		inventoryRepo: inventoryRepo,
		currencyRepo:  currencyRepo,
		storeRepo:     storeRepo,
		productRepo:   productRepo,
		currencies:    NewCurrencyService(currencyRepo),
		stores:        NewStoreService(storeRepo),
		products:      NewProductService(productRepo),
	}
}

// SetTransactor makes Create and Delete all-or-nothing.
// Without a transactor a failure partway through leaves the rows written so far.
func (s *ReceiptService) SetTransactor(t Transactor) {
	s.transactor = t
}

func (s *ReceiptService) atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.transactor == nil {
		return fn(ctx)
	}
	return s.transactor.Transaction(ctx, fn)
}

// Create persists a receipt draft. Every reference is validated before the
// first write; transactionID is assigned by the caller, never by the client.
func (s *ReceiptService) Create(ctx context.Context, draft receipt.ReceiptDraft, transactionID uuid.UUID) (*CreateReceiptResult, error) {
	if err := s.validateDraft(ctx, draft); err != nil {
		return nil, err
	}

	var result *CreateReceiptResult
	err := s.atomically(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.insertDraft(ctx, draft, transactionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ReceiptService) validateDraft(ctx context.Context, draft receipt.ReceiptDraft) error {
	if err := s.currencies.Validate(ctx, draft.Currency); err != nil {
		return err
	}
	if err := s.stores.Validate(ctx, draft.Store); err != nil {
		return err
	}
	for _, line := range draft.Inventories {
		if err := s.products.Validate(ctx, line.Product); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReceiptService) insertDraft(ctx context.Context, draft receipt.ReceiptDraft, transactionID uuid.UUID) (*CreateReceiptResult, error) {
	currencyID, err := s.currencies.Resolve(ctx, draft.Currency)
	if err != nil {
		return nil, err
	}
	storeID, err := s.stores.Resolve(ctx, draft.Store)
	if err != nil {
		return nil, err
	}

	rec := receipt.NewReceipt(draft, currencyID, storeID, transactionID)
	if err := s.receiptRepo.Create(ctx, rec); err != nil {
		return nil, persistFailure(err, receipt.ErrInsertReceiptFailed)
	}

	// lines of one draft describing the same new product share a single row
	created := make(map[string]int64)
	for _, line := range draft.Inventories {
		productID, err := s.resolveLineProduct(ctx, line.Product, created)
		if err != nil {
			return nil, err
		}
		inventory := receipt.NewInventory(rec.ID, productID, line.Price, line.Quantity)
		if err := s.inventoryRepo.Create(ctx, inventory); err != nil {
			return nil, persistFailure(err, receipt.ErrInsertInventoryFailed)
		}
	}

	return &CreateReceiptResult{ReceiptID: rec.ID, TransactionID: transactionID}, nil
}

func (s *ReceiptService) resolveLineProduct(ctx context.Context, ref receipt.ProductRef, created map[string]int64) (int64, error) {
	if ref.Kind() != shared.ReferenceByAttributes {
		return s.products.Resolve(ctx, ref)
	}
	key := attributeKey(ref.Attributes())
	if id, ok := created[key]; ok {
		return id, nil
	}
	id, err := s.products.Resolve(ctx, ref)
	if err != nil {
		return 0, err
	}
	created[key] = id
	return id, nil
}

// Delete removes a receipt with its inventory lines, then every product,
// store and currency no other row references any more.
func (s *ReceiptService) Delete(ctx context.Context, id int64) error {
	return s.atomically(ctx, func(ctx context.Context) error {
		return s.delete(ctx, id)
	})
}

func (s *ReceiptService) delete(ctx context.Context, id int64) error {
	log := logger.L(ctx)

	rec, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNoRecord) {
			return receipt.ErrDeleteReceiptIDNotExisted
		}
		return err
	}

	refs, err := s.inventoryRepo.FindRefsByReceiptID(ctx, id)
	if err != nil {
		return persistFailure(err, receipt.ErrDeleteReceiptAssociatedEntryFailed)
	}
	inventoryIDs := make([]int64, 0, len(refs))
	productIDs := make([]int64, 0, len(refs))
	seen := make(map[int64]struct{}, len(refs))
	for _, ref := range refs {
		inventoryIDs = append(inventoryIDs, ref.ID)
		if _, ok := seen[ref.ProductID]; ok {
			continue
		}
		seen[ref.ProductID] = struct{}{}
		productIDs = append(productIDs, ref.ProductID)
	}
	if err := s.inventoryRepo.DeleteByIDs(ctx, inventoryIDs); err != nil {
		return persistFailure(err, receipt.ErrDeleteReceiptAssociatedEntryFailed)
	}

	for _, productID := range productIDs {
		used, err := s.inventoryRepo.ExistsByProductID(ctx, productID)
		if err != nil {
			return persistFailure(err, receipt.ErrDeleteReceiptAssociatedEntryFailed)
		}
		if used {
			continue
		}
		if err := s.productRepo.Delete(ctx, productID); err != nil && !errors.Is(err, shared.ErrNoRecord) {
			return persistFailure(err, receipt.ErrDeleteReceiptAssociatedEntryFailed)
		}
		log.Debug("Deleted orphaned product", zap.Int64("product_id", productID))
	}

	if err := s.receiptRepo.Delete(ctx, id); err != nil {
		return persistFailure(err, receipt.ErrDeleteReceiptEntryFailed)
	}

	used, err := s.receiptRepo.ExistsByStoreID(ctx, rec.StoreID)
	if err != nil {
		return persistFailure(err, receipt.ErrDeleteReceiptRelatedEntryFailed)
	}
	if !used {
		if err := s.storeRepo.Delete(ctx, rec.StoreID); err != nil && !errors.Is(err, shared.ErrNoRecord) {
			return persistFailure(err, receipt.ErrDeleteReceiptRelatedEntryFailed)
		}
		log.Debug("Deleted orphaned store", zap.Int64("store_id", rec.StoreID))
	}

	used, err = s.receiptRepo.ExistsByCurrencyID(ctx, rec.CurrencyID)
	if err != nil {
		return persistFailure(err, receipt.ErrDeleteReceiptRelatedEntryFailed)
	}
	if !used {
		if err := s.currencyRepo.Delete(ctx, rec.CurrencyID); err != nil && !errors.Is(err, shared.ErrNoRecord) {
			return persistFailure(err, receipt.ErrDeleteReceiptRelatedEntryFailed)
		}
		log.Debug("Deleted orphaned currency", zap.Int64("currency_id", rec.CurrencyID))
	}

	return nil
}

// Update changes the header fields of a receipt
func (s *ReceiptService) Update(ctx context.Context, id int64, patch receipt.ReceiptPatch) error {
	if patch.IsEmpty() {
		return shared.ErrInvalidParameter.WithMessage("Receipt patch has no fields")
	}
	rec, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	rec.Apply(patch)
	return persistFailure(s.receiptRepo.Save(ctx, rec), receipt.ErrUpdateReceiptFailed)
}

// GetByID retrieves a receipt with its currency, store and inventory lines
func (s *ReceiptService) GetByID(ctx context.Context, id int64) (*ReceiptResponse, error) {
	detail, err := s.receiptRepo.FindDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReceiptResponse(*detail)
	return &resp, nil
}

// List returns one page of receipts within the date range, newest first
func (s *ReceiptService) List(ctx context.Context, dates shared.DateRange, page shared.Pagination) (shared.Paginated[ReceiptResponse], error) {
	page = page.Normalize()
	details, total, err := s.receiptRepo.FindDetails(ctx, dates, page)
	if err != nil {
		return shared.Paginated[ReceiptResponse]{}, err
	}
	return shared.MapPaginated(shared.NewPaginated(details, total, page), ToReceiptResponse), nil
}
