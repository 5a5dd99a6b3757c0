package receipt

import (
	"context"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
)

// StoreService handles store validation, resolution and maintenance
type StoreService struct {
	storeRepo receipt.StoreRepository
}

// NewStoreService creates a new StoreService
func NewStoreService(storeRepo receipt.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// Validate checks a store reference of a receipt payload without writing anything
func (s *StoreService) Validate(ctx context.Context, ref receipt.StoreRef) error {
	switch ref.Kind() {
	case shared.ReferenceByID:
		exists, err := s.storeRepo.ExistsByID(ctx, *ref.ID)
		if err != nil {
			return err
		}
		if !exists {
			return receipt.ErrStoreIDNotExisted
		}
		return nil
	case shared.ReferenceByAttributes:
		if _, err := ref.NewStore(); err != nil {
			return err
		}
		exists, err := s.storeRepo.ExistsByAttributes(ctx, ref.Attributes())
		if err != nil {
			return err
		}
		if exists {
			return receipt.ErrStoreNameDuplicated
		}
		return nil
	default:
		return receipt.ErrStoreInvalid
	}
}

// Resolve returns the id a validated reference designates, inserting a new store when needed
func (s *StoreService) Resolve(ctx context.Context, ref receipt.StoreRef) (int64, error) {
	if ref.Kind() == shared.ReferenceByID {
		return *ref.ID, nil
	}
	store, err := ref.NewStore()
	if err != nil {
		return 0, err
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return 0, persistFailure(err, receipt.ErrInsertStoreFailed)
	}
	return store.ID, nil
}

// GetByID retrieves a store by ID
func (s *StoreService) GetByID(ctx context.Context, id int64) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStoreResponse(*store)
	return &resp, nil
}

// List returns one page of stores
func (s *StoreService) List(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) (shared.Paginated[StoreResponse], error) {
	page = page.Normalize()
	stores, total, err := s.storeRepo.FindAll(ctx, filter, page)
	if err != nil {
		return shared.Paginated[StoreResponse]{}, err
	}
	return shared.MapPaginated(shared.NewPaginated(stores, total, page), ToStoreResponse), nil
}

// Update applies a partial update to a store
func (s *StoreService) Update(ctx context.Context, id int64, patch receipt.StorePatch) error {
	if patch.IsEmpty() {
		return shared.ErrInvalidParameter.WithMessage("Store patch has no fields")
	}
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	previous := store.Attributes()
	if err := store.Apply(patch); err != nil {
		return err
	}

	if attrs := store.Attributes(); !sameStoreAttributes(previous, attrs) {
		exists, err := s.storeRepo.ExistsByAttributes(ctx, attrs)
		if err != nil {
			return err
		}
		if exists {
			return receipt.ErrStoreNameDuplicated
		}
	}

	return persistFailure(s.storeRepo.Save(ctx, store), receipt.ErrUpdateStoreFailed)
}

func sameStoreAttributes(a, b receipt.StoreAttributes) bool {
	return a.Name == b.Name && equalPtr(a.Branch, b.Branch)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
