package receipt

import (
	"context"
	"strings"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
)

// CurrencyService handles currency validation, resolution and maintenance
type CurrencyService struct {
	currencyRepo receipt.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(currencyRepo receipt.CurrencyRepository) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

// Validate checks a currency reference of a receipt payload without writing anything
func (s *CurrencyService) Validate(ctx context.Context, ref receipt.CurrencyRef) error {
	switch ref.Kind() {
	case shared.ReferenceByID:
		exists, err := s.currencyRepo.ExistsByID(ctx, *ref.ID)
		if err != nil {
			return err
		}
		if !exists {
			return receipt.ErrCurrencyIDNotExisted
		}
		return nil
	case shared.ReferenceByAttributes:
		if _, err := ref.NewCurrency(); err != nil {
			return err
		}
		exists, err := s.currencyRepo.ExistsByName(ctx, strings.TrimSpace(*ref.Name))
		if err != nil {
			return err
		}
		if exists {
			return receipt.ErrCurrencyNameDuplicated
		}
		return nil
	default:
		return receipt.ErrCurrencyInvalid
	}
}

// Resolve returns the id a validated reference designates, inserting a new currency when needed
func (s *CurrencyService) Resolve(ctx context.Context, ref receipt.CurrencyRef) (int64, error) {
	if ref.Kind() == shared.ReferenceByID {
		return *ref.ID, nil
	}
	currency, err := ref.NewCurrency()
	if err != nil {
		return 0, err
	}
	if err := s.currencyRepo.Create(ctx, currency); err != nil {
		return 0, persistFailure(err, receipt.ErrInsertCurrencyFailed)
	}
	return currency.ID, nil
}

// GetByID retrieves a currency by ID
func (s *CurrencyService) GetByID(ctx context.Context, id int64) (*CurrencyResponse, error) {
	currency, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCurrencyResponse(*currency)
	return &resp, nil
}

// List returns one page of currencies
func (s *CurrencyService) List(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) (shared.Paginated[CurrencyResponse], error) {
	page = page.Normalize()
	currencies, total, err := s.currencyRepo.FindAll(ctx, filter, page)
	if err != nil {
		return shared.Paginated[CurrencyResponse]{}, err
	}
	return shared.MapPaginated(shared.NewPaginated(currencies, total, page), ToCurrencyResponse), nil
}

// Update renames a currency
func (s *CurrencyService) Update(ctx context.Context, id int64, patch receipt.CurrencyPatch) error {
	currency, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	previous := currency.Name
	if err := currency.Apply(patch); err != nil {
		return err
	}
	if currency.Name == previous {
		return nil
	}

	exists, err := s.currencyRepo.ExistsByName(ctx, currency.Name)
	if err != nil {
		return err
	}
	if exists {
		return receipt.ErrCurrencyNameDuplicated
	}

	return persistFailure(s.currencyRepo.Save(ctx, currency), receipt.ErrUpdateCurrencyFailed)
}
