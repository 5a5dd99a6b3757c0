package receipt

import (
	"context"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
)

// InventoryService handles inventory line reads and updates
type InventoryService struct {
	inventoryRepo  receipt.InventoryRepository
	customizedRepo receipt.CustomizedInventoryRepository
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	inventoryRepo receipt.InventoryRepository,
	customizedRepo receipt.CustomizedInventoryRepository,
) *InventoryService {
	return &InventoryService{
		inventoryRepo:  inventoryRepo,
		customizedRepo: customizedRepo,
	}
}

// GetByID retrieves an inventory line with its product
func (s *InventoryService) GetByID(ctx context.Context, id int64) (*InventoryResponse, error) {
	line, err := s.inventoryRepo.FindLineByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInventoryResponse(*line)
	return &resp, nil
}

// List returns one page of inventory lines
func (s *InventoryService) List(ctx context.Context, page shared.Pagination) (shared.Paginated[InventoryResponse], error) {
	page = page.Normalize()
	lines, total, err := s.inventoryRepo.FindLines(ctx, page)
	if err != nil {
		return shared.Paginated[InventoryResponse]{}, err
	}
	return shared.MapPaginated(shared.NewPaginated(lines, total, page), ToInventoryResponse), nil
}

// GetCustomized retrieves an inventory line with its product, receipt, store and currency
func (s *InventoryService) GetCustomized(ctx context.Context, id int64) (*CustomizedInventoryResponse, error) {
	item, err := s.customizedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomizedInventoryResponse(*item)
	return &resp, nil
}

// ListCustomized returns one page of joined inventory lines matching the query
func (s *InventoryService) ListCustomized(ctx context.Context, query receipt.InventoryQuery, page shared.Pagination) (shared.Paginated[CustomizedInventoryResponse], error) {
	page = page.Normalize()
	items, total, err := s.customizedRepo.FindAll(ctx, query, page)
	if err != nil {
		return shared.Paginated[CustomizedInventoryResponse]{}, err
	}
	return shared.MapPaginated(shared.NewPaginated(items, total, page), ToCustomizedInventoryResponse), nil
}

// Update changes the price and/or quantity of a line
func (s *InventoryService) Update(ctx context.Context, id int64, patch receipt.InventoryPatch) error {
	if patch.IsEmpty() {
		return shared.ErrInvalidParameter.WithMessage("Inventory patch has no fields")
	}
	inventory, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	inventory.Apply(patch)
	return persistFailure(s.inventoryRepo.Save(ctx, inventory), receipt.ErrUpdateInventoryFailed)
}
