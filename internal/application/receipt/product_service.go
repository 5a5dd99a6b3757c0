package receipt

import (
	"context"
	"strconv"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
)

// ProductService handles product validation, resolution and maintenance
type ProductService struct {
	productRepo receipt.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo receipt.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Validate checks a product reference of an inventory line without writing anything
func (s *ProductService) Validate(ctx context.Context, ref receipt.ProductRef) error {
	switch ref.Kind() {
	case shared.ReferenceByID:
		exists, err := s.productRepo.ExistsByID(ctx, *ref.ID)
		if err != nil {
			return err
		}
		if !exists {
			return receipt.ErrProductIDNotExisted
		}
		return nil
	case shared.ReferenceByAttributes:
		// field checks run here so a bad line aborts before any insert
		if _, err := ref.NewProduct(); err != nil {
			return err
		}
		exists, err := s.productRepo.ExistsByAttributes(ctx, ref.Attributes())
		if err != nil {
			return err
		}
		if exists {
			return receipt.ErrProductNameDuplicated
		}
		return nil
	default:
		return receipt.ErrProductInvalid
	}
}

// Resolve returns the id a validated reference designates, inserting a new product when needed
func (s *ProductService) Resolve(ctx context.Context, ref receipt.ProductRef) (int64, error) {
	if ref.Kind() == shared.ReferenceByID {
		return *ref.ID, nil
	}
	product, err := ref.NewProduct()
	if err != nil {
		return 0, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return 0, persistFailure(err, receipt.ErrInsertProductFailed)
	}
	return product.ID, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(*product)
	return &resp, nil
}

// List returns one page of products
func (s *ProductService) List(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) (shared.Paginated[ProductResponse], error) {
	page = page.Normalize()
	products, total, err := s.productRepo.FindAll(ctx, filter, page)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.MapPaginated(shared.NewPaginated(products, total, page), ToProductResponse), nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id int64, patch receipt.ProductPatch) error {
	if patch.IsEmpty() {
		return shared.ErrInvalidParameter.WithMessage("Product patch has no fields")
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	previous := product.Attributes()
	if err := product.Apply(patch); err != nil {
		return err
	}

	if attrs := product.Attributes(); !sameProductAttributes(previous, attrs) {
		exists, err := s.productRepo.ExistsByAttributes(ctx, attrs)
		if err != nil {
			return err
		}
		if exists {
			return receipt.ErrProductNameDuplicated
		}
	}

	return persistFailure(s.productRepo.Save(ctx, product), receipt.ErrUpdateProductFailed)
}

func sameProductAttributes(a, b receipt.ProductAttributes) bool {
	return a.Name == b.Name &&
		equalPtr(a.Brand, b.Brand) &&
		equalPtr(a.SpecificationAmount, b.SpecificationAmount) &&
		equalPtr(a.SpecificationUnit, b.SpecificationUnit) &&
		equalPtr(a.SpecificationOthers, b.SpecificationOthers)
}

// attributeKey identifies a product tuple within one receipt draft
func attributeKey(a receipt.ProductAttributes) string {
	key := a.Name
	for _, s := range []*string{a.Brand, a.SpecificationUnit, a.SpecificationOthers} {
		key += "\x00"
		if s != nil {
			key += "=" + *s
		}
	}
	key += "\x00"
	if a.SpecificationAmount != nil {
		key += "=" + strconv.FormatInt(int64(*a.SpecificationAmount), 10)
	}
	return key
}
