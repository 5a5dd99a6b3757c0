package receipt

import (
	"strings"

	"github.com/receipts/backend/internal/domain/shared"
)

// Product is shared reference data.
// The whole (name, brand, specification) tuple is unique.
type Product struct {
	ID                  int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string  `gorm:"type:varchar(200);not null" json:"name"`
	Alias               *string `gorm:"type:varchar(200)" json:"alias"`
	Brand               *string `gorm:"type:varchar(200)" json:"brand"`
	SpecificationAmount *int32  `json:"specification_amount"`
	SpecificationUnit   *string `gorm:"type:varchar(32)" json:"specification_unit"`
	SpecificationOthers *string `gorm:"type:text" json:"specification_others"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductAttributes is the uniqueness tuple of a product
type ProductAttributes struct {
	Name                string
	Brand               *string
	SpecificationAmount *int32
	SpecificationUnit   *string
	SpecificationOthers *string
}

// Attributes returns the uniqueness tuple of the product
func (p *Product) Attributes() ProductAttributes {
	return ProductAttributes{
		Name:                p.Name,
		Brand:               p.Brand,
		SpecificationAmount: p.SpecificationAmount,
		SpecificationUnit:   p.SpecificationUnit,
		SpecificationOthers: p.SpecificationOthers,
	}
}

// ProductRef designates a product inside an inventory line
type ProductRef struct {
	ID                  *int64  `json:"id"`
	Name                *string `json:"name"`
	Alias               *string `json:"alias"`
	Brand               *string `json:"brand"`
	SpecificationAmount *int32  `json:"specification_amount"`
	SpecificationUnit   *string `json:"specification_unit"`
	SpecificationOthers *string `json:"specification_others"`
}

// Kind classifies the reference
func (r ProductRef) Kind() shared.ReferenceKind {
	return shared.Classify(r.ID, r.Name)
}

// Attributes returns the uniqueness tuple described by the reference
func (r ProductRef) Attributes() ProductAttributes {
	attrs := ProductAttributes{
		Brand:               r.Brand,
		SpecificationAmount: r.SpecificationAmount,
		SpecificationUnit:   r.SpecificationUnit,
		SpecificationOthers: r.SpecificationOthers,
	}
	if r.Name != nil {
		attrs.Name = strings.TrimSpace(*r.Name)
	}
	return attrs
}

// NewProduct builds a product from a by-attributes reference
func (r ProductRef) NewProduct() (*Product, error) {
	if r.Kind() != shared.ReferenceByAttributes {
		return nil, ErrProductInvalid
	}
	attrs := r.Attributes()
	name, err := checkName(ErrProductInvalid, "Product name", attrs.Name, maxNameLength)
	if err != nil {
		return nil, err
	}
	for _, f := range []struct {
		field string
		value *string
		max   int
	}{
		{"Product alias", r.Alias, maxNameLength},
		{"Product brand", r.Brand, maxNameLength},
		{"Product specification unit", r.SpecificationUnit, maxUnitLength},
		{"Product specification others", r.SpecificationOthers, 0},
	} {
		if err := checkOptional(ErrProductInvalid, f.field, f.value, f.max); err != nil {
			return nil, err
		}
	}
	return &Product{
		Name:                name,
		Alias:               r.Alias,
		Brand:               attrs.Brand,
		SpecificationAmount: attrs.SpecificationAmount,
		SpecificationUnit:   attrs.SpecificationUnit,
		SpecificationOthers: attrs.SpecificationOthers,
	}, nil
}

// ProductPatch updates a product. Nullable fields distinguish absent from null.
type ProductPatch struct {
	Name                *string                 `json:"name"`
	Alias               shared.Nullable[string] `json:"alias"`
	Brand               shared.Nullable[string] `json:"brand"`
	SpecificationAmount shared.Nullable[int32]  `json:"specification_amount"`
	SpecificationUnit   shared.Nullable[string] `json:"specification_unit"`
	SpecificationOthers shared.Nullable[string] `json:"specification_others"`
}

// IsEmpty reports whether the patch changes nothing
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && !p.Alias.Set && !p.Brand.Set &&
		!p.SpecificationAmount.Set && !p.SpecificationUnit.Set && !p.SpecificationOthers.Set
}

// Apply applies the patch
func (p *Product) Apply(patch ProductPatch) error {
	if err := patch.validate(); err != nil {
		return err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	patch.Alias.Apply(&p.Alias)
	patch.Brand.Apply(&p.Brand)
	patch.SpecificationAmount.Apply(&p.SpecificationAmount)
	patch.SpecificationUnit.Apply(&p.SpecificationUnit)
	patch.SpecificationOthers.Apply(&p.SpecificationOthers)
	return nil
}

func (p ProductPatch) validate() error {
	if p.Name != nil {
		if _, err := checkName(ErrProductInvalid, "Product name", *p.Name, maxNameLength); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		field string
		value shared.Nullable[string]
		max   int
	}{
		{"Product alias", p.Alias, maxNameLength},
		{"Product brand", p.Brand, maxNameLength},
		{"Product specification unit", p.SpecificationUnit, maxUnitLength},
		{"Product specification others", p.SpecificationOthers, 0},
	} {
		if err := checkNullable(ErrProductInvalid, f.field, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}
