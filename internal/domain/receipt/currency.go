package receipt

import "github.com/receipts/backend/internal/domain/shared"

// Currency is shared reference data; its name is unique
type Currency struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(64);not null;uniqueIndex:idx_currencies_name" json:"name"`
}

// TableName returns the table name for GORM
func (Currency) TableName() string {
	return "currencies"
}

// CurrencyRef designates a currency inside a receipt payload
type CurrencyRef struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

// Kind classifies the reference
func (r CurrencyRef) Kind() shared.ReferenceKind {
	return shared.Classify(r.ID, r.Name)
}

// NewCurrency builds a currency from a by-attributes reference
func (r CurrencyRef) NewCurrency() (*Currency, error) {
	if r.Kind() != shared.ReferenceByAttributes {
		return nil, ErrCurrencyInvalid
	}
	return NewCurrency(*r.Name)
}

// NewCurrency creates a new currency
func NewCurrency(name string) (*Currency, error) {
	name, err := checkName(ErrCurrencyInvalid, "Currency name", name, maxCurrencyNameLength)
	if err != nil {
		return nil, err
	}
	return &Currency{Name: name}, nil
}

// CurrencyPatch renames a currency
type CurrencyPatch struct {
	Name string `json:"name"`
}

// Apply applies the patch
func (c *Currency) Apply(p CurrencyPatch) error {
	name, err := checkName(ErrCurrencyInvalid, "Currency name", p.Name, maxCurrencyNameLength)
	if err != nil {
		return err
	}
	c.Name = name
	return nil
}
