package receipt

import (
	"strings"

	"github.com/receipts/backend/internal/domain/shared"
)

// Store is shared reference data; (name, branch) is unique
type Store struct {
	ID      int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `gorm:"type:varchar(200);not null;uniqueIndex:idx_stores_name_branch,priority:1" json:"name"`
	Alias   *string `gorm:"type:varchar(200)" json:"alias"`
	Branch  *string `gorm:"type:varchar(200);uniqueIndex:idx_stores_name_branch,priority:2" json:"branch"`
	Address *string `gorm:"type:text" json:"address"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// StoreAttributes is the uniqueness tuple of a store
type StoreAttributes struct {
	Name   string
	Branch *string
}

// Attributes returns the uniqueness tuple of the store
func (s *Store) Attributes() StoreAttributes {
	return StoreAttributes{Name: s.Name, Branch: s.Branch}
}

// StoreRef designates a store inside a receipt payload
type StoreRef struct {
	ID      *int64  `json:"id"`
	Name    *string `json:"name"`
	Alias   *string `json:"alias"`
	Branch  *string `json:"branch"`
	Address *string `json:"address"`
}

// Kind classifies the reference
func (r StoreRef) Kind() shared.ReferenceKind {
	return shared.Classify(r.ID, r.Name)
}

// Attributes returns the uniqueness tuple described by the reference
func (r StoreRef) Attributes() StoreAttributes {
	attrs := StoreAttributes{Branch: r.Branch}
	if r.Name != nil {
		attrs.Name = strings.TrimSpace(*r.Name)
	}
	return attrs
}

// NewStore builds a store from a by-attributes reference
func (r StoreRef) NewStore() (*Store, error) {
	if r.Kind() != shared.ReferenceByAttributes {
		return nil, ErrStoreInvalid
	}
	name, err := checkName(ErrStoreInvalid, "Store name", *r.Name, maxNameLength)
	if err != nil {
		return nil, err
	}
	if err := checkOptional(ErrStoreInvalid, "Store alias", r.Alias, maxNameLength); err != nil {
		return nil, err
	}
	if err := checkOptional(ErrStoreInvalid, "Store branch", r.Branch, maxNameLength); err != nil {
		return nil, err
	}
	if err := checkOptional(ErrStoreInvalid, "Store address", r.Address, 0); err != nil {
		return nil, err
	}
	return &Store{
		Name:    name,
		Alias:   r.Alias,
		Branch:  r.Branch,
		Address: r.Address,
	}, nil
}

// StorePatch updates a store. Nullable fields distinguish absent from null.
type StorePatch struct {
	Name    *string                 `json:"name"`
	Alias   shared.Nullable[string] `json:"alias"`
	Branch  shared.Nullable[string] `json:"branch"`
	Address shared.Nullable[string] `json:"address"`
}

// IsEmpty reports whether the patch changes nothing
func (p StorePatch) IsEmpty() bool {
	return p.Name == nil && !p.Alias.Set && !p.Branch.Set && !p.Address.Set
}

// Apply applies the patch
func (s *Store) Apply(p StorePatch) error {
	if err := p.validate(); err != nil {
		return err
	}
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
	}
	p.Alias.Apply(&s.Alias)
	p.Branch.Apply(&s.Branch)
	p.Address.Apply(&s.Address)
	return nil
}

func (p StorePatch) validate() error {
	if p.Name != nil {
		if _, err := checkName(ErrStoreInvalid, "Store name", *p.Name, maxNameLength); err != nil {
			return err
		}
	}
	if err := checkNullable(ErrStoreInvalid, "Store alias", p.Alias, maxNameLength); err != nil {
		return err
	}
	if err := checkNullable(ErrStoreInvalid, "Store branch", p.Branch, maxNameLength); err != nil {
		return err
	}
	return checkNullable(ErrStoreInvalid, "Store address", p.Address, 0)
}
