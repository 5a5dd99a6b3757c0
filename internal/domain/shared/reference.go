package shared

import "strings"

// ReferenceKind tells how a payload designates a currency, store or product
type ReferenceKind int

const (
	// ReferenceNone means neither an identifier nor a name was supplied
	ReferenceNone ReferenceKind = iota
	// ReferenceByID means an existing row is designated by its identifier
	ReferenceByID
	// ReferenceByAttributes means a new row is described by its attributes
	ReferenceByAttributes
)

// String returns the name of the kind
func (k ReferenceKind) String() string {
	switch k {
	case ReferenceByID:
		return "by_id"
	case ReferenceByAttributes:
		return "by_attributes"
	default:
		return "none"
	}
}

// Classify decides how a reference designates its row.
// The identifier wins when both an identifier and a name are given; a blank name counts as absent.
func Classify(id *int64, name *string) ReferenceKind {
	if id != nil {
		return ReferenceByID
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		return ReferenceByAttributes
	}
	return ReferenceNone
}
