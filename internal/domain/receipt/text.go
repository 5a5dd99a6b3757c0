package receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/receipts/backend/internal/domain/shared"
)

// Column widths in characters, matching the VARCHAR sizes of the schema
const (
	maxCurrencyNameLength = 64
	maxNameLength         = 200
	maxUnitLength         = 32
)

// checkText rejects invalid UTF-8 and values longer than max characters.
// max <= 0 means unbounded.
func checkText(invalid *shared.DomainError, field, value string, max int) error {
	if !utf8.ValidString(value) {
		return invalid.WithMessage(field + " must be valid UTF-8")
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		return invalid.WithMessage(fmt.Sprintf("%s cannot exceed %d characters", field, max))
	}
	return nil
}

// checkName trims name and rejects it when empty or out of bounds
func checkName(invalid *shared.DomainError, field, name string, max int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid.WithMessage(field + " cannot be empty")
	}
	if err := checkText(invalid, field, name, max); err != nil {
		return "", err
	}
	return name, nil
}

// checkOptional validates a nullable text field
func checkOptional(invalid *shared.DomainError, field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return checkText(invalid, field, *value, max)
}

// checkNullable validates the value a patch would set
func checkNullable(invalid *shared.DomainError, field string, value shared.Nullable[string], max int) error {
	if !value.Set || value.Value == nil {
		return nil
	}
	return checkText(invalid, field, *value.Value, max)
}
