package receipt

import (
	"errors"

	"github.com/receipts/backend/internal/domain/shared"
)

// persistFailure reports a failed write as failure, unless the store was
// unreachable, which stays a connectivity error.
func persistFailure(err error, failure *shared.DomainError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, shared.ErrDatabaseConnectionBroken) {
		return err
	}
	return failure.Wrap(err)
}
