package persistence

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, shared.ErrNoRecord},
		{"wrapped record not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), shared.ErrNoRecord},
		{"bad connection", driver.ErrBadConn, shared.ErrDatabaseConnectionBroken},
		{"connection done", sql.ErrConnDone, shared.ErrDatabaseConnectionBroken},
		{"connection exception class", &pgconn.PgError{Code: "08006"}, shared.ErrDatabaseConnectionBroken},
		{"too many connections", &pgconn.PgError{Code: "53300"}, shared.ErrDatabaseConnectionBroken},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, shared.ErrDatabaseConnectionBroken},
		{"unique violation", &pgconn.PgError{Code: "23505", Message: "duplicate key"}, ErrConstraintViolation},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, ErrConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err), tt.want)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		other := errors.New("syntax error")
		assert.Same(t, other, translateError(other))
	})

	t.Run("constraint violation keeps the driver error", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
		err := translateError(pgErr)
		assert.True(t, IsUniqueViolation(err))
		assert.Equal(t, shared.KindPersistence, shared.KindOf(err))
	})
}
