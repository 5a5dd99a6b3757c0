package receipt

import (
	"context"
	"testing"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("checks name and branch together", func(t *testing.T) {
		repo := new(MockStoreRepository)
		repo.On("ExistsByAttributes", ctx, receipt.StoreAttributes{Name: "Acme", Branch: strPtr("North")}).Return(true, nil)

		err := NewStoreService(repo).Validate(ctx, receipt.StoreRef{Name: strPtr("Acme"), Branch: strPtr("North")})

		assert.ErrorIs(t, err, receipt.ErrStoreNameDuplicated)
	})

	t.Run("missing reference", func(t *testing.T) {
		err := NewStoreService(new(MockStoreRepository)).Validate(ctx, receipt.StoreRef{Alias: strPtr("a")})
		assert.ErrorIs(t, err, receipt.ErrStoreInvalid)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(MockStoreRepository)
		repo.On("ExistsByID", ctx, int64(4)).Return(false, nil)

		err := NewStoreService(repo).Validate(ctx, receipt.StoreRef{ID: int64Ptr(4)})

		assert.ErrorIs(t, err, receipt.ErrStoreIDNotExisted)
	})
}

func TestStoreService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("clears the alias without touching the branch", func(t *testing.T) {
		repo := new(MockStoreRepository)
		repo.On("FindByID", ctx, int64(2)).Return(&receipt.Store{ID: 2, Name: "Acme", Alias: strPtr("a"), Branch: strPtr("North")}, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(s *receipt.Store) bool {
			return s.Alias == nil && s.Branch != nil && *s.Branch == "North"
		})).Return(nil)

		err := NewStoreService(repo).Update(ctx, 2, receipt.StorePatch{Alias: shared.Null[string]()})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsByAttributes", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a move onto an existing name and branch", func(t *testing.T) {
		repo := new(MockStoreRepository)
		repo.On("FindByID", ctx, int64(2)).Return(&receipt.Store{ID: 2, Name: "Acme"}, nil)
		repo.On("ExistsByAttributes", ctx, receipt.StoreAttributes{Name: "Acme", Branch: strPtr("South")}).Return(true, nil)

		err := NewStoreService(repo).Update(ctx, 2, receipt.StorePatch{Branch: shared.Present("South")})

		assert.ErrorIs(t, err, receipt.ErrStoreNameDuplicated)
	})

	t.Run("rejects an empty patch", func(t *testing.T) {
		err := NewStoreService(new(MockStoreRepository)).Update(ctx, 2, receipt.StorePatch{})
		assert.ErrorIs(t, err, shared.ErrInvalidParameter)
	})
}
