package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCommandResultStore_PutGet(t *testing.T) {
	store := NewInMemoryCommandResultStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("returns the latest state of a ticket", func(t *testing.T) {
		ticket := uuid.New()
		queued := shared.CommandResult{Ticket: ticket, Command: "delete_receipt", Status: shared.CommandQueued, SubmittedAt: time.Now()}
		require.NoError(t, store.Put(ctx, queued, time.Hour))

		done := queued
		done.Succeed(time.Now())
		require.NoError(t, store.Put(ctx, done, time.Hour))

		got, err := store.Get(ctx, ticket)
		require.NoError(t, err)
		assert.Equal(t, shared.CommandSucceeded, got.Status)
		assert.NotNil(t, got.FinishedAt)
	})

	t.Run("unknown ticket is not found", func(t *testing.T) {
		_, err := store.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNoRecord)
	})

	t.Run("expired result is not found", func(t *testing.T) {
		ticket := uuid.New()
		require.NoError(t, store.Put(ctx, shared.CommandResult{Ticket: ticket}, 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)

		_, err := store.Get(ctx, ticket)
		assert.ErrorIs(t, err, shared.ErrNoRecord)
	})

	t.Run("returned result is a copy", func(t *testing.T) {
		ticket := uuid.New()
		require.NoError(t, store.Put(ctx, shared.CommandResult{Ticket: ticket, Status: shared.CommandRunning}, time.Hour))

		got, err := store.Get(ctx, ticket)
		require.NoError(t, err)
		got.Status = shared.CommandFailed

		again, err := store.Get(ctx, ticket)
		require.NoError(t, err)
		assert.Equal(t, shared.CommandRunning, again.Status)
	})
}

func TestInMemoryCommandResultStore_Cleanup(t *testing.T) {
	store := newInMemoryCommandResultStore(5 * time.Millisecond)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, shared.CommandResult{Ticket: uuid.New()}, time.Millisecond))
	require.NoError(t, store.Put(ctx, shared.CommandResult{Ticket: uuid.New()}, time.Hour))

	assert.Eventually(t, func() bool { return store.Size() == 1 }, time.Second, 5*time.Millisecond)
}

func TestInMemoryCommandResultStore_CloseTwice(t *testing.T) {
	store := NewInMemoryCommandResultStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
