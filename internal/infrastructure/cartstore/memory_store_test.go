package cartstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMemoryStoreMutate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the mutation and stamps the cart", func(t *testing.T) {
		store := newTestStore(t)
		sessionID := uuid.New()

		cart, err := store.Mutate(ctx, sessionID, func(cart *entity.Cart) error {
			cart.Items = append(cart.Items, entity.CartItem{
				MedicationID: uuid.New(),
				Name:         "Paracetamol 500mg",
				UnitPrice:    1000,
				Quantity:     2,
			})
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.False(t, cart.UpdatedAt.IsZero())
	})

	t.Run("failed mutation is a strict no-op", func(t *testing.T) {
		store := newTestStore(t)
		sessionID := uuid.New()

		_, err := store.Mutate(ctx, sessionID, func(cart *entity.Cart) error {
			cart.Items = append(cart.Items, entity.CartItem{Name: "kept", Quantity: 1})
			return nil
		})
		require.NoError(t, err)

		boom := errors.New("boom")
		_, err = store.Mutate(ctx, sessionID, func(cart *entity.Cart) error {
			cart.Items = nil
			cart.Items = append(cart.Items, entity.CartItem{Name: "discarded", Quantity: 9})
			return boom
		})
		assert.ErrorIs(t, err, boom)

		cart, err := store.Snapshot(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "kept", cart.Items[0].Name)
	})

	t.Run("returned cart is detached", func(t *testing.T) {
		store := newTestStore(t)
		sessionID := uuid.New()

		cart, err := store.Mutate(ctx, sessionID, func(cart *entity.Cart) error {
			cart.Items = append(cart.Items, entity.CartItem{Name: "original", Quantity: 1})
			return nil
		})
		require.NoError(t, err)

		cart.Items[0].Quantity = 42

		fresh, err := store.Snapshot(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, fresh.Items[0].Quantity)
	})

	t.Run("concurrent mutations are serialized per session", func(t *testing.T) {
		store := newTestStore(t)
		sessionID := uuid.New()

		const workers = 50
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, err := store.Mutate(ctx, sessionID, func(cart *entity.Cart) error {
					cart.Items = append(cart.Items, entity.CartItem{Quantity: 1})
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		cart, err := store.Snapshot(ctx, sessionID)
		require.NoError(t, err)
		assert.Len(t, cart.Items, workers)
	})

	t.Run("sessions do not share carts", func(t *testing.T) {
		store := newTestStore(t)
		first := uuid.New()
		second := uuid.New()

		_, err := store.Mutate(ctx, first, func(cart *entity.Cart) error {
			cart.Items = append(cart.Items, entity.CartItem{Quantity: 1})
			return nil
		})
		require.NoError(t, err)

		cart, err := store.Snapshot(ctx, second)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	sessionID := uuid.New()

	_, err := store.Mutate(ctx, sessionID, func(cart *entity.Cart) error {
		cart.Items = append(cart.Items, entity.CartItem{Quantity: 1})
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, sessionID))

	cart, err := store.Snapshot(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	// Clearing twice is fine
	assert.NoError(t, store.Clear(ctx, sessionID))
}

func TestMemoryStoreSnapshotUnknownSession(t *testing.T) {
	store := newTestStore(t)

	cart, err := store.Snapshot(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.Total())
}
