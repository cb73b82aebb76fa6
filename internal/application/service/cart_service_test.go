package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/infrastructure/cartstore"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService(t *testing.T, medications ...*entity.Medication) (*CartService, *mockMedicationRepo) {
	t.Helper()
	store := cartstore.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	medicationRepo := newMockMedicationRepo(medications...)
	return NewCartService(store, medicationRepo), medicationRepo
}

func testMedication(name string, priceCentimes int64, stock int) *entity.Medication {
	return &entity.Medication{
		ID:           uuid.New(),
		CIPCode:      uuid.New().String()[:13],
		Name:         name,
		Stock:        stock,
		SellingPrice: priceCentimes,
	}
}

func TestCartServiceAddItem(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("adds a line with snapshotted name and price", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 10)
		svc, _ := newTestCartService(t, medication)

		cart, err := svc.AddItem(ctx, sessionID, medication.ID, 2)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Paracetamol 500mg", cart.Items[0].Name)
		assert.Equal(t, int64(1000), cart.Items[0].UnitPrice)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.Equal(t, int64(2000), cart.Total())
	})

	t.Run("adding the same medication merges the line", func(t *testing.T) {
		medication := testMedication("Ibuprofene 400mg", 1500, 10)
		svc, _ := newTestCartService(t, medication)

		_, err := svc.AddItem(ctx, sessionID, medication.ID, 2)
		require.NoError(t, err)
		cart, err := svc.AddItem(ctx, sessionID, medication.ID, 3)
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("zero quantity defaults to one", func(t *testing.T) {
		medication := testMedication("Aspirine 500mg", 500, 10)
		svc, _ := newTestCartService(t, medication)

		cart, err := svc.AddItem(ctx, sessionID, medication.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})

	t.Run("unknown medication", func(t *testing.T) {
		svc, _ := newTestCartService(t)

		_, err := svc.AddItem(ctx, sessionID, uuid.New(), 1)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("insufficient stock leaves cart untouched", func(t *testing.T) {
		medication := testMedication("Amoxicilline 1g", 2000, 3)
		svc, _ := newTestCartService(t, medication)

		_, err := svc.AddItem(ctx, sessionID, medication.ID, 2)
		require.NoError(t, err)

		// Merged quantity 2+2 exceeds the 3 in stock
		_, err = svc.AddItem(ctx, sessionID, medication.ID, 2)
		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))

		cart, err := svc.Snapshot(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("later catalog edits do not change the cart", func(t *testing.T) {
		medication := testMedication("Doliprane 1g", 1200, 10)
		svc, medicationRepo := newTestCartService(t, medication)

		_, err := svc.AddItem(ctx, sessionID, medication.ID, 1)
		require.NoError(t, err)

		updated := *medication
		updated.SellingPrice = 9999
		require.NoError(t, medicationRepo.Update(ctx, &updated))

		cart, err := svc.Snapshot(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, int64(1200), cart.Items[0].UnitPrice)
	})
}

func TestCartServiceRemoveItem(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("removes the line at the given position", func(t *testing.T) {
		first := testMedication("Paracetamol 500mg", 1000, 10)
		second := testMedication("Ibuprofene 400mg", 1500, 10)
		svc, _ := newTestCartService(t, first, second)

		_, err := svc.AddItem(ctx, sessionID, first.ID, 1)
		require.NoError(t, err)
		_, err = svc.AddItem(ctx, sessionID, second.ID, 1)
		require.NoError(t, err)

		cart, err := svc.RemoveItem(ctx, sessionID, 0)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, second.ID, cart.Items[0].MedicationID)
		assert.Equal(t, int64(1500), cart.Total())
	})

	t.Run("out of range index leaves the cart untouched", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 10)
		svc, _ := newTestCartService(t, medication)

		_, err := svc.AddItem(ctx, sessionID, medication.ID, 1)
		require.NoError(t, err)

		for _, index := range []int{-1, 1, 99} {
			_, err = svc.RemoveItem(ctx, sessionID, index)
			assert.ErrorIs(t, err, apperror.ErrIndexOutOfRange, "index %d", index)
		}

		cart, err := svc.Snapshot(ctx, sessionID)
		require.NoError(t, err)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("remove from empty cart", func(t *testing.T) {
		svc, _ := newTestCartService(t)
		_, err := svc.RemoveItem(ctx, uuid.New(), 0)
		assert.ErrorIs(t, err, apperror.ErrIndexOutOfRange)
	})
}

func TestCartServiceClearAndSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("clear empties the cart", func(t *testing.T) {
		sessionID := uuid.New()
		medication := testMedication("Paracetamol 500mg", 1000, 10)
		svc, _ := newTestCartService(t, medication)

		_, err := svc.AddItem(ctx, sessionID, medication.ID, 2)
		require.NoError(t, err)

		require.NoError(t, svc.Clear(ctx, sessionID))

		cart, err := svc.Snapshot(ctx, sessionID)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
		assert.Equal(t, int64(0), cart.Total())
	})

	t.Run("clearing an empty cart is not an error", func(t *testing.T) {
		svc, _ := newTestCartService(t)
		assert.NoError(t, svc.Clear(ctx, uuid.New()))
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 10)
		svc, _ := newTestCartService(t, medication)

		first := uuid.New()
		second := uuid.New()

		_, err := svc.AddItem(ctx, first, medication.ID, 2)
		require.NoError(t, err)

		cart, err := svc.Snapshot(ctx, second)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("snapshot is detached from the stored cart", func(t *testing.T) {
		sessionID := uuid.New()
		medication := testMedication("Paracetamol 500mg", 1000, 10)
		svc, _ := newTestCartService(t, medication)

		_, err := svc.AddItem(ctx, sessionID, medication.ID, 1)
		require.NoError(t, err)

		cart, err := svc.Snapshot(ctx, sessionID)
		require.NoError(t, err)
		cart.Items[0].Quantity = 99

		fresh, err := svc.Snapshot(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, fresh.Items[0].Quantity)
	})
}
