package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type purchaseServiceFixture struct {
	svc            *PurchaseService
	purchaseRepo   *mockPurchaseRepo
	medicationRepo *mockMedicationRepo
	supplier       *entity.Supplier
	userID         uuid.UUID
}

func newPurchaseServiceFixture(t *testing.T, medications ...*entity.Medication) *purchaseServiceFixture {
	t.Helper()

	supplier := &entity.Supplier{
		ID:     uuid.New(),
		Name:   "Pharma Distrib Kinshasa",
		Phone:  "+243 82 000 0000",
		Active: true,
	}

	purchaseRepo := newMockPurchaseRepo()
	medicationRepo := newMockMedicationRepo(medications...)

	return &purchaseServiceFixture{
		svc:            NewPurchaseService(purchaseRepo, newMockSupplierRepo(supplier), medicationRepo),
		purchaseRepo:   purchaseRepo,
		medicationRepo: medicationRepo,
		supplier:       supplier,
		userID:         uuid.New(),
	}
}

func (f *purchaseServiceFixture) createInput(items ...PurchaseItemInput) *CreatePurchaseInput {
	return &CreatePurchaseInput{
		UserID:     f.userID,
		SupplierID: f.supplier.ID,
		Items:      items,
	}
}

func TestCreatePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newPurchaseServiceFixture(t, medication)

		purchase, err := f.svc.CreatePurchase(ctx, f.createInput(
			PurchaseItemInput{MedicationID: medication.ID, Quantity: 20, UnitCost: 6.50},
		))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(purchase.Reference, "PUR-"))
		assert.Equal(t, enum.PurchaseStatusPending, purchase.Status)
		assert.Equal(t, int64(13000), purchase.Total)
		require.Len(t, purchase.Lines, 1)
		assert.Equal(t, int64(650), purchase.Lines[0].UnitCost)
		assert.Equal(t, int64(13000), purchase.Lines[0].LineTotal)

		// Ordering never touches stock
		assert.Equal(t, 5, f.medicationRepo.stockOf(medication.ID))
	})

	t.Run("no items", func(t *testing.T) {
		f := newPurchaseServiceFixture(t)

		_, err := f.svc.CreatePurchase(ctx, f.createInput())
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newPurchaseServiceFixture(t, medication)

		input := f.createInput(PurchaseItemInput{MedicationID: medication.ID, Quantity: 1, UnitCost: 1})
		input.SupplierID = uuid.New()
		_, err := f.svc.CreatePurchase(ctx, input)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("inactive supplier", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newPurchaseServiceFixture(t, medication)
		f.supplier.Active = false

		_, err := f.svc.CreatePurchase(ctx, f.createInput(
			PurchaseItemInput{MedicationID: medication.ID, Quantity: 1, UnitCost: 1},
		))
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("unknown medication", func(t *testing.T) {
		f := newPurchaseServiceFixture(t)

		_, err := f.svc.CreatePurchase(ctx, f.createInput(
			PurchaseItemInput{MedicationID: uuid.New(), Quantity: 1, UnitCost: 1},
		))
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newPurchaseServiceFixture(t, medication)

		_, err := f.svc.CreatePurchase(ctx, f.createInput(
			PurchaseItemInput{MedicationID: medication.ID, Quantity: 0, UnitCost: 1},
		))
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})
}

func TestReceivePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("receiving adds stock and writes entry movements", func(t *testing.T) {
		medication := testMedication("Amoxicilline 1g", 2000, 3)
		f := newPurchaseServiceFixture(t, medication)

		purchase, err := f.svc.CreatePurchase(ctx, f.createInput(
			PurchaseItemInput{MedicationID: medication.ID, Quantity: 10, UnitCost: 12},
		))
		require.NoError(t, err)

		received, err := f.svc.ReceivePurchase(ctx, f.userID, purchase.ID)
		require.NoError(t, err)

		assert.Equal(t, enum.PurchaseStatusReceived, received.Status)
		require.NotNil(t, received.ReceivedAt)
		assert.Equal(t, 13, f.medicationRepo.stockOf(medication.ID))

		// The audit trail points back at the order
		require.Len(t, f.purchaseRepo.movements, 1)
		movement := f.purchaseRepo.movements[0]
		assert.Equal(t, enum.MovementEntry, movement.Type)
		assert.Equal(t, 10, movement.Quantity)
		assert.Equal(t, f.userID, movement.UserID)
		require.NotNil(t, movement.ReferenceID)
		assert.Equal(t, purchase.ID, *movement.ReferenceID)
	})

	t.Run("an order can be received exactly once", func(t *testing.T) {
		medication := testMedication("Amoxicilline 1g", 2000, 3)
		f := newPurchaseServiceFixture(t, medication)

		purchase, err := f.svc.CreatePurchase(ctx, f.createInput(
			PurchaseItemInput{MedicationID: medication.ID, Quantity: 10, UnitCost: 12},
		))
		require.NoError(t, err)

		_, err = f.svc.ReceivePurchase(ctx, f.userID, purchase.ID)
		require.NoError(t, err)

		_, err = f.svc.ReceivePurchase(ctx, f.userID, purchase.ID)
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)

		// Stock was incremented only by the first receive
		assert.Equal(t, 13, f.medicationRepo.stockOf(medication.ID))
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newPurchaseServiceFixture(t)

		_, err := f.svc.ReceivePurchase(ctx, f.userID, uuid.New())
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("persistence failure restores stock", func(t *testing.T) {
		medication := testMedication("Amoxicilline 1g", 2000, 3)
		f := newPurchaseServiceFixture(t, medication)

		purchase, err := f.svc.CreatePurchase(ctx, f.createInput(
			PurchaseItemInput{MedicationID: medication.ID, Quantity: 10, UnitCost: 12},
		))
		require.NoError(t, err)

		f.purchaseRepo.markReceivedErr = errors.New("connection lost")
		_, err = f.svc.ReceivePurchase(ctx, f.userID, purchase.ID)
		assert.ErrorIs(t, err, apperror.ErrPersistence)

		assert.Equal(t, 3, f.medicationRepo.stockOf(medication.ID))
		assert.Empty(t, f.purchaseRepo.movements)
	})
}

func TestCancelPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("pending order can be cancelled", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newPurchaseServiceFixture(t, medication)

		purchase, err := f.svc.CreatePurchase(ctx, f.createInput(
			PurchaseItemInput{MedicationID: medication.ID, Quantity: 5, UnitCost: 2},
		))
		require.NoError(t, err)

		cancelled, err := f.svc.CancelPurchase(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.PurchaseStatusCancelled, cancelled.Status)
		assert.Equal(t, 5, f.medicationRepo.stockOf(medication.ID))
	})

	t.Run("received order cannot be cancelled", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newPurchaseServiceFixture(t, medication)

		purchase, err := f.svc.CreatePurchase(ctx, f.createInput(
			PurchaseItemInput{MedicationID: medication.ID, Quantity: 5, UnitCost: 2},
		))
		require.NoError(t, err)

		_, err = f.svc.ReceivePurchase(ctx, f.userID, purchase.ID)
		require.NoError(t, err)

		_, err = f.svc.CancelPurchase(ctx, purchase.ID)
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})
}
