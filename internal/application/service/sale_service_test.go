package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/internal/infrastructure/cartstore"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleServiceFixture struct {
	svc            *SaleService
	cartSvc        *CartService
	medicationRepo *mockMedicationRepo
	saleRepo       *mockSaleRepo
	cashier        *entity.User
	sessionID      uuid.UUID
}

func newSaleServiceFixture(t *testing.T, medications ...*entity.Medication) *saleServiceFixture {
	t.Helper()

	store := cartstore.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	medicationRepo := newMockMedicationRepo(medications...)
	saleRepo := &mockSaleRepo{}
	cashier := &entity.User{
		ID:        uuid.New(),
		FirstName: "Marie",
		LastName:  "Kabongo",
		Login:     "mkabongo",
		Role:      entity.RoleCashier,
		Active:    true,
	}

	return &saleServiceFixture{
		svc:            NewSaleService(store, medicationRepo, saleRepo, newMockUserRepo(cashier), newMockPatientRepo()),
		cartSvc:        NewCartService(store, medicationRepo),
		medicationRepo: medicationRepo,
		saleRepo:       saleRepo,
		cashier:        cashier,
		sessionID:      uuid.New(),
	}
}

func (f *saleServiceFixture) finalizeInput(method, tendered string) *FinalizeSaleInput {
	return &FinalizeSaleInput{
		SessionID:      f.sessionID,
		CashierID:      f.cashier.ID,
		PaymentMethod:  method,
		TenderedAmount: tendered,
	}
}

func TestFinalizeSale(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newSaleServiceFixture(t, medication)

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 2)
		require.NoError(t, err)

		sale, err := f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "25.00"))
		require.NoError(t, err)

		assert.Equal(t, "TKT-000001", sale.TicketNo)
		assert.Equal(t, int64(2000), sale.Total)
		assert.Equal(t, int64(2500), sale.TenderedAmount)
		assert.Equal(t, int64(500), sale.ChangeDue)
		assert.Equal(t, enum.PaymentCash, sale.PaymentMethod)
		assert.Equal(t, "Marie Kabongo", sale.CashierName)
		require.Len(t, sale.Lines, 1)
		assert.Equal(t, 2, sale.Lines[0].Quantity)
		assert.Equal(t, int64(2000), sale.Lines[0].LineTotal)

		// Stock decremented exactly once
		assert.Equal(t, 3, f.medicationRepo.stockOf(medication.ID))

		// Cart cleared after success
		cart, err := f.cartSvc.Snapshot(ctx, f.sessionID)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("ticket numbers are monotonic", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 10)
		f := newSaleServiceFixture(t, medication)

		for _, want := range []string{"TKT-000001", "TKT-000002", "TKT-000003"} {
			_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 1)
			require.NoError(t, err)
			sale, err := f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "10.00"))
			require.NoError(t, err)
			assert.Equal(t, want, sale.TicketNo)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newSaleServiceFixture(t)

		_, err := f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "25.00"))
		assert.ErrorIs(t, err, apperror.ErrEmptyCart)
		assert.Empty(t, f.saleRepo.sales)
	})

	t.Run("payment validation failure leaves everything untouched", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newSaleServiceFixture(t, medication)

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 2)
		require.NoError(t, err)

		_, err = f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "19.99"))
		assert.ErrorIs(t, err, apperror.ErrInsufficientPayment)

		assert.Equal(t, 5, f.medicationRepo.stockOf(medication.ID))
		assert.Empty(t, f.saleRepo.sales)

		cart, err := f.cartSvc.Snapshot(ctx, f.sessionID)
		require.NoError(t, err)
		assert.False(t, cart.IsEmpty())
	})

	t.Run("insufficient stock at commit time", func(t *testing.T) {
		medication := testMedication("Amoxicilline 1g", 2000, 5)
		f := newSaleServiceFixture(t, medication)

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 3)
		require.NoError(t, err)

		// Another sale drains the stock between add and finalize
		_, err = f.medicationRepo.AtomicDecrementBatch(ctx, map[uuid.UUID]int{medication.ID: 4})
		require.NoError(t, err)

		_, err = f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "100.00"))
		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))
		assert.Contains(t, err.Error(), "Amoxicilline 1g")

		// Nothing was sold and the cart survives for the cashier to fix
		assert.Empty(t, f.saleRepo.sales)
		cart, err := f.cartSvc.Snapshot(ctx, f.sessionID)
		require.NoError(t, err)
		assert.False(t, cart.IsEmpty())
	})

	t.Run("multi line cart is all or nothing", func(t *testing.T) {
		inStock := testMedication("Paracetamol 500mg", 1000, 10)
		outOfStock := testMedication("Ibuprofene 400mg", 1500, 1)
		f := newSaleServiceFixture(t, inStock, outOfStock)

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, inStock.ID, 2)
		require.NoError(t, err)
		_, err = f.cartSvc.AddItem(ctx, f.sessionID, outOfStock.ID, 1)
		require.NoError(t, err)

		_, err = f.medicationRepo.AtomicDecrementBatch(ctx, map[uuid.UUID]int{outOfStock.ID: 1})
		require.NoError(t, err)

		_, err = f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "100.00"))
		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))

		// The in-stock line was not decremented either
		assert.Equal(t, 10, f.medicationRepo.stockOf(inStock.ID))
		assert.Empty(t, f.saleRepo.sales)
	})

	t.Run("persistence failure restores stock and keeps the cart", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newSaleServiceFixture(t, medication)
		f.saleRepo.createErr = errors.New("connection lost")

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 2)
		require.NoError(t, err)

		_, err = f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "25.00"))
		assert.ErrorIs(t, err, apperror.ErrPersistence)

		// Compensation put the stock back
		assert.Equal(t, 5, f.medicationRepo.stockOf(medication.ID))
		require.Len(t, f.medicationRepo.increments, 1)

		cart, err := f.cartSvc.Snapshot(ctx, f.sessionID)
		require.NoError(t, err)
		assert.False(t, cart.IsEmpty())
	})

	t.Run("ticket counter failure restores stock", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newSaleServiceFixture(t, medication)
		f.saleRepo.counterErr = errors.New("counter unavailable")

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 2)
		require.NoError(t, err)

		_, err = f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "25.00"))
		require.Error(t, err)

		assert.Equal(t, 5, f.medicationRepo.stockOf(medication.ID))
		assert.Empty(t, f.saleRepo.sales)
	})

	t.Run("concurrent finalizes of one session sell the cart once", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 4)
		f := newSaleServiceFixture(t, medication)

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 2)
		require.NoError(t, err)

		// A double-submitted checkout: both requests race on the same
		// session. The session lock serializes them, so the second one
		// finds the cart already emptied.
		errs := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				_, err := f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "25.00"))
				errs <- err
			}()
		}

		var succeeded, emptied int
		for i := 0; i < 2; i++ {
			err := <-errs
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperror.ErrEmptyCart):
				emptied++
			default:
				t.Fatalf("unexpected finalize error: %v", err)
			}
		}

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, emptied)
		assert.Len(t, f.saleRepo.sales, 1)
		assert.Equal(t, 2, f.medicationRepo.stockOf(medication.ID))
	})

	t.Run("item added during a failing finalize is kept", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newSaleServiceFixture(t, medication)

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 2)
		require.NoError(t, err)

		// Underpayment fails inside the locked mutation; the rollback must
		// restore the cart exactly as it was, and a subsequent add lands on
		// that restored cart.
		_, err = f.svc.FinalizeSale(ctx, f.finalizeInput("cash", "1.00"))
		assert.ErrorIs(t, err, apperror.ErrInsufficientPayment)

		cart, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 1)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Quantity)
	})

	t.Run("unknown cashier", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newSaleServiceFixture(t, medication)

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 1)
		require.NoError(t, err)

		input := f.finalizeInput("cash", "25.00")
		input.CashierID = uuid.New()
		_, err = f.svc.FinalizeSale(ctx, input)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
		assert.Equal(t, 5, f.medicationRepo.stockOf(medication.ID))
	})

	t.Run("unknown patient", func(t *testing.T) {
		medication := testMedication("Paracetamol 500mg", 1000, 5)
		f := newSaleServiceFixture(t, medication)

		_, err := f.cartSvc.AddItem(ctx, f.sessionID, medication.ID, 1)
		require.NoError(t, err)

		unknown := uuid.New()
		input := f.finalizeInput("cash", "25.00")
		input.PatientID = &unknown
		_, err = f.svc.FinalizeSale(ctx, input)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}
