package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
	"github.com/pharmaweb/pharmapos-api/pkg/utils"
)

// SaleService finalizes carts into immutable sales and serves the sales
// history
type SaleService struct {
	cartStore      repository.CartStore
	medicationRepo repository.MedicationRepository
	saleRepo       repository.SaleRepository
	userRepo       repository.UserRepository
	patientRepo    repository.PatientRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	cartStore repository.CartStore,
	medicationRepo repository.MedicationRepository,
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
) *SaleService {
	return &SaleService{
		cartStore:      cartStore,
		medicationRepo: medicationRepo,
		saleRepo:       saleRepo,
		userRepo:       userRepo,
		patientRepo:    patientRepo,
	}
}

// FinalizeSaleInput carries everything the cashier submitted at checkout.
// TenderedAmount is the raw string as typed; validation parses it.
type FinalizeSaleInput struct {
	SessionID      uuid.UUID
	CashierID      uuid.UUID
	PatientID      *uuid.UUID
	PaymentMethod  string
	TenderedAmount string
}

// FinalizeSale turns the session's cart into a persisted sale.
//
// The cart-dependent part of the pipeline runs inside a single Mutate call,
// under the session lock: validate, decrement stock atomically, persist,
// then empty the cart. Two concurrent finalizes for the same session
// therefore serialize, and whichever runs second finds an empty cart. A
// failed finalize returns an error from the mutation, which rolls the cart
// back to its pre-call state, so the cashier observes no change.
func (s *SaleService) FinalizeSale(ctx context.Context, input *FinalizeSaleInput) (*entity.Sale, error) {
	cashier, err := s.userRepo.GetByID(ctx, input.CashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.NewNotFoundError("Cashier")
	}
	if !cashier.CanSell() {
		return nil, apperror.ErrForbidden
	}

	if input.PatientID != nil {
		patient, err := s.patientRepo.GetByID(ctx, *input.PatientID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, apperror.NewNotFoundError("Patient")
		}
	}

	var sale *entity.Sale
	_, err = s.cartStore.Mutate(ctx, input.SessionID, func(cart *entity.Cart) error {
		if cart.IsEmpty() {
			return apperror.ErrEmptyCart
		}

		payment, err := ValidatePayment(input.PaymentMethod, input.TenderedAmount, cart.Total())
		if err != nil {
			return err
		}

		// Batch fetch medications for names in error messages and movements
		medicationIDs := make([]uuid.UUID, len(cart.Items))
		for i, item := range cart.Items {
			medicationIDs[i] = item.MedicationID
		}
		medications, err := s.medicationRepo.GetByIDs(ctx, medicationIDs)
		if err != nil {
			return err
		}
		medicationMap := make(map[uuid.UUID]*entity.Medication, len(medications))
		for i := range medications {
			medicationMap[medications[i].ID] = &medications[i]
		}

		lines := make([]entity.SaleLine, 0, len(cart.Items))
		movements := make([]entity.StockMovement, 0, len(cart.Items))
		stockDecrements := make(map[uuid.UUID]int, len(cart.Items))

		for _, item := range cart.Items {
			if _, exists := medicationMap[item.MedicationID]; !exists {
				return apperror.NewNotFoundError(fmt.Sprintf("Medication %s", item.MedicationID))
			}

			lines = append(lines, entity.SaleLine{
				MedicationID: item.MedicationID,
				Name:         item.Name,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				LineTotal:    item.LineTotal(),
			})
			movements = append(movements, entity.StockMovement{
				MedicationID: item.MedicationID,
				Type:         enum.MovementExit,
				Quantity:     item.Quantity,
				UserID:       input.CashierID,
			})
			// Merged cart lines are impossible, the engine keeps one line per
			// medication, so assignment is safe
			stockDecrements[item.MedicationID] = item.Quantity
		}

		// Atomic conditional decrement: the whole batch succeeds or none of it does
		failedIDs, err := s.medicationRepo.AtomicDecrementBatch(ctx, stockDecrements)
		if err != nil {
			return err
		}
		if len(failedIDs) > 0 {
			var failedNames []string
			for _, id := range failedIDs {
				if medication, exists := medicationMap[id]; exists {
					failedNames = append(failedNames, medication.Name)
				}
			}
			return apperror.NewInsufficientStockError(strings.Join(failedNames, ", "))
		}

		seq, err := s.saleRepo.NextTicketNumber(ctx)
		if err != nil {
			_ = s.medicationRepo.AtomicIncrementBatch(ctx, stockDecrements)
			return err
		}

		sale = &entity.Sale{
			TicketNo:       utils.FormatTicketNo(seq),
			SaleDate:       time.Now(),
			CashierID:      cashier.ID,
			CashierName:    cashier.FullName(),
			PatientID:      input.PatientID,
			Total:          cart.Total(),
			TenderedAmount: payment.Tendered,
			ChangeDue:      payment.ChangeDue,
			PaymentMethod:  payment.Method,
			Lines:          lines,
		}

		if err := s.saleRepo.Create(ctx, sale, movements); err != nil {
			// Stock was already decremented, restore it
			_ = s.medicationRepo.AtomicIncrementBatch(ctx, stockDecrements)
			return apperror.ErrPersistence
		}

		// Emptied under the same lock that protected the whole finalize, so
		// nothing added after this point is ever lost
		cart.Items = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// GetSale retrieves a sale with its lines
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByTicketNo retrieves a sale by its printed ticket number
func (s *SaleService) GetSaleByTicketNo(ctx context.Context, ticketNo string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByTicketNo(ctx, ticketNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales history with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
