package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
	"github.com/pharmaweb/pharmapos-api/pkg/utils"
)

// PurchaseService drives restocking: orders are placed with a supplier, then
// received, which is the only point where stock goes up through this path.
type PurchaseService struct {
	purchaseRepo   repository.PurchaseRepository
	supplierRepo   repository.SupplierRepository
	medicationRepo repository.MedicationRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	medicationRepo repository.MedicationRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:   purchaseRepo,
		supplierRepo:   supplierRepo,
		medicationRepo: medicationRepo,
	}
}

// PurchaseItemInput represents one ordered medication
type PurchaseItemInput struct {
	MedicationID uuid.UUID
	Quantity     int
	UnitCost     float64
}

// CreatePurchaseInput represents the create purchase order input
type CreatePurchaseInput struct {
	UserID     uuid.UUID
	SupplierID uuid.UUID
	Notes      *string
	Items      []PurchaseItemInput
}

// CreatePurchase creates a pending restock order. Stock is untouched until
// the order is received.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.PurchaseOrder, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("A purchase order needs at least one item")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	if !supplier.Active {
		return nil, apperror.NewBadRequestError("Supplier is inactive")
	}

	medicationIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		medicationIDs[i] = item.MedicationID
	}
	medications, err := s.medicationRepo.GetByIDs(ctx, medicationIDs)
	if err != nil {
		return nil, err
	}
	medicationMap := make(map[uuid.UUID]*entity.Medication, len(medications))
	for i := range medications {
		medicationMap[medications[i].ID] = &medications[i]
	}

	var total int64
	lines := make([]entity.PurchaseLine, 0, len(input.Items))
	for _, item := range input.Items {
		medication, exists := medicationMap[item.MedicationID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Medication %s", item.MedicationID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Quantity must be positive")
		}
		if item.UnitCost < 0 {
			return nil, apperror.NewBadRequestError("Unit cost cannot be negative")
		}

		unitCost := int64(item.UnitCost*100 + 0.5)
		lineTotal := unitCost * int64(item.Quantity)
		total += lineTotal

		lines = append(lines, entity.PurchaseLine{
			MedicationID: medication.ID,
			Name:         medication.Name,
			Quantity:     item.Quantity,
			UnitCost:     unitCost,
			LineTotal:    lineTotal,
		})
	}

	purchase := &entity.PurchaseOrder{
		Reference:  utils.GenerateReferenceNo("PUR"),
		SupplierID: input.SupplierID,
		UserID:     input.UserID,
		OrderDate:  time.Now(),
		Status:     enum.PurchaseStatusPending,
		Total:      total,
		Notes:      input.Notes,
	}

	if err := s.purchaseRepo.Create(ctx, purchase, lines); err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithLines(ctx, purchase.ID)
}

// ReceivePurchase books the delivery of a pending order: stock goes up for
// every line and an entry movement referencing the order is written. An order
// can be received exactly once.
func (s *PurchaseService) ReceivePurchase(ctx context.Context, userID, purchaseID uuid.UUID) (*entity.PurchaseOrder, error) {
	purchase, err := s.purchaseRepo.GetWithLines(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if purchase.Status != enum.PurchaseStatusPending {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Purchase order is already %s", purchase.Status))
	}

	stockIncrements := make(map[uuid.UUID]int, len(purchase.Lines))
	movements := make([]entity.StockMovement, 0, len(purchase.Lines))
	for _, line := range purchase.Lines {
		stockIncrements[line.MedicationID] = line.Quantity
		movements = append(movements, entity.StockMovement{
			MedicationID: line.MedicationID,
			Type:         enum.MovementEntry,
			Quantity:     line.Quantity,
			UserID:       userID,
			ReferenceID:  &purchase.ID,
		})
	}

	if err := s.medicationRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return nil, err
	}

	now := time.Now()
	purchase.ReceivedAt = &now
	if err := s.purchaseRepo.MarkReceived(ctx, purchase, movements); err != nil {
		// Stock was already incremented, take it back out
		_, _ = s.medicationRepo.AtomicDecrementBatch(ctx, stockIncrements)
		return nil, apperror.ErrPersistence
	}

	purchase.Status = enum.PurchaseStatusReceived
	return purchase, nil
}

// CancelPurchase cancels a pending order. Received orders already moved
// stock and cannot be cancelled.
func (s *PurchaseService) CancelPurchase(ctx context.Context, purchaseID uuid.UUID) (*entity.PurchaseOrder, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if purchase.Status != enum.PurchaseStatusPending {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Purchase order is already %s", purchase.Status))
	}

	if err := s.purchaseRepo.UpdateStatus(ctx, purchaseID, enum.PurchaseStatusCancelled); err != nil {
		return nil, err
	}

	purchase.Status = enum.PurchaseStatusCancelled
	return purchase, nil
}

// GetPurchase retrieves a purchase order with its lines
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	purchase, err := s.purchaseRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return purchase, nil
}

// ListPurchases lists purchase orders with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}
