package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// CatalogService manages the medication catalog
type CatalogService struct {
	medicationRepo repository.MedicationRepository
	movementRepo   repository.StockMovementRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(medicationRepo repository.MedicationRepository, movementRepo repository.StockMovementRepository) *CatalogService {
	return &CatalogService{
		medicationRepo: medicationRepo,
		movementRepo:   movementRepo,
	}
}

// MedicationInput carries catalog fields with decimal prices as submitted
type MedicationInput struct {
	CIPCode       string
	Name          string
	DCI           string
	Form          string
	Dosage        string
	Category      string
	Stock         int
	MinimumStock  int
	PurchasePrice float64
	SellingPrice  float64
	Reimbursable  bool
	Packaging     string
}

// CreateMedication adds a medication to the catalog
func (s *CatalogService) CreateMedication(ctx context.Context, input *MedicationInput) (*entity.Medication, error) {
	existing, err := s.medicationRepo.GetByCIPCode(ctx, input.CIPCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A medication with this CIP code already exists")
	}

	medication := &entity.Medication{
		CIPCode:      input.CIPCode,
		Name:         input.Name,
		DCI:          input.DCI,
		Form:         input.Form,
		Dosage:       input.Dosage,
		Category:     input.Category,
		Stock:        input.Stock,
		MinimumStock: input.MinimumStock,
		Reimbursable: input.Reimbursable,
		Packaging:    input.Packaging,
	}
	medication.SetPurchasePriceFromDecimal(input.PurchasePrice)
	medication.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.medicationRepo.Create(ctx, medication); err != nil {
		return nil, err
	}

	return medication, nil
}

// GetMedication retrieves a medication by ID
func (s *CatalogService) GetMedication(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	medication, err := s.medicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, apperror.NewNotFoundError("Medication")
	}
	return medication, nil
}

// UpdateMedication updates catalog fields. Stock is adjusted through
// AdjustStock, not here, so price edits cannot race with sales.
func (s *CatalogService) UpdateMedication(ctx context.Context, id uuid.UUID, input *MedicationInput) (*entity.Medication, error) {
	medication, err := s.medicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, apperror.NewNotFoundError("Medication")
	}

	if input.CIPCode != "" && input.CIPCode != medication.CIPCode {
		existing, err := s.medicationRepo.GetByCIPCode(ctx, input.CIPCode)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != medication.ID {
			return nil, apperror.NewConflictError("A medication with this CIP code already exists")
		}
		medication.CIPCode = input.CIPCode
	}

	if input.Name != "" {
		medication.Name = input.Name
	}
	if input.DCI != "" {
		medication.DCI = input.DCI
	}
	medication.Form = input.Form
	medication.Dosage = input.Dosage
	if input.Category != "" {
		medication.Category = input.Category
	}
	if input.MinimumStock > 0 {
		medication.MinimumStock = input.MinimumStock
	}
	medication.Reimbursable = input.Reimbursable
	medication.Packaging = input.Packaging
	if input.PurchasePrice > 0 {
		medication.SetPurchasePriceFromDecimal(input.PurchasePrice)
	}
	if input.SellingPrice > 0 {
		medication.SetSellingPriceFromDecimal(input.SellingPrice)
	}

	if err := s.medicationRepo.Update(ctx, medication); err != nil {
		return nil, err
	}

	return medication, nil
}

// DeleteMedication removes a medication from the catalog
func (s *CatalogService) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	medication, err := s.medicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if medication == nil {
		return apperror.NewNotFoundError("Medication")
	}
	return s.medicationRepo.Delete(ctx, id)
}

// SearchMedications serves the POS search box
func (s *CatalogService) SearchMedications(ctx context.Context, query string, limit int) ([]entity.Medication, error) {
	return s.medicationRepo.Search(ctx, query, limit)
}

// ListMedications lists the catalog with filtering
func (s *CatalogService) ListMedications(ctx context.Context, params *repository.MedicationFilterParams) (*pagination.PaginatedResult[entity.Medication], error) {
	medications, total, err := s.medicationRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(medications, pag), nil
}

// GetLowStock lists medications at or below their alert threshold
func (s *CatalogService) GetLowStock(ctx context.Context) ([]entity.Medication, error) {
	return s.medicationRepo.GetLowStock(ctx)
}

// AdjustStockInput represents a manual stock correction
type AdjustStockInput struct {
	MedicationID uuid.UUID
	Quantity     int // positive adds stock, negative removes
	UserID       uuid.UUID
	Note         *string
}

// AdjustStock applies a manual stock correction through the same atomic
// primitives the checkout uses, and records the movement.
func (s *CatalogService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.Medication, error) {
	medication, err := s.medicationRepo.GetByID(ctx, input.MedicationID)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, apperror.NewNotFoundError("Medication")
	}

	if input.Quantity == 0 {
		return medication, nil
	}

	movementType := enum.MovementEntry
	if input.Quantity > 0 {
		err = s.medicationRepo.AtomicIncrementBatch(ctx, map[uuid.UUID]int{input.MedicationID: input.Quantity})
	} else {
		movementType = enum.MovementAdjustment
		var failedIDs []uuid.UUID
		failedIDs, err = s.medicationRepo.AtomicDecrementBatch(ctx, map[uuid.UUID]int{input.MedicationID: -input.Quantity})
		if err == nil && len(failedIDs) > 0 {
			return nil, apperror.NewInsufficientStockError(medication.Name)
		}
	}
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity < 0 {
		quantity = -quantity
	}
	movement := &entity.StockMovement{
		MedicationID: input.MedicationID,
		Type:         movementType,
		Quantity:     quantity,
		UserID:       input.UserID,
		Note:         input.Note,
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	return s.medicationRepo.GetByID(ctx, input.MedicationID)
}

// GetStockMovements lists the audit trail for one medication
func (s *CatalogService) GetStockMovements(ctx context.Context, medicationID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StockMovement], error) {
	movements, total, err := s.movementRepo.ListByMedication(ctx, medicationID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(movements, pag), nil
}
