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

// ProformaService manages quotes. A proforma never touches stock; it is a
// priced offer, not a reservation.
type ProformaService struct {
	proformaRepo   repository.ProformaRepository
	medicationRepo repository.MedicationRepository
}

// NewProformaService creates a new proforma service
func NewProformaService(proformaRepo repository.ProformaRepository, medicationRepo repository.MedicationRepository) *ProformaService {
	return &ProformaService{
		proformaRepo:   proformaRepo,
		medicationRepo: medicationRepo,
	}
}

// ProformaItemInput represents one quoted line
type ProformaItemInput struct {
	MedicationID uuid.UUID
	Quantity     int
}

// CreateProformaInput represents the create proforma input
type CreateProformaInput struct {
	UserID     uuid.UUID
	ClientName string
	ValidUntil time.Time
	Note       *string
	Items      []ProformaItemInput
}

// CreateProforma creates a quote priced at current catalog prices
func (s *ProformaService) CreateProforma(ctx context.Context, input *CreateProformaInput) (*entity.Proforma, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("A proforma needs at least one item")
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
	details := make([]entity.ProformaDetail, 0, len(input.Items))
	for _, item := range input.Items {
		medication, exists := medicationMap[item.MedicationID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Medication %s", item.MedicationID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Quantity must be positive")
		}

		total += medication.SellingPrice * int64(item.Quantity)
		details = append(details, entity.ProformaDetail{
			MedicationID: medication.ID,
			Name:         medication.Name,
			Quantity:     item.Quantity,
			UnitPrice:    medication.SellingPrice,
		})
	}

	proforma := &entity.Proforma{
		Reference:  utils.GenerateReferenceNo("PRO"),
		UserID:     input.UserID,
		ClientName: input.ClientName,
		ValidUntil: input.ValidUntil,
		Total:      total,
		Status:     enum.ProformaStatusDraft,
		Note:       input.Note,
	}

	if err := s.proformaRepo.Create(ctx, proforma, details); err != nil {
		return nil, err
	}

	return s.proformaRepo.GetWithDetails(ctx, proforma.ID)
}

// GetProforma retrieves a proforma with its detail lines
func (s *ProformaService) GetProforma(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	proforma, err := s.proformaRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if proforma == nil {
		return nil, apperror.NewNotFoundError("Proforma")
	}
	return proforma, nil
}

// UpdateStatus moves a proforma through its lifecycle
func (s *ProformaService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProformaStatus) (*entity.Proforma, error) {
	proforma, err := s.proformaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proforma == nil {
		return nil, apperror.NewNotFoundError("Proforma")
	}

	if proforma.Status == enum.ProformaStatusCancelled {
		return nil, apperror.NewBadRequestError("Proforma is already cancelled")
	}

	proforma.Status = status
	if err := s.proformaRepo.Update(ctx, proforma); err != nil {
		return nil, err
	}

	return proforma, nil
}

// DeleteProforma removes a proforma and its detail lines
func (s *ProformaService) DeleteProforma(ctx context.Context, id uuid.UUID) error {
	proforma, err := s.proformaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if proforma == nil {
		return apperror.NewNotFoundError("Proforma")
	}
	return s.proformaRepo.Delete(ctx, id)
}

// ListProformas lists proformas with search
func (s *ProformaService) ListProformas(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Proforma], error) {
	proformas, total, err := s.proformaRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(proformas, pag), nil
}
