package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// PatientService manages the patient register
type PatientService struct {
	patientRepo repository.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repository.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// PatientInput carries patient fields as submitted
type PatientInput struct {
	FirstName   string
	LastName    string
	BirthDate   *time.Time
	Phone       string
	Email       *string
	Address     *string
	Insurance   *string
	InsuranceNo *string
	Allergies   *string
}

// CreatePatient registers a new patient with a generated code
func (s *PatientService) CreatePatient(ctx context.Context, input *PatientInput) (*entity.Patient, error) {
	count, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		Code:        fmt.Sprintf("PAT-%05d", count+1),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		BirthDate:   input.BirthDate,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		Insurance:   input.Insurance,
		InsuranceNo: input.InsuranceNo,
		Allergies:   input.Allergies,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// GetPatient retrieves a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// UpdatePatient updates a patient's record
func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, input *PatientInput) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	if input.FirstName != "" {
		patient.FirstName = input.FirstName
	}
	if input.LastName != "" {
		patient.LastName = input.LastName
	}
	if input.Phone != "" {
		patient.Phone = input.Phone
	}
	patient.BirthDate = input.BirthDate
	patient.Email = input.Email
	patient.Address = input.Address
	patient.Insurance = input.Insurance
	patient.InsuranceNo = input.InsuranceNo
	patient.Allergies = input.Allergies

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// DeletePatient removes a patient from the register
func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return apperror.NewNotFoundError("Patient")
	}
	return s.patientRepo.Delete(ctx, id)
}

// ListPatients lists patients with search
func (s *PatientService) ListPatients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Patient], error) {
	patients, total, err := s.patientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(patients, pag), nil
}
