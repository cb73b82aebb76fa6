package service

import (
	"context"

	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
)

// PharmacyService manages the pharmacy profile printed on every ticket
type PharmacyService struct {
	pharmacyRepo repository.PharmacyRepository
}

// NewPharmacyService creates a new pharmacy service
func NewPharmacyService(pharmacyRepo repository.PharmacyRepository) *PharmacyService {
	return &PharmacyService{pharmacyRepo: pharmacyRepo}
}

// GetProfile returns the pharmacy profile, or an empty profile when none is
// configured yet
func (s *PharmacyService) GetProfile(ctx context.Context) (*entity.Pharmacy, error) {
	pharmacy, err := s.pharmacyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return &entity.Pharmacy{}, nil
	}
	return pharmacy, nil
}

// PharmacyInput carries profile fields as submitted
type PharmacyInput struct {
	Name       string
	Street     string
	City       string
	PostalCode string
	Country    string
	Phone      string
	Email      *string
	VATNumber  *string
	Greeting   string
}

// UpdateProfile creates or updates the single pharmacy profile
func (s *PharmacyService) UpdateProfile(ctx context.Context, input *PharmacyInput) (*entity.Pharmacy, error) {
	pharmacy := &entity.Pharmacy{
		Name:       input.Name,
		Street:     input.Street,
		City:       input.City,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		Phone:      input.Phone,
		Email:      input.Email,
		VATNumber:  input.VATNumber,
		Greeting:   input.Greeting,
	}
	if pharmacy.Greeting == "" {
		pharmacy.Greeting = "Merci de votre visite !"
	}

	if err := s.pharmacyRepo.Upsert(ctx, pharmacy); err != nil {
		return nil, err
	}

	return pharmacy, nil
}
