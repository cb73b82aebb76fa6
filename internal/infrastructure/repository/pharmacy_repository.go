package repository

import (
	"context"
	"errors"

	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	domainRepo "github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type pharmacyRepository struct {
	db *gorm.DB
}

// NewPharmacyRepository creates a new pharmacy profile repository
func NewPharmacyRepository(db *gorm.DB) domainRepo.PharmacyRepository {
	return &pharmacyRepository{db: db}
}

func (r *pharmacyRepository) Get(ctx context.Context) (*entity.Pharmacy, error) {
	var pharmacy entity.Pharmacy
	err := r.db.WithContext(ctx).First(&pharmacy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pharmacy, err
}

// Upsert creates the profile on first save and updates the same row after
func (r *pharmacyRepository) Upsert(ctx context.Context, pharmacy *entity.Pharmacy) error {
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		pharmacy.ID = existing.ID
		return r.db.WithContext(ctx).Save(pharmacy).Error
	}
	return r.db.WithContext(ctx).Create(pharmacy).Error
}
