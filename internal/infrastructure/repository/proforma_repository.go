package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	domainRepo "github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
	"gorm.io/gorm"
)

type proformaRepository struct {
	db *gorm.DB
}

// NewProformaRepository creates a new proforma repository
func NewProformaRepository(db *gorm.DB) domainRepo.ProformaRepository {
	return &proformaRepository{db: db}
}

// Create persists the proforma and its detail lines in a single transaction
func (r *proformaRepository) Create(ctx context.Context, proforma *entity.Proforma, details []entity.ProformaDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(proforma).Error; err != nil {
			return err
		}
		if len(details) > 0 {
			for i := range details {
				details[i].ProformaID = proforma.ID
			}
			if err := tx.Create(&details).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *proformaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	var proforma entity.Proforma
	err := r.db.WithContext(ctx).First(&proforma, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proforma, err
}

func (r *proformaRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	var proforma entity.Proforma
	err := r.db.WithContext(ctx).
		Preload("Details").
		First(&proforma, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proforma, err
}

func (r *proformaRepository) Update(ctx context.Context, proforma *entity.Proforma) error {
	return r.db.WithContext(ctx).Save(proforma).Error
}

func (r *proformaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.ProformaDetail{}, "proforma_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Proforma{}, "id = ?", id).Error
	})
}

func (r *proformaRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Proforma, int64, error) {
	var proformas []entity.Proforma
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Proforma{})

	if search != "" {
		query = query.Where("reference ILIKE ? OR client_name ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&proformas).Error

	return proformas, total, err
}
