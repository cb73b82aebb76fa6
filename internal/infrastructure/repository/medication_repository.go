package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	domainRepo "github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type medicationRepository struct {
	db *gorm.DB
}

// NewMedicationRepository creates a new medication repository
func NewMedicationRepository(db *gorm.DB) domainRepo.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, medication *entity.Medication) error {
	return r.db.WithContext(ctx).Create(medication).Error
}

func (r *medicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	var medication entity.Medication
	err := r.db.WithContext(ctx).First(&medication, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &medication, err
}

// GetByIDs retrieves multiple medications by their IDs in a single query
func (r *medicationRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Medication, error) {
	if len(ids) == 0 {
		return []entity.Medication{}, nil
	}
	var medications []entity.Medication
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&medications).Error
	return medications, err
}

func (r *medicationRepository) GetByCIPCode(ctx context.Context, code string) (*entity.Medication, error) {
	var medication entity.Medication
	err := r.db.WithContext(ctx).First(&medication, "cip_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &medication, err
}

func (r *medicationRepository) Update(ctx context.Context, medication *entity.Medication) error {
	return r.db.WithContext(ctx).Save(medication).Error
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Medication{}, "id = ?", id).Error
}

// Search matches against commercial name or CIP code, the lookup the POS
// search box performs
func (r *medicationRepository) Search(ctx context.Context, query string, limit int) ([]entity.Medication, error) {
	if limit <= 0 {
		limit = 10
	}
	var medications []entity.Medication
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR cip_code ILIKE ?", "%"+query+"%", "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Find(&medications).Error
	return medications, err
}

func (r *medicationRepository) List(ctx context.Context, params *domainRepo.MedicationFilterParams) ([]entity.Medication, int64, error) {
	var medications []entity.Medication
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Medication{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR cip_code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.LowStock {
		query = query.Where("stock <= minimum_stock")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&medications).Error

	return medications, total, err
}

func (r *medicationRepository) GetLowStock(ctx context.Context) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := r.db.WithContext(ctx).
		Where("stock <= minimum_stock").
		Order("stock ASC").
		Find(&medications).Error
	return medications, err
}

// AtomicDecrementBatch conditionally decrements stock for multiple
// medications in a single transaction. The conditional UPDATE
// (stock = stock - n WHERE stock >= n) makes check and decrement one atomic
// step, so concurrent finalizations cannot drive stock below zero. If any
// medication has insufficient stock the entire transaction is rolled back.
func (r *medicationRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.Medication{}).
				Where("id = ? AND stock >= ?", id, amount).
				Update("stock", gorm.Expr("stock - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// Rolled back because of insufficient stock: report the IDs, not the
	// sentinel error used to force the rollback
	if errors.Is(err, gorm.ErrInvalidTransaction) && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

// AtomicIncrementBatch atomically restores stock for multiple medications
func (r *medicationRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range increments {
			if err := tx.Model(&entity.Medication{}).
				Where("id = ?", id).
				Update("stock", gorm.Expr("stock + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *medicationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Medication{}).Count(&total).Error
	return total, err
}
