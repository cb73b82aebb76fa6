package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	domainRepo "github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ticketCounterName = "sale_ticket"

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Create persists the sale, its lines and the matching stock movements in a
// single transaction
func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale, movements []entity.StockMovement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		if len(movements) > 0 {
			for i := range movements {
				movements[i].ReferenceID = &sale.ID
			}
			if err := tx.Create(&movements).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Patient").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByTicketNo(ctx context.Context, ticketNo string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&sale, "ticket_no = ?", ticketNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}

	if params.PatientID != nil {
		query = query.Where("patient_id = ?", *params.PatientID)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	if params.Search != "" {
		query = query.Where("ticket_no ILIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("sale_date DESC").
		Preload("Lines").
		Find(&sales).Error

	return sales, total, err
}

// NextTicketNumber atomically advances the counter row and returns the new
// value. The UPDATE takes a row lock, so concurrent finalizations are
// serialized by the database and can never observe the same value.
func (r *saleRepository) NextTicketNumber(ctx context.Context) (int64, error) {
	var next int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.TicketCounter{Name: ticketCounterName, Value: 0}).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.TicketCounter{}).
			Where("name = ?", ticketCounterName).
			Update("value", gorm.Expr("value + 1")).Error; err != nil {
			return err
		}

		var counter entity.TicketCounter
		if err := tx.First(&counter, "name = ?", ticketCounterName).Error; err != nil {
			return err
		}

		next = counter.Value
		return nil
	})

	return next, err
}

func (r *saleRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("sale_date >= ?", since).
		Count(&total).Error
	return total, err
}

func (r *saleRepository) RevenueSince(ctx context.Context, since time.Time) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("sale_date >= ?", since).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	return revenue, err
}
