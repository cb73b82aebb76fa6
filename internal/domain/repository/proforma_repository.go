package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// ProformaRepository defines the interface for proforma (quote) data operations
type ProformaRepository interface {
	Create(ctx context.Context, proforma *entity.Proforma, details []entity.ProformaDetail) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Proforma, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Proforma, error)
	Update(ctx context.Context, proforma *entity.Proforma) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Proforma, int64, error)
}
