package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// StockMovementRepository defines the interface for the stock audit trail
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByMedication(ctx context.Context, medicationID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockMovement, int64, error)
}
