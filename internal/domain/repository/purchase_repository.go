package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// PurchaseRepository defines the persistent purchase order contract
type PurchaseRepository interface {
	// Create persists the order and its lines in a single transaction
	Create(ctx context.Context, purchase *entity.PurchaseOrder, lines []entity.PurchaseLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	// GetWithLines loads an order together with its lines and supplier
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	// MarkReceived stamps the order received and writes the matching stock
	// movements in a single transaction. Nothing is written if any part fails.
	MarkReceived(ctx context.Context, purchase *entity.PurchaseOrder, movements []entity.StockMovement) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.PurchaseOrder, int64, error)
}

// PurchaseFilterParams contains filtering parameters for purchase order queries
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	SupplierID *uuid.UUID
	Status     *enum.PurchaseStatus
	Search     string
}
