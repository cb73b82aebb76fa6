package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// SaleRepository defines the persistent sales ledger contract
type SaleRepository interface {
	// Create persists the sale, its line snapshots and the matching stock
	// movements in a single transaction. Nothing is written if any part fails.
	Create(ctx context.Context, sale *entity.Sale, movements []entity.StockMovement) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetWithLines loads a sale together with its line snapshots
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByTicketNo(ctx context.Context, ticketNo string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// NextTicketNumber atomically advances the ticket counter and returns the
	// new value. Values are unique and monotonic across concurrent callers;
	// gaps are acceptable, duplicates are not.
	NextTicketNumber(ctx context.Context) (int64, error)
	// CountSince / RevenueSince feed the sales dashboard
	CountSince(ctx context.Context, since time.Time) (int64, error)
	RevenueSince(ctx context.Context, since time.Time) (int64, error)
}

// SaleFilterParams contains filtering parameters for sales history queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	CashierID  *uuid.UUID
	PatientID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}
