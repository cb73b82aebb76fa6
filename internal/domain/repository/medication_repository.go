package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// MedicationRepository defines the catalog lookup and inventory contract.
// It is the cart's only view of the catalog and the finalizer's only way to
// commit stock.
type MedicationRepository interface {
	Create(ctx context.Context, medication *entity.Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error)
	// GetByIDs retrieves multiple medications in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Medication, error)
	GetByCIPCode(ctx context.Context, code string) (*entity.Medication, error)
	Update(ctx context.Context, medication *entity.Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Search matches against commercial name or CIP code
	Search(ctx context.Context, query string, limit int) ([]entity.Medication, error)
	List(ctx context.Context, params *MedicationFilterParams) ([]entity.Medication, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Medication, error)
	// AtomicDecrementBatch conditionally decrements stock for multiple
	// medications inside one transaction. A decrement only applies when the
	// remaining stock covers it; if any medication fails the whole batch is
	// rolled back and the failed IDs are returned with a nil error.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch restores stock (finalize rollback, cancellations)
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
	Count(ctx context.Context) (int64, error)
}

// MedicationFilterParams contains filtering parameters for catalog queries
type MedicationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}
