package repository

import (
	"context"

	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
)

// PharmacyRepository defines the interface for the pharmacy profile
type PharmacyRepository interface {
	// Get returns the pharmacy profile, nil when none has been configured
	Get(ctx context.Context) (*entity.Pharmacy, error)
	// Upsert creates or updates the single pharmacy profile row
	Upsert(ctx context.Context, pharmacy *entity.Pharmacy) error
}
