package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/pkg/apperror"
)

// CartService drives the in-progress sale of one cashier session. All
// mutations go through the store, which serializes them per session, so two
// concurrent requests for the same session can never interleave.
type CartService struct {
	cartStore      repository.CartStore
	medicationRepo repository.MedicationRepository
}

// NewCartService creates a new cart service
func NewCartService(cartStore repository.CartStore, medicationRepo repository.MedicationRepository) *CartService {
	return &CartService{
		cartStore:      cartStore,
		medicationRepo: medicationRepo,
	}
}

// AddItem adds a medication to the session's cart. Adding the same
// medication again merges into the existing line. The merged quantity is
// validated against current stock; on any failure the cart is unchanged.
func (s *CartService) AddItem(ctx context.Context, sessionID, medicationID uuid.UUID, quantity int) (*entity.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}

	medication, err := s.medicationRepo.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, apperror.NewNotFoundError("Medication")
	}

	return s.cartStore.Mutate(ctx, sessionID, func(cart *entity.Cart) error {
		requested := quantity
		idx := cart.FindItem(medicationID)
		if idx >= 0 {
			requested += cart.Items[idx].Quantity
		}

		// Advisory check against the stock read above. The finalize step
		// re-checks atomically, so overselling is impossible either way.
		if medication.Stock < requested {
			return apperror.NewInsufficientStockError(medication.Name)
		}

		if idx >= 0 {
			cart.Items[idx].Quantity = requested
			return nil
		}

		cart.Items = append(cart.Items, entity.CartItem{
			MedicationID: medication.ID,
			Name:         medication.Name,
			UnitPrice:    medication.SellingPrice,
			Quantity:     quantity,
		})
		return nil
	})
}

// RemoveItem removes the cart line at the given zero-based position.
// An out-of-range index leaves the cart untouched.
func (s *CartService) RemoveItem(ctx context.Context, sessionID uuid.UUID, index int) (*entity.Cart, error) {
	return s.cartStore.Mutate(ctx, sessionID, func(cart *entity.Cart) error {
		if index < 0 || index >= len(cart.Items) {
			return apperror.ErrIndexOutOfRange
		}
		cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
		return nil
	})
}

// Clear empties the session's cart. Clearing an empty cart is not an error.
func (s *CartService) Clear(ctx context.Context, sessionID uuid.UUID) error {
	return s.cartStore.Clear(ctx, sessionID)
}

// Snapshot returns a detached copy of the session's cart with its derived total
func (s *CartService) Snapshot(ctx context.Context, sessionID uuid.UUID) (*entity.Cart, error) {
	return s.cartStore.Snapshot(ctx, sessionID)
}
