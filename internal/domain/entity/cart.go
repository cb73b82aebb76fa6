package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of an in-progress sale. Name and price are
// snapshotted from the catalog at add time so later catalog edits do not
// change a cart under the cashier.
type CartItem struct {
	MedicationID uuid.UUID `json:"medication_id"`
	Name         string    `json:"name"`
	UnitPrice    int64     `json:"-"` // centimes
	Quantity     int       `json:"quantity"`
}

// LineTotal returns unit price times quantity in centimes
func (i CartItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// MarshalJSON converts centime prices to decimals for API responses
func (i CartItem) MarshalJSON() ([]byte, error) {
	type Alias CartItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		LineTotal: float64(i.LineTotal()) / 100,
	})
}

// Cart is the in-progress, session-owned collection of items being sold.
// It lives in memory only; nothing is persisted until the sale is finalized.
// Item order is insertion order and is preserved on the receipt.
type Cart struct {
	SessionID uuid.UUID  `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total recomputes the cart total from its items, in centimes.
// The total is never stored; it is always derived so it cannot drift.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem returns the index of the line holding the given medication, or -1
func (c *Cart) FindItem(medicationID uuid.UUID) int {
	for i, item := range c.Items {
		if item.MedicationID == medicationID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy safe to hand outside the store
func (c *Cart) Clone() *Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{
		SessionID: c.SessionID,
		Items:     items,
		UpdatedAt: c.UpdatedAt,
	}
}

// MarshalJSON adds the derived total to API responses
func (c Cart) MarshalJSON() ([]byte, error) {
	type Alias Cart
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(c),
		Total: float64(c.Total()) / 100,
	})
}
