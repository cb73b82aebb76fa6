package request

import "github.com/google/uuid"

// PurchaseItemRequest represents one ordered line in a purchase request
type PurchaseItemRequest struct {
	MedicationID uuid.UUID `json:"medication_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,gt=0"`
	UnitCost     float64   `json:"unit_cost" binding:"gte=0"`
}

// CreatePurchaseRequest represents the create purchase order request body
type CreatePurchaseRequest struct {
	SupplierID uuid.UUID             `json:"supplier_id" binding:"required"`
	Notes      *string               `json:"notes"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1"`
}
