package request

import (
	"time"

	"github.com/google/uuid"
)

// ProformaItemRequest represents one quoted line in a proforma request
type ProformaItemRequest struct {
	MedicationID uuid.UUID `json:"medication_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,gt=0"`
}

// CreateProformaRequest represents the create proforma request body
type CreateProformaRequest struct {
	ClientName string                `json:"client_name" binding:"required"`
	ValidUntil time.Time             `json:"valid_until" binding:"required"`
	Note       *string               `json:"note"`
	Items      []ProformaItemRequest `json:"items" binding:"required,min=1"`
}

// UpdateProformaStatusRequest represents the status transition request body
type UpdateProformaStatusRequest struct {
	Status int `json:"status" binding:"gte=0,lte=3"`
}
