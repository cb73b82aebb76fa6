package request

import "github.com/google/uuid"

// AddCartItemRequest represents adding a medication to the cart
type AddCartItemRequest struct {
	MedicationID uuid.UUID `json:"medication_id" binding:"required"`
	Quantity     int       `json:"quantity"`
}

// ValidatePaymentRequest represents a payment pre-check. The tendered amount
// is a string on purpose: parsing it is part of the validation.
type ValidatePaymentRequest struct {
	PaymentMethod  string `json:"payment_method"`
	TenderedAmount string `json:"tendered_amount"`
}

// FinalizeSaleRequest represents the checkout commit request
type FinalizeSaleRequest struct {
	PaymentMethod  string     `json:"payment_method"`
	TenderedAmount string     `json:"tendered_amount"`
	PatientID      *uuid.UUID `json:"patient_id"`
}
