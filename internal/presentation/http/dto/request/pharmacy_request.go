package request

// PharmacyRequest represents the pharmacy profile update request body
type PharmacyRequest struct {
	Name       string  `json:"name" binding:"required"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email" binding:"omitempty,email"`
	VATNumber  *string `json:"vat_number"`
	Greeting   string  `json:"greeting"`
}
