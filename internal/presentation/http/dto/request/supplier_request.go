package request

// CreateSupplierRequest represents the create supplier request body
type CreateSupplierRequest struct {
	Name        string  `json:"name" binding:"required"`
	Contact     string  `json:"contact"`
	Phone       string  `json:"phone" binding:"required"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	BankDetails *string `json:"bank_details"`
	Notes       *string `json:"notes"`
}

// UpdateSupplierRequest represents the update supplier request body
type UpdateSupplierRequest struct {
	Name        *string `json:"name"`
	Contact     *string `json:"contact"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	BankDetails *string `json:"bank_details"`
	Notes       *string `json:"notes"`
	Active      *bool   `json:"active"`
}
