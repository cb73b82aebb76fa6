package request

import "time"

// PatientRequest represents the create/update patient request body
type PatientRequest struct {
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name" binding:"required"`
	BirthDate   *time.Time `json:"birth_date"`
	Phone       string     `json:"phone" binding:"required"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	Address     *string    `json:"address"`
	Insurance   *string    `json:"insurance"`
	InsuranceNo *string    `json:"insurance_no"`
	Allergies   *string    `json:"allergies"`
}
