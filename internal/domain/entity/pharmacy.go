package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pharmacy holds the pharmacy profile printed in the receipt header.
// There is a single row in practice.
type Pharmacy struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Street     string         `gorm:"size:255" json:"street"`
	City       string         `gorm:"size:100" json:"city"`
	PostalCode string         `gorm:"size:20" json:"postal_code"`
	Country    string         `gorm:"size:100" json:"country"`
	Phone      string         `gorm:"size:20" json:"phone"`
	Email      *string        `gorm:"size:100" json:"email,omitempty"`
	VATNumber  *string        `gorm:"size:50" json:"vat_number,omitempty"`
	Greeting   string         `gorm:"size:255;default:'Merci de votre visite !'" json:"greeting"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating the pharmacy profile
func (p *Pharmacy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Pharmacy model
func (Pharmacy) TableName() string {
	return "pharmacies"
}
