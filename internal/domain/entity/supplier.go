package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier represents a wholesaler the pharmacy restocks from
type Supplier struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Contact     string         `gorm:"size:100" json:"contact"`
	Phone       string         `gorm:"size:20;not null" json:"phone"`
	Email       *string        `gorm:"size:100" json:"email,omitempty"`
	Address     *string        `gorm:"type:text" json:"address,omitempty"`
	BankDetails *string        `gorm:"type:text" json:"bank_details,omitempty"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Purchases []PurchaseOrder `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
