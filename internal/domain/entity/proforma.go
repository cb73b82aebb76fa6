package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Proforma represents a persisted quote, separate from the checkout flow
type Proforma struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Reference  string              `gorm:"size:100;unique;not null" json:"reference"`
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientName string              `gorm:"size:255;not null" json:"client_name"`
	ValidUntil time.Time           `gorm:"type:date;not null" json:"valid_until"`
	Total      int64               `gorm:"default:0" json:"-"` // Stored in centimes
	Status     enum.ProformaStatus `gorm:"default:0" json:"status"`
	Note       *string             `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	DeletedAt  gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	User    User            `gorm:"foreignKey:UserID" json:"-"`
	Details []ProformaDetail `gorm:"foreignKey:ProformaID" json:"details,omitempty"`
}

// MarshalJSON converts the centime total to a decimal for API responses
func (p Proforma) MarshalJSON() ([]byte, error) {
	type Alias Proforma
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(p),
		Total: float64(p.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new proforma
func (p *Proforma) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Proforma model
func (Proforma) TableName() string {
	return "proformas"
}

// ProformaDetail represents a line item in a proforma
type ProformaDetail struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProformaID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"proforma_id"`
	MedicationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"medication_id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	UnitPrice    int64          `gorm:"not null" json:"-"` // Stored in centimes
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Proforma   Proforma   `gorm:"foreignKey:ProformaID" json:"-"`
	Medication Medication `gorm:"foreignKey:MedicationID" json:"-"`
}

// MarshalJSON converts centime amounts to decimals for API responses
func (d ProformaDetail) MarshalJSON() ([]byte, error) {
	type Alias ProformaDetail
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		SubTotal  float64 `json:"sub_total"`
	}{
		Alias:     Alias(d),
		UnitPrice: float64(d.UnitPrice) / 100,
		SubTotal:  float64(d.UnitPrice*int64(d.Quantity)) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new proforma detail
func (d *ProformaDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProformaDetail model
func (ProformaDetail) TableName() string {
	return "proforma_details"
}
