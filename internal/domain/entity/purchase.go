package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PurchaseOrder is a restock order placed with a supplier. Stock moves only
// when the order is received, never when it is created.
type PurchaseOrder struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Reference  string              `gorm:"size:100;unique;not null" json:"reference"`
	SupplierID uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderDate  time.Time           `gorm:"not null" json:"order_date"`
	ReceivedAt *time.Time          `json:"received_at,omitempty"`
	Status     enum.PurchaseStatus `gorm:"default:0" json:"status"`
	Total      int64               `gorm:"default:0" json:"-"` // Stored in centimes
	Notes      *string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	DeletedAt  gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Supplier Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	User     User           `gorm:"foreignKey:UserID" json:"-"`
	Lines    []PurchaseLine `gorm:"foreignKey:PurchaseOrderID" json:"lines,omitempty"`
}

// MarshalJSON converts the centime total to a decimal for API responses
func (p PurchaseOrder) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrder
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(p),
		Total: float64(p.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase order
func (p *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseLine is one ordered medication with its negotiated unit cost
type PurchaseLine struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	MedicationID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"medication_id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Quantity        int            `gorm:"not null" json:"quantity"`
	UnitCost        int64          `gorm:"not null" json:"-"` // Stored in centimes
	LineTotal       int64          `gorm:"not null" json:"-"` // Stored in centimes
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"-"`
	Medication    Medication    `gorm:"foreignKey:MedicationID" json:"-"`
}

// MarshalJSON converts centime amounts to decimals for API responses
func (l PurchaseLine) MarshalJSON() ([]byte, error) {
	type Alias PurchaseLine
	return json.Marshal(&struct {
		Alias
		UnitCost  float64 `json:"unit_cost"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(l),
		UnitCost:  float64(l.UnitCost) / 100,
		LineTotal: float64(l.LineTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase line
func (l *PurchaseLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseLine model
func (PurchaseLine) TableName() string {
	return "purchase_lines"
}
