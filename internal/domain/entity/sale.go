package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale is a finalized, immutable checkout. It is created exactly once per
// successful finalize and never mutated afterwards.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TicketNo       string             `gorm:"size:50;unique;not null" json:"ticket_no"`
	SaleDate       time.Time          `gorm:"not null" json:"sale_date"`
	CashierID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CashierName    string             `gorm:"size:100;not null" json:"cashier_name"`
	PatientID      *uuid.UUID         `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	Total          int64              `gorm:"not null" json:"-"` // Stored in centimes
	TenderedAmount int64              `gorm:"not null" json:"-"` // Stored in centimes
	ChangeDue      int64              `gorm:"not null" json:"-"` // Stored in centimes
	PaymentMethod  enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Cashier User       `gorm:"foreignKey:CashierID" json:"-"`
	Patient *Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Lines   []SaleLine `gorm:"foreignKey:SaleID" json:"lines,omitempty"`
}

// MarshalJSON converts centime amounts to decimals for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Total          float64 `json:"total"`
		TenderedAmount float64 `json:"tendered_amount"`
		ChangeDue      float64 `json:"change_due"`
	}{
		Alias:          Alias(s),
		Total:          float64(s.Total) / 100,
		TenderedAmount: float64(s.TenderedAmount) / 100,
		ChangeDue:      float64(s.ChangeDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleLine is a denormalized snapshot of one cart line at commit time
type SaleLine struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	MedicationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"medication_id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	UnitPrice    int64          `gorm:"not null" json:"-"` // Stored in centimes
	LineTotal    int64          `gorm:"not null" json:"-"` // Stored in centimes
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale       Sale       `gorm:"foreignKey:SaleID" json:"-"`
	Medication Medication `gorm:"foreignKey:MedicationID" json:"-"`
}

// MarshalJSON converts centime amounts to decimals for API responses
func (l SaleLine) MarshalJSON() ([]byte, error) {
	type Alias SaleLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		LineTotal: float64(l.LineTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale line
func (l *SaleLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleLine model
func (SaleLine) TableName() string {
	return "sale_lines"
}

// StockMovement is the audit trail row written for every stock change
type StockMovement struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	MedicationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"medication_id"`
	Type         enum.MovementType `gorm:"size:20;not null" json:"type"`
	Quantity     int               `gorm:"not null" json:"quantity"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null" json:"user_id"`
	ReferenceID  *uuid.UUID        `gorm:"type:uuid" json:"reference_id,omitempty"`
	Note         *string           `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}

// TicketCounter backs the atomic, monotonic ticket number sequence.
// A single row holds the last assigned value.
type TicketCounter struct {
	Name  string `gorm:"size:50;primary_key"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for the TicketCounter model
func (TicketCounter) TableName() string {
	return "ticket_counters"
}
