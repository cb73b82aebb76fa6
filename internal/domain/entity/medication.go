package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medication represents a catalog item the pharmacy sells
type Medication struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CIPCode      string         `gorm:"size:50;unique;not null" json:"cip_code"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	DCI          string         `gorm:"size:100;not null" json:"dci"`
	Form         string         `gorm:"size:50" json:"form"`
	Dosage       string         `gorm:"size:50" json:"dosage"`
	Category     string         `gorm:"size:100;not null" json:"category"`
	Stock        int            `gorm:"default:0" json:"stock"`
	MinimumStock int            `gorm:"default:10" json:"minimum_stock"`
	PurchasePrice int64         `gorm:"default:0" json:"-"` // Stored in centimes
	SellingPrice  int64         `gorm:"default:0" json:"-"` // Stored in centimes
	Reimbursable bool           `gorm:"default:false" json:"reimbursable"`
	Packaging    string         `gorm:"size:50" json:"packaging"`
	ExpiryDate   *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON converts centime prices to decimals for API responses
func (m Medication) MarshalJSON() ([]byte, error) {
	type Alias Medication
	return json.Marshal(&struct {
		Alias
		PurchasePrice float64 `json:"purchase_price"`
		SellingPrice  float64 `json:"selling_price"`
	}{
		Alias:         Alias(m),
		PurchasePrice: float64(m.PurchasePrice) / 100,
		SellingPrice:  float64(m.SellingPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new medication
func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Medication model
func (Medication) TableName() string {
	return "medications"
}

// IsLowStock reports whether the stock has fallen to the alert threshold
func (m *Medication) IsLowStock() bool {
	return m.Stock <= m.MinimumStock
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (m *Medication) SetSellingPriceFromDecimal(price float64) {
	m.SellingPrice = int64(price*100 + 0.5)
}

// SetPurchasePriceFromDecimal sets the purchase price from a decimal value
func (m *Medication) SetPurchasePriceFromDecimal(price float64) {
	m.PurchasePrice = int64(price*100 + 0.5)
}
