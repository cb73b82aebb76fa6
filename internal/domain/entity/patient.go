package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a pharmacy customer
type Patient struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code        string         `gorm:"size:20;unique;not null" json:"code"`
	FirstName   string         `gorm:"size:50;not null" json:"first_name"`
	LastName    string         `gorm:"size:50;not null" json:"last_name"`
	BirthDate   *time.Time     `gorm:"type:date" json:"birth_date,omitempty"`
	Phone       string         `gorm:"size:20;not null" json:"phone"`
	Email       *string        `gorm:"size:100" json:"email,omitempty"`
	Address     *string        `gorm:"type:text" json:"address,omitempty"`
	Insurance   *string        `gorm:"size:100" json:"insurance,omitempty"`
	InsuranceNo *string        `gorm:"size:50" json:"insurance_no,omitempty"`
	Allergies   *string        `gorm:"type:text" json:"allergies,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:PatientID" json:"-"`
}

// FullName returns the patient's display name
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// BeforeCreate generates a UUID before creating a new patient
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Patient model
func (Patient) TableName() string {
	return "patients"
}
