package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin      = "admin"
	RolePharmacist = "pharmacist"
	RoleCashier    = "cashier"
)

// User represents a pharmacy staff member
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string         `gorm:"size:50;not null" json:"first_name"`
	LastName  string         `gorm:"size:50;not null" json:"last_name"`
	Login     string         `gorm:"size:50;unique;not null" json:"login"`
	Email     string         `gorm:"size:100;unique" json:"email"`
	Phone     *string        `gorm:"size:20" json:"phone,omitempty"`
	Role      string         `gorm:"size:20;not null" json:"role"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales     []Sale     `gorm:"foreignKey:CashierID" json:"-"`
	Proformas []Proforma `gorm:"foreignKey:UserID" json:"-"`
}

// FullName returns the cashier name as printed on tickets
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CanSell reports whether the user may operate the checkout
func (u *User) CanSell() bool {
	return u.Role == RoleCashier || u.Role == RolePharmacist || u.Role == RoleAdmin
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
