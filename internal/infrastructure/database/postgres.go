package database

import (
	"fmt"
	"log"

	"github.com/pharmaweb/pharmapos-api/internal/config"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff and patients
		&entity.User{},
		&entity.Patient{},

		// Catalog
		&entity.Medication{},

		// Sales ledger
		&entity.Sale{},
		&entity.SaleLine{},
		&entity.StockMovement{},
		&entity.TicketCounter{},

		// Quotes
		&entity.Proforma{},
		&entity.ProformaDetail{},

		// Restocking
		&entity.Supplier{},
		&entity.PurchaseOrder{},
		&entity.PurchaseLine{},

		// System entities
		&entity.Pharmacy{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the ticket counter, the pharmacy profile and the
// admin user
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Counter row must exist before the first finalize
	var counter entity.TicketCounter
	if err := db.Where("name = ?", "sale_ticket").First(&counter).Error; err != nil {
		counter = entity.TicketCounter{Name: "sale_ticket", Value: 0}
		if err := db.Create(&counter).Error; err != nil {
			log.Printf("Warning: failed to create ticket counter: %v", err)
		}
	}

	// Default pharmacy profile so receipts have a header out of the box
	var pharmacy entity.Pharmacy
	if err := db.First(&pharmacy).Error; err != nil {
		pharmacy = entity.Pharmacy{
			Name:     viper.GetString("PHARMACY_NAME"),
			Greeting: "Merci de votre visite !",
		}
		if pharmacy.Name == "" {
			pharmacy.Name = "Pharmacie"
		}
		if err := db.Create(&pharmacy).Error; err != nil {
			log.Printf("Warning: failed to create pharmacy profile: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminLogin := viper.GetString("ADMIN_LOGIN")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminLogin != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("login = ?", adminLogin).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Admin Pharmacie"
				}
				// Split admin name into first and last name
				firstName := adminName
				lastName := ""
				for i, c := range adminName {
					if c == ' ' {
						firstName = adminName[:i]
						lastName = adminName[i+1:]
						break
					}
				}
				adminUser := entity.User{
					FirstName: firstName,
					LastName:  lastName,
					Login:     adminLogin,
					Email:     viper.GetString("ADMIN_EMAIL"),
					Role:      entity.RoleAdmin,
					Password:  string(hashedPassword),
					Active:    true,
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminLogin)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminLogin)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
