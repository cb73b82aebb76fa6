package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharmaweb/pharmapos-api/internal/application/service"
	"github.com/pharmaweb/pharmapos-api/internal/config"
	"github.com/pharmaweb/pharmapos-api/internal/infrastructure/cartstore"
	"github.com/pharmaweb/pharmapos-api/internal/infrastructure/database"
	"github.com/pharmaweb/pharmapos-api/internal/infrastructure/repository"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/handler"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/routes"
	"github.com/pharmaweb/pharmapos-api/pkg/printer"
	"github.com/pharmaweb/pharmapos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	medicationRepo := repository.NewMedicationRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	proformaRepo := repository.NewProformaRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	pharmacyRepo := repository.NewPharmacyRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize the in-memory cart store
	cartStore := cartstore.NewMemoryStore()
	defer cartStore.Close()

	// Initialize thermal printer
	thermalPrinter, err := printer.NewFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	cartService := service.NewCartService(cartStore, medicationRepo)
	saleService := service.NewSaleService(cartStore, medicationRepo, saleRepo, userRepo, patientRepo)
	catalogService := service.NewCatalogService(medicationRepo, movementRepo)
	patientService := service.NewPatientService(patientRepo)
	proformaService := service.NewProformaService(proformaRepo, medicationRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, supplierRepo, medicationRepo)
	pharmacyService := service.NewPharmacyService(pharmacyRepo)
	dashboardService := service.NewDashboardService(saleRepo, medicationRepo, patientRepo)
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, pharmacyRepo, cfg.Printer.Type, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Cart:      handler.NewCartHandler(cartService),
		Checkout:  handler.NewCheckoutHandler(cartService, saleService),
		Sale:      handler.NewSaleHandler(saleService, printerService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Patient:   handler.NewPatientHandler(patientService),
		Proforma:  handler.NewProformaHandler(proformaService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Pharmacy:  handler.NewPharmacyHandler(pharmacyService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Expired idempotency keys are purged in the background
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				if err := idempotencyRepo.DeleteExpired(cleanupCtx); err != nil {
					log.Printf("Warning: Failed to purge expired idempotency keys: %v", err)
				}
			}
		}
	}()

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
