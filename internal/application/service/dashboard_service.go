package service

import (
	"context"
	"time"

	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
)

// DashboardService provides daily counters for the POS home screen
type DashboardService struct {
	saleRepo       repository.SaleRepository
	medicationRepo repository.MedicationRepository
	patientRepo    repository.PatientRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	medicationRepo repository.MedicationRepository,
	patientRepo repository.PatientRepository,
) *DashboardService {
	return &DashboardService{
		saleRepo:       saleRepo,
		medicationRepo: medicationRepo,
		patientRepo:    patientRepo,
	}
}

// DashboardStats represents the POS home screen counters
type DashboardStats struct {
	SalesToday       int64   `json:"sales_today"`
	RevenueToday     float64 `json:"revenue_today"`
	SalesThisMonth   int64   `json:"sales_this_month"`
	RevenueThisMonth float64 `json:"revenue_this_month"`
	TotalMedications int64   `json:"total_medications"`
	TotalPatients    int64   `json:"total_patients"`
	LowStockCount    int64   `json:"low_stock_count"`
}

// GetDashboardStats returns the current counters
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	salesToday, err := s.saleRepo.CountSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	stats.SalesToday = salesToday

	revenueToday, err := s.saleRepo.RevenueSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	stats.RevenueToday = float64(revenueToday) / 100

	salesMonth, err := s.saleRepo.CountSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}
	stats.SalesThisMonth = salesMonth

	revenueMonth, err := s.saleRepo.RevenueSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}
	stats.RevenueThisMonth = float64(revenueMonth) / 100

	medicationCount, err := s.medicationRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalMedications = medicationCount

	patientCount, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalPatients = patientCount

	lowStock, err := s.medicationRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = int64(len(lowStock))

	return stats, nil
}
