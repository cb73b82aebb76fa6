package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// mockMedicationRepo is an in-memory MedicationRepository for tests
type mockMedicationRepo struct {
	mu          sync.Mutex
	medications map[uuid.UUID]*entity.Medication
	decrements  []map[uuid.UUID]int
	increments  []map[uuid.UUID]int

	failDecrementIDs []uuid.UUID
	decrementErr     error
}

func newMockMedicationRepo(medications ...*entity.Medication) *mockMedicationRepo {
	m := &mockMedicationRepo{medications: make(map[uuid.UUID]*entity.Medication)}
	for _, medication := range medications {
		m.medications[medication.ID] = medication
	}
	return m
}

func (m *mockMedicationRepo) Create(ctx context.Context, medication *entity.Medication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.medications[medication.ID] = medication
	return nil
}

func (m *mockMedicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	medication, exists := m.medications[id]
	if !exists {
		return nil, nil
	}
	copied := *medication
	return &copied, nil
}

func (m *mockMedicationRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Medication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entity.Medication
	for _, id := range ids {
		if medication, exists := m.medications[id]; exists {
			result = append(result, *medication)
		}
	}
	return result, nil
}

func (m *mockMedicationRepo) GetByCIPCode(ctx context.Context, code string) (*entity.Medication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, medication := range m.medications {
		if medication.CIPCode == code {
			copied := *medication
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockMedicationRepo) Update(ctx context.Context, medication *entity.Medication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.medications[medication.ID] = medication
	return nil
}

func (m *mockMedicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.medications, id)
	return nil
}

func (m *mockMedicationRepo) Search(ctx context.Context, query string, limit int) ([]entity.Medication, error) {
	return nil, nil
}

func (m *mockMedicationRepo) List(ctx context.Context, params *repository.MedicationFilterParams) ([]entity.Medication, int64, error) {
	return nil, 0, nil
}

func (m *mockMedicationRepo) GetLowStock(ctx context.Context) ([]entity.Medication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entity.Medication
	for _, medication := range m.medications {
		if medication.IsLowStock() {
			result = append(result, *medication)
		}
	}
	return result, nil
}

func (m *mockMedicationRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.decrementErr != nil {
		return nil, m.decrementErr
	}
	if len(m.failDecrementIDs) > 0 {
		return m.failDecrementIDs, nil
	}
	for id, amount := range decrements {
		medication, exists := m.medications[id]
		if !exists || medication.Stock < amount {
			return []uuid.UUID{id}, nil
		}
	}
	for id, amount := range decrements {
		m.medications[id].Stock -= amount
	}
	m.decrements = append(m.decrements, decrements)
	return nil, nil
}

func (m *mockMedicationRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, amount := range increments {
		if medication, exists := m.medications[id]; exists {
			medication.Stock += amount
		}
	}
	m.increments = append(m.increments, increments)
	return nil
}

func (m *mockMedicationRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.medications)), nil
}

func (m *mockMedicationRepo) stockOf(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.medications[id].Stock
}

// mockSaleRepo is an in-memory SaleRepository for tests
type mockSaleRepo struct {
	mu      sync.Mutex
	sales   []*entity.Sale
	counter int64

	createErr  error
	counterErr error
}

func (m *mockSaleRepo) Create(ctx context.Context, sale *entity.Sale, movements []entity.StockMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	sale.ID = uuid.New()
	m.sales = append(m.sales, sale)
	return nil
}

func (m *mockSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sale := range m.sales {
		if sale.ID == id {
			return sale, nil
		}
	}
	return nil, nil
}

func (m *mockSaleRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSaleRepo) GetByTicketNo(ctx context.Context, ticketNo string) (*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sale := range m.sales {
		if sale.TicketNo == ticketNo {
			return sale, nil
		}
	}
	return nil, nil
}

func (m *mockSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]entity.Sale, len(m.sales))
	for i, sale := range m.sales {
		result[i] = *sale
	}
	return result, int64(len(result)), nil
}

func (m *mockSaleRepo) NextTicketNumber(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counterErr != nil {
		return 0, m.counterErr
	}
	m.counter++
	return m.counter, nil
}

func (m *mockSaleRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, sale := range m.sales {
		if !sale.SaleDate.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockSaleRepo) RevenueSince(ctx context.Context, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var revenue int64
	for _, sale := range m.sales {
		if !sale.SaleDate.Before(since) {
			revenue += sale.Total
		}
	}
	return revenue, nil
}

// mockSupplierRepo is an in-memory SupplierRepository for tests
type mockSupplierRepo struct {
	suppliers map[uuid.UUID]*entity.Supplier
}

func newMockSupplierRepo(suppliers ...*entity.Supplier) *mockSupplierRepo {
	m := &mockSupplierRepo{suppliers: make(map[uuid.UUID]*entity.Supplier)}
	for _, supplier := range suppliers {
		m.suppliers[supplier.ID] = supplier
	}
	return m
}

func (m *mockSupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *mockSupplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, exists := m.suppliers[id]
	if !exists {
		return nil, nil
	}
	return supplier, nil
}

func (m *mockSupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *mockSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.suppliers, id)
	return nil
}

func (m *mockSupplierRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var result []entity.Supplier
	for _, supplier := range m.suppliers {
		result = append(result, *supplier)
	}
	return result, int64(len(result)), nil
}

// mockPurchaseRepo is an in-memory PurchaseRepository for tests
type mockPurchaseRepo struct {
	purchases map[uuid.UUID]*entity.PurchaseOrder
	movements []entity.StockMovement

	markReceivedErr error
}

func newMockPurchaseRepo() *mockPurchaseRepo {
	return &mockPurchaseRepo{purchases: make(map[uuid.UUID]*entity.PurchaseOrder)}
}

func (m *mockPurchaseRepo) Create(ctx context.Context, purchase *entity.PurchaseOrder, lines []entity.PurchaseLine) error {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	for i := range lines {
		lines[i].PurchaseOrderID = purchase.ID
	}
	purchase.Lines = lines
	m.purchases[purchase.ID] = purchase
	return nil
}

func (m *mockPurchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	purchase, exists := m.purchases[id]
	if !exists {
		return nil, nil
	}
	return purchase, nil
}

func (m *mockPurchaseRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return m.GetByID(ctx, id)
}

func (m *mockPurchaseRepo) MarkReceived(ctx context.Context, purchase *entity.PurchaseOrder, movements []entity.StockMovement) error {
	if m.markReceivedErr != nil {
		return m.markReceivedErr
	}
	stored, exists := m.purchases[purchase.ID]
	if !exists {
		return nil
	}
	stored.Status = enum.PurchaseStatusReceived
	stored.ReceivedAt = purchase.ReceivedAt
	m.movements = append(m.movements, movements...)
	return nil
}

func (m *mockPurchaseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error {
	if purchase, exists := m.purchases[id]; exists {
		purchase.Status = status
	}
	return nil
}

func (m *mockPurchaseRepo) List(ctx context.Context, params *repository.PurchaseFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var result []entity.PurchaseOrder
	for _, purchase := range m.purchases {
		if params.Status != nil && purchase.Status != *params.Status {
			continue
		}
		result = append(result, *purchase)
	}
	return result, int64(len(result)), nil
}

// mockUserRepo is an in-memory UserRepository for tests
type mockUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepo(users ...*entity.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, user := range users {
		m.users[user.ID] = user
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, nil
	}
	return user, nil
}

func (m *mockUserRepo) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Login == login {
			return user, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// mockPatientRepo is an in-memory PatientRepository for tests
type mockPatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newMockPatientRepo(patients ...*entity.Patient) *mockPatientRepo {
	m := &mockPatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
	for _, patient := range patients {
		m.patients[patient.ID] = patient
	}
	return m
}

func (m *mockPatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	m.patients[patient.ID] = patient
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, exists := m.patients[id]
	if !exists {
		return nil, nil
	}
	return patient, nil
}

func (m *mockPatientRepo) GetByCode(ctx context.Context, code string) (*entity.Patient, error) {
	for _, patient := range m.patients {
		if patient.Code == code {
			return patient, nil
		}
	}
	return nil, nil
}

func (m *mockPatientRepo) Update(ctx context.Context, patient *entity.Patient) error {
	m.patients[patient.ID] = patient
	return nil
}

func (m *mockPatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Patient, int64, error) {
	return nil, 0, nil
}

func (m *mockPatientRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.patients)), nil
}
