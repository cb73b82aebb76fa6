package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/application/service"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/dto/request"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/dto/response"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// CatalogHandler handles medication catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles listing the catalog
func (h *CatalogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.MedicationFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		LowStock:  c.Query("low_stock") == "true",
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	result, err := h.catalogService.ListMedications(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Medications retrieved successfully", result)
}

// Search handles the POS search box lookup
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Search query is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	medications, err := h.catalogService.SearchMedications(c.Request.Context(), query, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medications retrieved successfully", medications)
}

// Get handles getting a single medication
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid medication ID")
		return
	}

	medication, err := h.catalogService.GetMedication(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medication retrieved successfully", medication)
}

// Create handles adding a medication to the catalog
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.MedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	medication, err := h.catalogService.CreateMedication(c.Request.Context(), &service.MedicationInput{
		CIPCode:       req.CIPCode,
		Name:          req.Name,
		DCI:           req.DCI,
		Form:          req.Form,
		Dosage:        req.Dosage,
		Category:      req.Category,
		Stock:         req.Stock,
		MinimumStock:  req.MinimumStock,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Reimbursable:  req.Reimbursable,
		Packaging:     req.Packaging,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Medication created successfully", medication)
}

// Update handles updating a medication
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid medication ID")
		return
	}

	var req request.MedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	medication, err := h.catalogService.UpdateMedication(c.Request.Context(), id, &service.MedicationInput{
		CIPCode:       req.CIPCode,
		Name:          req.Name,
		DCI:           req.DCI,
		Form:          req.Form,
		Dosage:        req.Dosage,
		Category:      req.Category,
		MinimumStock:  req.MinimumStock,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Reimbursable:  req.Reimbursable,
		Packaging:     req.Packaging,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medication updated successfully", medication)
}

// Delete handles removing a medication
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid medication ID")
		return
	}

	if err := h.catalogService.DeleteMedication(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medication deleted successfully", nil)
}

// LowStock handles listing medications at or below their alert threshold
func (h *CatalogHandler) LowStock(c *gin.Context) {
	medications, err := h.catalogService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock medications retrieved successfully", medications)
}

// AdjustStock handles a manual stock correction
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid medication ID")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	medication, err := h.catalogService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		MedicationID: id,
		Quantity:     req.Quantity,
		UserID:       *userID,
		Note:         req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", medication)
}

// Movements handles listing the stock audit trail for one medication
func (h *CatalogHandler) Movements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid medication ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.catalogService.GetStockMovements(c.Request.Context(), id, &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock movements retrieved successfully", result)
}
