package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/application/service"
	"github.com/pharmaweb/pharmapos-api/internal/domain/enum"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/dto/request"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/dto/response"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// ProformaHandler handles proforma quote HTTP requests
type ProformaHandler struct {
	proformaService *service.ProformaService
}

// NewProformaHandler creates a new proforma handler
func NewProformaHandler(proformaService *service.ProformaService) *ProformaHandler {
	return &ProformaHandler{proformaService: proformaService}
}

// List handles listing proformas
func (h *ProformaHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.proformaService.ListProformas(c.Request.Context(), &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Proformas retrieved successfully", result)
}

// Get handles getting a proforma with its detail lines
func (h *ProformaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	proforma, err := h.proformaService.GetProforma(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma retrieved successfully", proforma)
}

// Create handles creating a quote
func (h *ProformaHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.ProformaItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ProformaItemInput{
			MedicationID: item.MedicationID,
			Quantity:     item.Quantity,
		}
	}

	proforma, err := h.proformaService.CreateProforma(c.Request.Context(), &service.CreateProformaInput{
		UserID:     *userID,
		ClientName: req.ClientName,
		ValidUntil: req.ValidUntil,
		Note:       req.Note,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Proforma created successfully", proforma)
}

// UpdateStatus handles moving a proforma through its lifecycle
func (h *ProformaHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	var req request.UpdateProformaStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	proforma, err := h.proformaService.UpdateStatus(c.Request.Context(), id, enum.ProformaStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma status updated successfully", proforma)
}

// Delete handles removing a proforma
func (h *ProformaHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	if err := h.proformaService.DeleteProforma(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma deleted successfully", nil)
}
