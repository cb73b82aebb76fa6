package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmaweb/pharmapos-api/internal/application/service"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/dto/request"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/dto/response"
)

// PharmacyHandler handles pharmacy profile HTTP requests
type PharmacyHandler struct {
	pharmacyService *service.PharmacyService
}

// NewPharmacyHandler creates a new pharmacy handler
func NewPharmacyHandler(pharmacyService *service.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacyService: pharmacyService}
}

// Get handles getting the pharmacy profile
func (h *PharmacyHandler) Get(c *gin.Context) {
	pharmacy, err := h.pharmacyService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pharmacy profile retrieved successfully", pharmacy)
}

// Update handles creating or updating the pharmacy profile
func (h *PharmacyHandler) Update(c *gin.Context) {
	var req request.PharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pharmacy, err := h.pharmacyService.UpdateProfile(c.Request.Context(), &service.PharmacyInput{
		Name:       req.Name,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		Email:      req.Email,
		VATNumber:  req.VATNumber,
		Greeting:   req.Greeting,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pharmacy profile updated successfully", pharmacy)
}
