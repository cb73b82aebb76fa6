package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/application/service"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	"github.com/pharmaweb/pharmapos-api/internal/domain/repository"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/dto/response"
	"github.com/pharmaweb/pharmapos-api/pkg/pagination"
)

// SaleHandler handles sales history HTTP requests
type SaleHandler struct {
	saleService    *service.SaleService
	printerService *service.PrinterService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, printerService *service.PrinterService) *SaleHandler {
	return &SaleHandler{
		saleService:    saleService,
		printerService: printerService,
	}
}

// List handles listing the sales history
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	// Cashiers only see their own sales; pharmacists and admins see all
	if GetUserRole(c) == entity.RoleCashier {
		params.CashierID = GetUserID(c)
	} else if cashierIDStr := c.Query("cashier_id"); cashierIDStr != "" {
		if cashierID, err := uuid.Parse(cashierIDStr); err == nil {
			params.CashierID = &cashierID
		}
	}

	if patientIDStr := c.Query("patient_id"); patientIDStr != "" {
		if patientID, err := uuid.Parse(patientIDStr); err == nil {
			params.PatientID = &patientID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale with its lines
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// GetByTicketNo handles looking up a sale by its printed ticket number
func (h *SaleHandler) GetByTicketNo(c *gin.Context) {
	ticketNo := c.Param("ticketNo")
	if ticketNo == "" {
		response.BadRequest(c, "Ticket number is required")
		return
	}

	sale, err := h.saleService.GetSaleByTicketNo(c.Request.Context(), ticketNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Ticket handles rendering and printing a sale's ticket. Reprints always
// produce the same ticket.
func (h *SaleHandler) Ticket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	ticket, err := h.printerService.PrintSaleTicket(c.Request.Context(), id)
	if err != nil {
		// The ticket is still usable when only the printer failed
		if ticket != nil {
			response.OK(c, "Ticket rendered, printing failed", ticket)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket printed successfully", ticket)
}
