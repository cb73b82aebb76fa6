package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmaweb/pharmapos-api/internal/application/service"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/dto/request"
	"github.com/pharmaweb/pharmapos-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles payment validation and sale finalization
type CheckoutHandler struct {
	cartService *service.CartService
	saleService *service.SaleService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(cartService *service.CartService, saleService *service.SaleService) *CheckoutHandler {
	return &CheckoutHandler{
		cartService: cartService,
		saleService: saleService,
	}
}

// Validate handles the payment pre-check. It commits nothing: the front end
// calls it to show the change due before the cashier confirms.
func (h *CheckoutHandler) Validate(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ValidatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.Snapshot(c.Request.Context(), *sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	payment, err := service.ValidatePayment(req.PaymentMethod, req.TenderedAmount, cart.Total())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment validated", gin.H{
		"payment_method": payment.Method,
		"total":          float64(cart.Total()) / 100,
		"tendered":       float64(payment.Tendered) / 100,
		"change_due":     float64(payment.ChangeDue) / 100,
	})
}

// Finalize handles committing the cart into a sale
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	sessionID := GetSessionID(c)
	userID := GetUserID(c)
	if sessionID == nil || userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.FinalizeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.FinalizeSale(c.Request.Context(), &service.FinalizeSaleInput{
		SessionID:      *sessionID,
		CashierID:      *userID,
		PatientID:      req.PatientID,
		PaymentMethod:  req.PaymentMethod,
		TenderedAmount: req.TenderedAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale finalized successfully", sale)
}
