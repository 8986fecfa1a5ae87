package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/fittrack/backend/internal/application/billing"
)

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Record collects a payment and rolls the member's due date forward.
// When the member record cannot be updated after the payment is stored, the
// response still succeeds and carries a warning.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req billingapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a paginated list of payments
func (h *PaymentHandler) List(c *gin.Context) {
	var req listQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.applyDefaults()

	payments, total, err := h.paymentService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, req.Page, req.PageSize)
}

// ListByMemberRef returns payments for a member by internal UUID
func (h *PaymentHandler) ListByMemberRef(c *gin.Context) {
	memberRef, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	payments, err := h.paymentService.ListByMemberRef(c.Request.Context(), memberRef)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// ListByMemberID returns payments for a member by business member ID
func (h *PaymentHandler) ListByMemberID(c *gin.Context) {
	memberID := c.Param("memberId")
	if memberID == "" {
		h.BadRequest(c, "Member ID is required")
		return
	}

	payments, err := h.paymentService.ListByMemberID(c.Request.Context(), memberID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// MonthlySummary returns the collection total for a month. The month query
// parameter defaults to the current month when omitted.
func (h *PaymentHandler) MonthlySummary(c *gin.Context) {
	month := c.Query("month")

	summary, err := h.paymentService.MonthlySummary(c.Request.Context(), month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Update amends a stored payment without touching the member's due dates
func (h *PaymentHandler) Update(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req billingapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), paymentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// Delete removes a payment and recomputes the member's due dates from the
// latest surviving payment. A missing member yields a warning, not an error.
func (h *PaymentHandler) Delete(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	result, err := h.paymentService.DeletePayment(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
