package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fittrack/backend/internal/domain/billing"
)

// CreatePaymentRequest represents a request to record a payment
type CreatePaymentRequest struct {
	MemberID    string          `json:"member_id" binding:"required,min=1,max=50"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate string          `json:"payment_date" binding:"required,datetime=2006-01-02"`
	Method      string          `json:"method" binding:"omitempty,oneof=Cash UPI Card NetBanking"`
	Note        string          `json:"note" binding:"max=500"`
}

// UpdatePaymentRequest represents a partial payment update
type UpdatePaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	PaymentDate string           `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Method      string           `json:"method" binding:"omitempty,oneof=Cash UPI Card NetBanking"`
	Note        *string          `json:"note"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	MemberRef   uuid.UUID       `json:"member_ref"`
	MemberID    string          `json:"member_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Method      string          `json:"method"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RecordPaymentResult is the outcome of recording a payment. Warning is set
// when the payment was stored but the member's due dates could not be
// updated.
type RecordPaymentResult struct {
	Payment PaymentResponse `json:"payment"`
	Warning string          `json:"warning,omitempty"`
}

// DeletePaymentResult is the outcome of deleting a payment. Warning is set
// when the payment was removed but the owning member could not be found or
// updated.
type DeletePaymentResult struct {
	Warning string `json:"warning,omitempty"`
}

// MonthlySummaryResponse is the collection summary of one calendar month
type MonthlySummaryResponse struct {
	Month          string          `json:"month"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalPayments  int64           `json:"total_payments"`
}

// ToPaymentResponse maps a domain payment to its API representation
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		MemberRef:   p.MemberRef,
		MemberID:    p.MemberID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      string(p.Method),
		Note:        p.Note,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPaymentResponses maps a slice of domain payments
func ToPaymentResponses(payments []billing.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
