package billing

import (
	"github.com/google/uuid"

	"github.com/fittrack/backend/internal/domain/shared"
)

// Event types for the billing domain
const (
	EventPaymentRecorded = "billing.payment.recorded"
	EventPaymentDeleted  = "billing.payment.deleted"
)

// PaymentRecordedEvent is raised when a payment is collected
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	MemberID    string `json:"member_id"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"`
}

// NewPaymentRecordedEvent creates a payment recorded event
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentRecorded, "Payment", p.ID),
		MemberID:        p.MemberID,
		Amount:          p.Amount.String(),
		PaymentDate:     p.PaymentDate,
	}
}

// PaymentDeletedEvent is raised when a payment is removed
type PaymentDeletedEvent struct {
	shared.BaseDomainEvent
	MemberID    string `json:"member_id"`
	PaymentDate string `json:"payment_date"`
}

// NewPaymentDeletedEvent creates a payment deleted event
func NewPaymentDeletedEvent(paymentID uuid.UUID, memberID, paymentDate string) *PaymentDeletedEvent {
	return &PaymentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentDeleted, "Payment", paymentID),
		MemberID:        memberID,
		PaymentDate:     paymentDate,
	}
}
