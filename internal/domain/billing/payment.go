package billing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fittrack/backend/internal/domain/shared"
	"github.com/fittrack/backend/internal/domain/shared/valueobject"
)

// PaymentMethod is how a payment was collected
type PaymentMethod string

const (
	MethodCash       PaymentMethod = "Cash"
	MethodUPI        PaymentMethod = "UPI"
	MethodCard       PaymentMethod = "Card"
	MethodNetBanking PaymentMethod = "NetBanking"
)

// Payment records a single collected payment. MemberRef is the internal
// member UUID; MemberID is the business identifier, denormalized so payment
// listings and summaries never need a join.
type Payment struct {
	shared.BaseAggregateRoot
	MemberRef   uuid.UUID
	MemberID    string
	Amount      decimal.Decimal
	PaymentDate string
	Method      PaymentMethod
	Note        string
}

// NewPayment creates a payment for the given member
func NewPayment(memberRef uuid.UUID, memberID string, amount decimal.Decimal, paymentDate string, method PaymentMethod, note string) (*Payment, error) {
	if memberRef == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment requires a member")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount cannot be negative")
	}
	if paymentDate == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment date is required")
	}
	if _, err := valueobject.ParseCalendarDate(paymentDate); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment date must be YYYY-MM-DD")
	}
	if method == "" {
		method = MethodCash
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberRef:         memberRef,
		MemberID:          memberID,
		Amount:            amount,
		PaymentDate:       paymentDate,
		Method:            method,
		Note:              strings.TrimSpace(note),
	}
	payment.AddDomainEvent(NewPaymentRecordedEvent(payment))
	return payment, nil
}

// Update changes the mutable fields of the payment. Only non-zero inputs are
// applied. Changing the payment date here does not touch the member's due
// date; due dates move only on record and delete.
func (p *Payment) Update(amount *decimal.Decimal, paymentDate string, method PaymentMethod, note *string) error {
	if amount != nil {
		if amount.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Payment amount cannot be negative")
		}
		p.Amount = *amount
	}
	if paymentDate != "" {
		if _, err := valueobject.ParseCalendarDate(paymentDate); err != nil {
			return shared.NewDomainError("INVALID_INPUT", "Payment date must be YYYY-MM-DD")
		}
		p.PaymentDate = paymentDate
	}
	if method != "" {
		p.Method = method
	}
	if note != nil {
		p.Note = strings.TrimSpace(*note)
	}
	return nil
}
