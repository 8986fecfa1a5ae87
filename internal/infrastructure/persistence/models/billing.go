package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fittrack/backend/internal/domain/billing"
)

// PaymentModel is the persistence model for the payments table
type PaymentModel struct {
	AggregateModel
	MemberRef   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MemberID    string          `gorm:"type:varchar(50);not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentDate string          `gorm:"type:varchar(10);not null;index"`
	Method      string          `gorm:"type:varchar(20);not null"`
	Note        string          `gorm:"type:varchar(500)"`
}

// TableName specifies the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	payment := &billing.Payment{
		MemberRef:   m.MemberRef,
		MemberID:    m.MemberID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Method:      billing.PaymentMethod(m.Method),
		Note:        m.Note,
	}
	m.PopulateAggregateRoot(&payment.BaseAggregateRoot)
	return payment
}

// PaymentModelFromDomain converts a domain payment to the persistence model
func PaymentModelFromDomain(payment *billing.Payment) *PaymentModel {
	model := &PaymentModel{
		MemberRef:   payment.MemberRef,
		MemberID:    payment.MemberID,
		Amount:      payment.Amount,
		PaymentDate: payment.PaymentDate,
		Method:      string(payment.Method),
		Note:        payment.Note,
	}
	model.FromDomainAggregateRoot(payment.BaseAggregateRoot)
	return model
}
