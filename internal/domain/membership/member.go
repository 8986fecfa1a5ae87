package membership

import (
	"strings"

	"github.com/fittrack/backend/internal/domain/shared"
	"github.com/fittrack/backend/internal/domain/shared/valueobject"
)

// MemberStatus represents the lifecycle state of a member
type MemberStatus string

const (
	StatusActive   MemberStatus = "Active"
	StatusInactive MemberStatus = "Inactive"
)

// Member is the membership aggregate root. LastPaymentDate and NextDueDate
// are derived from the payment history by the billing service; they are
// stored denormalized on the member so listings never need a join.
type Member struct {
	shared.BaseAggregateRoot
	MemberID        string
	Name            string
	Phone           string
	Email           string
	JoinDate        string
	Plan            MembershipPlan
	Status          MemberStatus
	LastPaymentDate string
	NextDueDate     string
}

// NewMember creates a new member aggregate
func NewMember(memberID, name, phone, email, joinDate string, plan MembershipPlan) (*Member, error) {
	memberID = strings.TrimSpace(memberID)
	name = strings.TrimSpace(name)
	if memberID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Member ID is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Member name is required")
	}
	if joinDate != "" {
		if _, err := valueobject.ParseCalendarDate(joinDate); err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Join date must be YYYY-MM-DD")
		}
	}
	if plan == "" {
		plan = PlanMonthly
	}

	member := &Member{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberID:          memberID,
		Name:              name,
		Phone:             strings.TrimSpace(phone),
		Email:             strings.TrimSpace(email),
		JoinDate:          joinDate,
		Plan:              plan,
		Status:            StatusActive,
	}
	member.AddDomainEvent(NewMemberRegisteredEvent(member))
	return member, nil
}

// ApplyPayment records that a payment was received on the given date and
// rolls the next due date forward by one plan period from that date. The
// payment date is taken as-is; a backdated payment moves the due date
// backwards as well.
func (m *Member) ApplyPayment(paymentDate string) {
	m.LastPaymentDate = paymentDate
	m.NextDueDate = valueobject.AddMonthsToDate(paymentDate, m.Plan.Months())
	m.AddDomainEvent(NewMemberDueDateChangedEvent(m))
}

// RecomputeFrom resets the payment tracking fields from the latest surviving
// payment, used after a payment is deleted
func (m *Member) RecomputeFrom(latestPaymentDate string) {
	m.ApplyPayment(latestPaymentDate)
}

// ClearPaymentDates removes all payment tracking, used when the last payment
// of a member is deleted
func (m *Member) ClearPaymentDates() {
	m.LastPaymentDate = ""
	m.NextDueDate = ""
	m.AddDomainEvent(NewMemberDueDateChangedEvent(m))
}

// OverrideDueDates sets the payment tracking fields directly. Manual
// overrides survive only until the next payment mutation recomputes them.
func (m *Member) OverrideDueDates(lastPaymentDate, nextDueDate string) {
	m.LastPaymentDate = lastPaymentDate
	m.NextDueDate = nextDueDate
	m.AddDomainEvent(NewMemberDueDateChangedEvent(m))
}

// ChangePlan switches the member to a different billing plan. The next due
// date is not recomputed; it changes on the next payment.
func (m *Member) ChangePlan(plan MembershipPlan) error {
	if !plan.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown membership plan")
	}
	m.Plan = plan
	return nil
}

// Activate marks the member as active
func (m *Member) Activate() {
	m.Status = StatusActive
}

// Deactivate marks the member as inactive
func (m *Member) Deactivate() {
	m.Status = StatusInactive
}

// IsActive reports whether the member is active
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}
