package membership

import "github.com/fittrack/backend/internal/domain/shared"

// Event types for the membership domain
const (
	EventMemberRegistered     = "membership.member.registered"
	EventMemberDueDateChanged = "membership.member.due_date_changed"
	EventMemberDeleted        = "membership.member.deleted"
)

// MemberRegisteredEvent is raised when a new member joins
type MemberRegisteredEvent struct {
	shared.BaseDomainEvent
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Plan     string `json:"plan"`
}

// NewMemberRegisteredEvent creates a member registered event
func NewMemberRegisteredEvent(m *Member) *MemberRegisteredEvent {
	return &MemberRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventMemberRegistered, "Member", m.ID),
		MemberID:        m.MemberID,
		Name:            m.Name,
		Plan:            string(m.Plan),
	}
}

// MemberDueDateChangedEvent is raised whenever the due-date tracking fields move
type MemberDueDateChangedEvent struct {
	shared.BaseDomainEvent
	MemberID        string `json:"member_id"`
	LastPaymentDate string `json:"last_payment_date"`
	NextDueDate     string `json:"next_due_date"`
}

// NewMemberDueDateChangedEvent creates a due date changed event
func NewMemberDueDateChangedEvent(m *Member) *MemberDueDateChangedEvent {
	return &MemberDueDateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventMemberDueDateChanged, "Member", m.ID),
		MemberID:        m.MemberID,
		LastPaymentDate: m.LastPaymentDate,
		NextDueDate:     m.NextDueDate,
	}
}

// MemberDeletedEvent is raised when a member is removed
type MemberDeletedEvent struct {
	shared.BaseDomainEvent
	MemberID string `json:"member_id"`
}

// NewMemberDeletedEvent creates a member deleted event
func NewMemberDeletedEvent(m *Member) *MemberDeletedEvent {
	return &MemberDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventMemberDeleted, "Member", m.ID),
		MemberID:        m.MemberID,
	}
}
