package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/fittrack/backend/internal/domain/membership"
)

// CreateMemberRequest represents a request to register a new member
type CreateMemberRequest struct {
	MemberID string `json:"member_id" binding:"required,min=1,max=50"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Phone    string `json:"phone" binding:"max=50"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	JoinDate string `json:"join_date" binding:"omitempty,datetime=2006-01-02"`
	Plan     string `json:"plan" binding:"omitempty,oneof=Monthly Quarterly Half-Yearly Yearly"`
}

// UpdateMemberRequest represents a partial member update. LastPaymentDate and
// NextDueDate may be set directly; manual values stand until the next payment
// mutation recomputes them.
type UpdateMemberRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone           *string `json:"phone" binding:"omitempty,max=50"`
	Email           *string `json:"email" binding:"omitempty,email,max=200"`
	Plan            *string `json:"plan" binding:"omitempty,oneof=Monthly Quarterly Half-Yearly Yearly"`
	Status          *string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	LastPaymentDate *string `json:"last_payment_date" binding:"omitempty,datetime=2006-01-02"`
	NextDueDate     *string `json:"next_due_date" binding:"omitempty,datetime=2006-01-02"`
}

// MemberListFilter represents filter options for member listings
type MemberListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=Active Inactive"`
	Plan     string `form:"membership_plan" binding:"omitempty,oneof=Monthly Quarterly Half-Yearly Yearly"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// MemberResponse represents a member in API responses
type MemberResponse struct {
	ID              uuid.UUID `json:"id"`
	MemberID        string    `json:"member_id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	JoinDate        string    `json:"join_date"`
	Plan            string    `json:"membership_plan"`
	Status          string    `json:"status"`
	LastPaymentDate string    `json:"last_payment_date"`
	NextDueDate     string    `json:"next_due_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToMemberResponse maps a domain member to its API representation
func ToMemberResponse(m *membership.Member) MemberResponse {
	return MemberResponse{
		ID:              m.ID,
		MemberID:        m.MemberID,
		Name:            m.Name,
		Phone:           m.Phone,
		Email:           m.Email,
		JoinDate:        m.JoinDate,
		Plan:            string(m.Plan),
		Status:          string(m.Status),
		LastPaymentDate: m.LastPaymentDate,
		NextDueDate:     m.NextDueDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToMemberResponses maps a slice of domain members
func ToMemberResponses(members []membership.Member) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i := range members {
		responses[i] = ToMemberResponse(&members[i])
	}
	return responses
}
