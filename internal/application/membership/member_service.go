package membership

import (
	"context"

	"github.com/google/uuid"

	"github.com/fittrack/backend/internal/domain/membership"
	"github.com/fittrack/backend/internal/domain/shared"
)

// MemberService handles member-related business operations
type MemberService struct {
	memberRepo membership.Repository
	events     shared.EventPublisher
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo membership.Repository, events shared.EventPublisher) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		events:     events,
	}
}

// Create registers a new member
func (s *MemberService) Create(ctx context.Context, req CreateMemberRequest) (*MemberResponse, error) {
	exists, err := s.memberRepo.ExistsByMemberID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Member with this ID already exists")
	}

	member, err := membership.NewMember(req.MemberID, req.Name, req.Phone, req.Email, req.JoinDate, membership.MembershipPlan(req.Plan))
	if err != nil {
		return nil, err
	}

	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, member)

	response := ToMemberResponse(member)
	return &response, nil
}

// GetByID retrieves a member by storage ID
func (s *MemberService) GetByID(ctx context.Context, id uuid.UUID) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMemberResponse(member)
	return &response, nil
}

// GetByMemberID retrieves a member by the business identifier
func (s *MemberService) GetByMemberID(ctx context.Context, memberID string) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	response := ToMemberResponse(member)
	return &response, nil
}

// List retrieves all members, newest first
func (s *MemberService) List(ctx context.Context, page, pageSize int) ([]MemberResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	members, err := s.memberRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.memberRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToMemberResponses(members), total, nil
}

// Search matches the key against member ID, name, phone and email
func (s *MemberService) Search(ctx context.Context, key string) ([]MemberResponse, error) {
	members, err := s.memberRepo.Search(ctx, key)
	if err != nil {
		return nil, err
	}
	return ToMemberResponses(members), nil
}

// Filter lists members by status and/or plan
func (s *MemberService) Filter(ctx context.Context, req MemberListFilter) ([]MemberResponse, error) {
	members, err := s.memberRepo.FindFiltered(ctx, membership.MemberFilter{
		Status: membership.MemberStatus(req.Status),
		Plan:   membership.MembershipPlan(req.Plan),
	})
	if err != nil {
		return nil, err
	}
	return ToMemberResponses(members), nil
}

// UpdateByID updates a member looked up by storage ID
func (s *MemberService) UpdateByID(ctx context.Context, id uuid.UUID, req UpdateMemberRequest) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, member, req)
}

// UpdateByMemberID updates a member looked up by business identifier
func (s *MemberService) UpdateByMemberID(ctx context.Context, memberID string, req UpdateMemberRequest) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, member, req)
}

func (s *MemberService) update(ctx context.Context, member *membership.Member, req UpdateMemberRequest) (*MemberResponse, error) {
	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Plan != nil {
		if err := member.ChangePlan(membership.MembershipPlan(*req.Plan)); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		switch membership.MemberStatus(*req.Status) {
		case membership.StatusActive:
			member.Activate()
		case membership.StatusInactive:
			member.Deactivate()
		}
	}
	if req.LastPaymentDate != nil || req.NextDueDate != nil {
		last := member.LastPaymentDate
		next := member.NextDueDate
		if req.LastPaymentDate != nil {
			last = *req.LastPaymentDate
		}
		if req.NextDueDate != nil {
			next = *req.NextDueDate
		}
		member.OverrideDueDates(last, next)
	}

	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, member)

	response := ToMemberResponse(member)
	return &response, nil
}

// DeleteByID removes a member by storage ID. Payments are kept as historical
// records.
func (s *MemberService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.delete(ctx, member)
}

// DeleteByMemberID removes a member by business identifier
func (s *MemberService) DeleteByMemberID(ctx context.Context, memberID string) error {
	member, err := s.memberRepo.FindByMemberID(ctx, memberID)
	if err != nil {
		return err
	}
	return s.delete(ctx, member)
}

func (s *MemberService) delete(ctx context.Context, member *membership.Member) error {
	if err := s.memberRepo.Delete(ctx, member.ID); err != nil {
		return err
	}
	member.AddDomainEvent(membership.NewMemberDeletedEvent(member))
	s.publishEvents(ctx, member)
	return nil
}

func (s *MemberService) publishEvents(ctx context.Context, member *membership.Member) {
	if s.events == nil {
		return
	}
	events := member.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Events are observational; a publish failure never fails the operation
	_ = s.events.Publish(ctx, events...)
	member.ClearDomainEvents()
}
