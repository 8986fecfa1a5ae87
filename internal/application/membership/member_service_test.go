package membership

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/backend/internal/domain/membership"
	"github.com/fittrack/backend/internal/domain/shared"
)

// MockMemberRepository is a mock implementation of membership.Repository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Member), args.Error(1)
}

func (m *MockMemberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.Member, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]membership.Member), args.Error(1)
}

func (m *MockMemberRepository) Save(ctx context.Context, member *membership.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemberRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) FindByMemberID(ctx context.Context, memberID string) (*membership.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Member), args.Error(1)
}

func (m *MockMemberRepository) ExistsByMemberID(ctx context.Context, memberID string) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) Search(ctx context.Context, key string) ([]membership.Member, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]membership.Member), args.Error(1)
}

func (m *MockMemberRepository) FindFiltered(ctx context.Context, filter membership.MemberFilter) ([]membership.Member, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]membership.Member), args.Error(1)
}

func newTestMember(t *testing.T) *membership.Member {
	t.Helper()
	member, err := membership.NewMember("GYM-001", "Asha Rao", "9876543210", "asha@example.com", "2024-01-10", membership.PlanMonthly)
	require.NoError(t, err)
	member.ClearDomainEvents()
	return member
}

func TestMemberServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates member", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)

		repo.On("ExistsByMemberID", ctx, "GYM-001").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*membership.Member")).Return(nil)

		resp, err := service.Create(ctx, CreateMemberRequest{
			MemberID: "GYM-001",
			Name:     "Asha Rao",
			Phone:    "9876543210",
			JoinDate: "2024-01-10",
			Plan:     "Quarterly",
		})
		require.NoError(t, err)
		assert.Equal(t, "GYM-001", resp.MemberID)
		assert.Equal(t, "Quarterly", resp.Plan)
		assert.Equal(t, "Active", resp.Status)
		assert.Empty(t, resp.NextDueDate)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate member ID", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)

		repo.On("ExistsByMemberID", ctx, "GYM-001").Return(true, nil)

		_, err := service.Create(ctx, CreateMemberRequest{MemberID: "GYM-001", Name: "Asha"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("propagates store failure", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)

		repo.On("ExistsByMemberID", ctx, "GYM-001").Return(false, errors.New("db down"))

		_, err := service.Create(ctx, CreateMemberRequest{MemberID: "GYM-001", Name: "Asha"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestMemberServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("by storage ID", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)
		member := newTestMember(t)

		repo.On("FindByID", ctx, member.ID).Return(member, nil)

		resp, err := service.GetByID(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, member.MemberID, resp.MemberID)
	})

	t.Run("by member ID not found", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)

		repo.On("FindByMemberID", ctx, "GYM-404").Return(nil, shared.ErrNotFound)

		_, err := service.GetByMemberID(ctx, "GYM-404")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestMemberServiceList(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMemberRepository)
	service := NewMemberService(repo, nil)
	member := newTestMember(t)

	repo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]membership.Member{*member}, nil)
	repo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	members, total, err := service.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, int64(1), total)
}

func TestMemberServiceSearch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMemberRepository)
	service := NewMemberService(repo, nil)
	member := newTestMember(t)

	repo.On("Search", ctx, "asha").Return([]membership.Member{*member}, nil)

	results, err := service.Search(ctx, "asha")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Asha Rao", results[0].Name)
}

func TestMemberServiceFilter(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMemberRepository)
	service := NewMemberService(repo, nil)
	member := newTestMember(t)

	repo.On("FindFiltered", ctx, membership.MemberFilter{
		Status: membership.StatusActive,
		Plan:   membership.PlanMonthly,
	}).Return([]membership.Member{*member}, nil)

	results, err := service.Filter(ctx, MemberListFilter{Status: "Active", Plan: "Monthly"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMemberServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates contact fields", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)
		member := newTestMember(t)

		repo.On("FindByMemberID", ctx, "GYM-001").Return(member, nil)
		repo.On("Save", ctx, member).Return(nil)

		name := "Asha R"
		phone := "111"
		resp, err := service.UpdateByMemberID(ctx, "GYM-001", UpdateMemberRequest{Name: &name, Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "Asha R", resp.Name)
		assert.Equal(t, "111", resp.Phone)
	})

	t.Run("manual due date override is stored as-is", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)
		member := newTestMember(t)

		repo.On("FindByID", ctx, member.ID).Return(member, nil)
		repo.On("Save", ctx, member).Return(nil)

		next := "2024-12-25"
		resp, err := service.UpdateByID(ctx, member.ID, UpdateMemberRequest{NextDueDate: &next})
		require.NoError(t, err)
		assert.Equal(t, "2024-12-25", resp.NextDueDate)
		assert.Empty(t, resp.LastPaymentDate)
	})

	t.Run("plan change does not move due date", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)
		member := newTestMember(t)
		member.ApplyPayment("2024-03-01")
		member.ClearDomainEvents()

		repo.On("FindByID", ctx, member.ID).Return(member, nil)
		repo.On("Save", ctx, member).Return(nil)

		plan := "Yearly"
		resp, err := service.UpdateByID(ctx, member.ID, UpdateMemberRequest{Plan: &plan})
		require.NoError(t, err)
		assert.Equal(t, "Yearly", resp.Plan)
		assert.Equal(t, "2024-04-01", resp.NextDueDate)
	})

	t.Run("status change", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)
		member := newTestMember(t)

		repo.On("FindByID", ctx, member.ID).Return(member, nil)
		repo.On("Save", ctx, member).Return(nil)

		status := "Inactive"
		resp, err := service.UpdateByID(ctx, member.ID, UpdateMemberRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "Inactive", resp.Status)
	})
}

func TestMemberServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("by member ID", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)
		member := newTestMember(t)

		repo.On("FindByMemberID", ctx, "GYM-001").Return(member, nil)
		repo.On("Delete", ctx, member.ID).Return(nil)

		require.NoError(t, service.DeleteByMemberID(ctx, "GYM-001"))
		repo.AssertExpectations(t)
	})

	t.Run("missing member", func(t *testing.T) {
		repo := new(MockMemberRepository)
		service := NewMemberService(repo, nil)

		repo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)

		err := service.DeleteByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete")
	})
}
