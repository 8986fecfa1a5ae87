package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	t.Run("creates active member with defaults", func(t *testing.T) {
		member, err := NewMember("GYM-001", "Asha Rao", "9876543210", "asha@example.com", "2024-01-10", PlanMonthly)
		require.NoError(t, err)
		require.NotNil(t, member)

		assert.Equal(t, "GYM-001", member.MemberID)
		assert.Equal(t, "Asha Rao", member.Name)
		assert.Equal(t, PlanMonthly, member.Plan)
		assert.Equal(t, StatusActive, member.Status)
		assert.True(t, member.IsActive())
		assert.Empty(t, member.LastPaymentDate)
		assert.Empty(t, member.NextDueDate)
		assert.NotEmpty(t, member.ID)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		member, err := NewMember("  GYM-002 ", "  Ravi  ", " 123 ", " ravi@example.com ", "", PlanYearly)
		require.NoError(t, err)
		assert.Equal(t, "GYM-002", member.MemberID)
		assert.Equal(t, "Ravi", member.Name)
		assert.Equal(t, "123", member.Phone)
		assert.Equal(t, "ravi@example.com", member.Email)
	})

	t.Run("empty plan defaults to monthly", func(t *testing.T) {
		member, err := NewMember("GYM-003", "Kiran", "", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, PlanMonthly, member.Plan)
	})

	t.Run("publishes registered event", func(t *testing.T) {
		member, err := NewMember("GYM-004", "Mira", "", "", "", PlanQuarterly)
		require.NoError(t, err)

		events := member.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventMemberRegistered, events[0].EventType())
	})

	t.Run("fails with empty member ID", func(t *testing.T) {
		_, err := NewMember("   ", "Name", "", "", "", PlanMonthly)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Member ID is required")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewMember("GYM-005", "", "", "", "", PlanMonthly)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("fails with malformed join date", func(t *testing.T) {
		_, err := NewMember("GYM-006", "Name", "", "", "10-01-2024", PlanMonthly)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "YYYY-MM-DD")
	})
}

func TestMemberApplyPayment(t *testing.T) {
	newMember := func(t *testing.T, plan MembershipPlan) *Member {
		member, err := NewMember("GYM-100", "Test", "", "", "2024-01-01", plan)
		require.NoError(t, err)
		member.ClearDomainEvents()
		return member
	}

	t.Run("monthly plan rolls one month forward", func(t *testing.T) {
		member := newMember(t, PlanMonthly)
		member.ApplyPayment("2024-03-10")
		assert.Equal(t, "2024-03-10", member.LastPaymentDate)
		assert.Equal(t, "2024-04-10", member.NextDueDate)
	})

	t.Run("yearly plan rolls twelve months forward", func(t *testing.T) {
		member := newMember(t, PlanYearly)
		member.ApplyPayment("2024-02-29")
		assert.Equal(t, "2025-02-28", member.NextDueDate)
	})

	t.Run("month end clamps", func(t *testing.T) {
		member := newMember(t, PlanMonthly)
		member.ApplyPayment("2024-01-31")
		assert.Equal(t, "2024-02-29", member.NextDueDate)
	})

	t.Run("backdated payment moves due date backwards", func(t *testing.T) {
		member := newMember(t, PlanMonthly)
		member.ApplyPayment("2024-06-01")
		member.ApplyPayment("2024-02-01")
		assert.Equal(t, "2024-02-01", member.LastPaymentDate)
		assert.Equal(t, "2024-03-01", member.NextDueDate)
	})

	t.Run("publishes due date changed event", func(t *testing.T) {
		member := newMember(t, PlanMonthly)
		member.ApplyPayment("2024-03-10")
		events := member.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventMemberDueDateChanged, events[0].EventType())
	})
}

func TestMemberClearPaymentDates(t *testing.T) {
	member, err := NewMember("GYM-200", "Test", "", "", "", PlanMonthly)
	require.NoError(t, err)
	member.ApplyPayment("2024-03-10")

	member.ClearPaymentDates()
	assert.Empty(t, member.LastPaymentDate)
	assert.Empty(t, member.NextDueDate)
}

func TestMemberRecomputeFrom(t *testing.T) {
	member, err := NewMember("GYM-201", "Test", "", "", "", PlanQuarterly)
	require.NoError(t, err)
	member.ApplyPayment("2024-06-15")

	member.RecomputeFrom("2024-03-15")
	assert.Equal(t, "2024-03-15", member.LastPaymentDate)
	assert.Equal(t, "2024-06-15", member.NextDueDate)
}

func TestMemberOverrideDueDates(t *testing.T) {
	member, err := NewMember("GYM-202", "Test", "", "", "", PlanMonthly)
	require.NoError(t, err)

	member.OverrideDueDates("2024-05-01", "2024-07-01")
	assert.Equal(t, "2024-05-01", member.LastPaymentDate)
	assert.Equal(t, "2024-07-01", member.NextDueDate)

	// The next payment mutation recomputes over the override
	member.ApplyPayment("2024-08-01")
	assert.Equal(t, "2024-09-01", member.NextDueDate)
}

func TestMemberChangePlan(t *testing.T) {
	member, err := NewMember("GYM-203", "Test", "", "", "", PlanMonthly)
	require.NoError(t, err)
	member.ApplyPayment("2024-01-15")

	t.Run("changes plan without touching due date", func(t *testing.T) {
		require.NoError(t, member.ChangePlan(PlanYearly))
		assert.Equal(t, PlanYearly, member.Plan)
		assert.Equal(t, "2024-02-15", member.NextDueDate)
	})

	t.Run("next payment uses new plan", func(t *testing.T) {
		member.ApplyPayment("2024-02-15")
		assert.Equal(t, "2025-02-15", member.NextDueDate)
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		err := member.ChangePlan("Weekly")
		require.Error(t, err)
	})
}

func TestMemberStatusTransitions(t *testing.T) {
	member, err := NewMember("GYM-204", "Test", "", "", "", PlanMonthly)
	require.NoError(t, err)

	member.Deactivate()
	assert.Equal(t, StatusInactive, member.Status)
	assert.False(t, member.IsActive())

	member.Activate()
	assert.Equal(t, StatusActive, member.Status)
	assert.True(t, member.IsActive())
}
