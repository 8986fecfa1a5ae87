package membership

import (
	"context"

	"github.com/fittrack/backend/internal/domain/shared"
)

// MemberFilter narrows member listings
type MemberFilter struct {
	Status MemberStatus
	Plan   MembershipPlan
}

// Repository provides access to the member store
type Repository interface {
	shared.Repository[Member]

	// FindByMemberID looks a member up by the business identifier
	FindByMemberID(ctx context.Context, memberID string) (*Member, error)
	// ExistsByMemberID reports whether a member with the business identifier exists
	ExistsByMemberID(ctx context.Context, memberID string) (bool, error)
	// Search matches the key case-insensitively against member ID, name,
	// phone and email
	Search(ctx context.Context, key string) ([]Member, error)
	// FindFiltered lists members matching the given status and plan; zero
	// values match everything
	FindFiltered(ctx context.Context, filter MemberFilter) ([]Member, error)
}
