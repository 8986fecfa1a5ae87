package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fittrack/backend/internal/domain/shared"
)

// MonthlyTotal is the aggregate of all payments whose payment date falls in
// one calendar month
type MonthlyTotal struct {
	TotalCollected decimal.Decimal
	TotalPayments  int64
}

// Repository provides access to the payment store
type Repository interface {
	shared.Repository[Payment]

	// FindByMemberRef lists all payments of one member by internal UUID,
	// newest payment date first
	FindByMemberRef(ctx context.Context, memberRef uuid.UUID) ([]Payment, error)
	// FindByMemberID lists all payments of one member by business
	// identifier, newest payment date first
	FindByMemberID(ctx context.Context, memberID string) ([]Payment, error)
	// FindLatestByMemberRef returns the most recent payment of a member,
	// ordered by payment date then creation time. Returns nil when the
	// member has no payments.
	FindLatestByMemberRef(ctx context.Context, memberRef uuid.UUID) (*Payment, error)
	// SumByMonth totals all payments whose date starts with the given
	// YYYY-MM month prefix
	SumByMonth(ctx context.Context, month string) (*MonthlyTotal, error)
	// DeleteByMemberRef removes all payments of a member
	DeleteByMemberRef(ctx context.Context, memberRef uuid.UUID) error
}
