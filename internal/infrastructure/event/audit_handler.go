package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/fittrack/backend/internal/domain/billing"
	"github.com/fittrack/backend/internal/domain/membership"
	"github.com/fittrack/backend/internal/domain/shared"
)

// AuditLogHandler writes an audit log line for every membership and billing
// event. It keeps no state, so events only reach the logs.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		logger: logger.Named("audit"),
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *AuditLogHandler) EventTypes() []string {
	return []string{
		membership.EventMemberRegistered,
		membership.EventMemberDueDateChanged,
		membership.EventMemberDeleted,
		billing.EventPaymentRecorded,
		billing.EventPaymentDeleted,
	}
}

// Handle logs the event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *membership.MemberRegisteredEvent:
		fields = append(fields, zap.String("member_id", e.MemberID), zap.String("plan", e.Plan))
	case *membership.MemberDueDateChangedEvent:
		fields = append(fields, zap.String("member_id", e.MemberID), zap.String("next_due_date", e.NextDueDate))
	case *membership.MemberDeletedEvent:
		fields = append(fields, zap.String("member_id", e.MemberID))
	case *billing.PaymentRecordedEvent:
		fields = append(fields, zap.String("member_id", e.MemberID), zap.String("amount", e.Amount), zap.String("payment_date", e.PaymentDate))
	case *billing.PaymentDeletedEvent:
		fields = append(fields, zap.String("member_id", e.MemberID), zap.String("payment_date", e.PaymentDate))
	}

	h.logger.Info(event.EventType(), fields...)
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
