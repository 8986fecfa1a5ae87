package billing

import (
	"context"
	"regexp"

	"github.com/google/uuid"

	"github.com/fittrack/backend/internal/domain/billing"
	"github.com/fittrack/backend/internal/domain/membership"
	"github.com/fittrack/backend/internal/domain/shared"
	"github.com/fittrack/backend/internal/domain/shared/valueobject"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// SummaryCache caches monthly collection summaries keyed by YYYY-MM
type SummaryCache interface {
	Get(ctx context.Context, month string) (*MonthlySummaryResponse, bool)
	Set(ctx context.Context, month string, summary *MonthlySummaryResponse)
	Invalidate(ctx context.Context, months ...string)
}

// PaymentService is the reconciliation engine between payments and member
// due dates. Recording a payment rolls the member's next due date forward;
// deleting one recomputes the dates from the latest surviving payment.
type PaymentService struct {
	paymentRepo billing.Repository
	memberRepo  membership.Repository
	cache       SummaryCache
	events      shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo billing.Repository, memberRepo membership.Repository, cache SummaryCache, events shared.EventPublisher) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		cache:       cache,
		events:      events,
	}
}

// RecordPayment stores a payment for a member and rolls the member's
// LastPaymentDate and NextDueDate forward from the payment date. The two
// writes are not atomic: when the member update fails after the payment was
// stored, the result carries a warning instead of an error so the caller
// knows the payment itself survived.
func (s *PaymentService) RecordPayment(ctx context.Context, req CreatePaymentRequest) (*RecordPaymentResult, error) {
	member, err := s.memberRepo.FindByMemberID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	payment, err := billing.NewPayment(member.ID, member.MemberID, req.Amount, req.PaymentDate, billing.PaymentMethod(req.Method), req.Note)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	s.invalidateMonths(ctx, payment.PaymentDate)
	s.publishEvents(ctx, payment.GetDomainEvents()...)
	payment.ClearDomainEvents()

	result := &RecordPaymentResult{Payment: ToPaymentResponse(payment)}

	member.ApplyPayment(payment.PaymentDate)
	if err := s.memberRepo.Save(ctx, member); err != nil {
		result.Warning = "Payment recorded, but member due date could not be updated"
		return result, nil
	}
	s.publishEvents(ctx, member.GetDomainEvents()...)
	member.ClearDomainEvents()

	return result, nil
}

// DeletePayment removes a payment and resets the owning member's due dates
// from the latest surviving payment. When no payment survives, both date
// fields are cleared. A member that cannot be found or updated yields a
// partial success with a warning; the payment stays deleted.
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID) (*DeletePaymentResult, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		return nil, err
	}
	s.invalidateMonths(ctx, payment.PaymentDate)
	s.publishEvents(ctx, billing.NewPaymentDeletedEvent(payment.ID, payment.MemberID, payment.PaymentDate))

	member, err := s.memberRepo.FindByMemberID(ctx, payment.MemberID)
	if err != nil {
		return &DeletePaymentResult{Warning: "Payment deleted, but member not found to update due date"}, nil
	}

	latest, err := s.paymentRepo.FindLatestByMemberRef(ctx, member.ID)
	if err != nil {
		return &DeletePaymentResult{Warning: "Payment deleted, but member due date could not be recomputed"}, nil
	}
	if latest == nil {
		member.ClearPaymentDates()
	} else {
		member.RecomputeFrom(latest.PaymentDate)
	}

	if err := s.memberRepo.Save(ctx, member); err != nil {
		return &DeletePaymentResult{Warning: "Payment deleted, but member due date could not be updated"}, nil
	}
	s.publishEvents(ctx, member.GetDomainEvents()...)
	member.ClearDomainEvents()

	return &DeletePaymentResult{}, nil
}

// UpdatePayment changes amount, date, method or note of a payment. Due dates
// are left untouched; only recording and deleting payments move them.
func (s *PaymentService) UpdatePayment(ctx context.Context, paymentID uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	oldDate := payment.PaymentDate
	if err := payment.Update(req.Amount, req.PaymentDate, billing.PaymentMethod(req.Method), req.Note); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	s.invalidateMonths(ctx, oldDate, payment.PaymentDate)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves all payments, newest first
func (s *PaymentService) List(ctx context.Context, page, pageSize int) ([]PaymentResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	payments, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToPaymentResponses(payments), total, nil
}

// ListByMemberRef retrieves all payments of a member by storage ID
func (s *PaymentService) ListByMemberRef(ctx context.Context, memberRef uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByMemberRef(ctx, memberRef)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// ListByMemberID retrieves all payments of a member by business identifier
func (s *PaymentService) ListByMemberID(ctx context.Context, memberID string) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// MonthlySummary totals all payments whose date falls in the given YYYY-MM
// month; an empty month defaults to the current one. Matching is a string
// prefix on the payment date. Results are cached per month until a payment
// in that month changes.
func (s *PaymentService) MonthlySummary(ctx context.Context, month string) (*MonthlySummaryResponse, error) {
	if month == "" {
		month = valueobject.CurrentMonth()
	}
	if !monthPattern.MatchString(month) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Month must be YYYY-MM")
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, month); ok {
			return cached, nil
		}
	}

	total, err := s.paymentRepo.SumByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	summary := &MonthlySummaryResponse{
		Month:          month,
		TotalCollected: total.TotalCollected,
		TotalPayments:  total.TotalPayments,
	}
	if s.cache != nil {
		s.cache.Set(ctx, month, summary)
	}
	return summary, nil
}

// invalidateMonths drops cached summaries for the months the given payment
// dates fall in
func (s *PaymentService) invalidateMonths(ctx context.Context, paymentDates ...string) {
	if s.cache == nil {
		return
	}
	months := make([]string, 0, len(paymentDates))
	for _, date := range paymentDates {
		if len(date) >= 7 {
			months = append(months, date[:7])
		}
	}
	if len(months) > 0 {
		s.cache.Invalidate(ctx, months...)
	}
}

func (s *PaymentService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	// Events are observational; a publish failure never fails the operation
	_ = s.events.Publish(ctx, events...)
}
