package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/domain/billing"
	"github.com/fittrack/backend/internal/domain/shared"
	"github.com/fittrack/backend/internal/infrastructure/persistence/models"
)

// GormPaymentRepository implements billing.Repository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByMemberRef lists all payments of one member by internal UUID
func (r *GormPaymentRepository) FindByMemberRef(ctx context.Context, memberRef uuid.UUID) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("member_ref = ?", memberRef).
		Order("payment_date DESC, created_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByMemberID lists all payments of one member by business identifier
func (r *GormPaymentRepository) FindByMemberID(ctx context.Context, memberID string) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("payment_date DESC, created_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindLatestByMemberRef returns the most recent payment of a member. Ordering
// is by payment date first and creation time second so same-day payments
// resolve to the one recorded last. Returns nil without error when the member
// has no payments.
func (r *GormPaymentRepository) FindLatestByMemberRef(ctx context.Context, memberRef uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	err := r.db.WithContext(ctx).
		Where("member_ref = ?", memberRef).
		Order("payment_date DESC, created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SumByMonth totals all payments whose date starts with the given YYYY-MM
// prefix. The payment date is matched as an opaque string, not a date range.
func (r *GormPaymentRepository) SumByMonth(ctx context.Context, month string) (*billing.MonthlyTotal, error) {
	var row struct {
		TotalCollected decimal.Decimal
		TotalPayments  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0) AS total_collected, COUNT(*) AS total_payments").
		Where("payment_date LIKE ?", month+"-%").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &billing.MonthlyTotal{
		TotalCollected: row.TotalCollected,
		TotalPayments:  row.TotalPayments,
	}, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByMemberRef removes all payments of a member
func (r *GormPaymentRepository) DeleteByMemberRef(ctx context.Context, memberRef uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "member_ref = ?", memberRef).Error
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("payment_date DESC, created_at DESC")
	}

	return query
}

func (r *GormPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("member_id ILIKE ? OR note ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "member_id":
			query = query.Where("member_id = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		}
	}

	return query
}

func toDomainPayments(paymentModels []models.PaymentModel) []billing.Payment {
	payments := make([]billing.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}

// Ensure GormPaymentRepository implements billing.Repository
var _ billing.Repository = (*GormPaymentRepository)(nil)
