package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/domain/membership"
	"github.com/fittrack/backend/internal/domain/shared"
	"github.com/fittrack/backend/internal/infrastructure/persistence/models"
)

// GormMemberRepository implements membership.Repository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindByID finds a member by storage ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberID finds a member by the business identifier
func (r *GormMemberRepository) FindByMemberID(ctx context.Context, memberID string) (*membership.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).First(&model, "member_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByMemberID checks if a member with the given business identifier exists
func (r *GormMemberRepository) ExistsByMemberID(ctx context.Context, memberID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Where("member_id = ?", memberID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds all members matching the filter
func (r *GormMemberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.Member, error) {
	var memberModels []models.MemberModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MemberModel{}), filter)

	if err := query.Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(memberModels), nil
}

// Search matches the key case-insensitively against member ID, name, phone and email
func (r *GormMemberRepository) Search(ctx context.Context, key string) ([]membership.Member, error) {
	pattern := "%" + key + "%"
	var memberModels []models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("member_id ILIKE ? OR name ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(memberModels), nil
}

// FindFiltered lists members matching the given status and plan
func (r *GormMemberRepository) FindFiltered(ctx context.Context, filter membership.MemberFilter) ([]membership.Member, error) {
	query := r.db.WithContext(ctx).Model(&models.MemberModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Plan != "" {
		query = query.Where("plan = ?", filter.Plan)
	}

	var memberModels []models.MemberModel
	if err := query.Order("created_at DESC").Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(memberModels), nil
}

// Save creates or updates a member
func (r *GormMemberRepository) Save(ctx context.Context, member *membership.Member) error {
	model := models.MemberModelFromDomain(member)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a member
func (r *GormMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MemberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts members matching the filter
func (r *GormMemberRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.MemberModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormMemberRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormMemberRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("member_id ILIKE ? OR name ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "plan":
			query = query.Where("plan = ?", value)
		}
	}

	return query
}

func toDomainMembers(memberModels []models.MemberModel) []membership.Member {
	members := make([]membership.Member, len(memberModels))
	for i, model := range memberModels {
		members[i] = *model.ToDomain()
	}
	return members
}

// Ensure GormMemberRepository implements membership.Repository
var _ membership.Repository = (*GormMemberRepository)(nil)
