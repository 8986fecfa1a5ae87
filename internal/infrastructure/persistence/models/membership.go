package models

import (
	"github.com/fittrack/backend/internal/domain/membership"
)

// MemberModel is the persistence model for the members table
type MemberModel struct {
	AggregateModel
	MemberID        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string `gorm:"type:varchar(200);not null;index"`
	Phone           string `gorm:"type:varchar(50);index"`
	Email           string `gorm:"type:varchar(200);index"`
	JoinDate        string `gorm:"type:varchar(10)"`
	Plan            string `gorm:"type:varchar(20);not null;index"`
	Status          string `gorm:"type:varchar(20);not null;index"`
	LastPaymentDate string `gorm:"type:varchar(10)"`
	NextDueDate     string `gorm:"type:varchar(10);index"`
}

// TableName specifies the table name for MemberModel
func (MemberModel) TableName() string {
	return "members"
}

// ToDomain converts the persistence model to a domain member
func (m *MemberModel) ToDomain() *membership.Member {
	member := &membership.Member{
		MemberID:        m.MemberID,
		Name:            m.Name,
		Phone:           m.Phone,
		Email:           m.Email,
		JoinDate:        m.JoinDate,
		Plan:            membership.MembershipPlan(m.Plan),
		Status:          membership.MemberStatus(m.Status),
		LastPaymentDate: m.LastPaymentDate,
		NextDueDate:     m.NextDueDate,
	}
	m.PopulateAggregateRoot(&member.BaseAggregateRoot)
	return member
}

// MemberModelFromDomain converts a domain member to the persistence model
func MemberModelFromDomain(member *membership.Member) *MemberModel {
	model := &MemberModel{
		MemberID:        member.MemberID,
		Name:            member.Name,
		Phone:           member.Phone,
		Email:           member.Email,
		JoinDate:        member.JoinDate,
		Plan:            string(member.Plan),
		Status:          string(member.Status),
		LastPaymentDate: member.LastPaymentDate,
		NextDueDate:     member.NextDueDate,
	}
	model.FromDomainAggregateRoot(member.BaseAggregateRoot)
	return model
}
