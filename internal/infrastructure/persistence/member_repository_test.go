package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fittrack/backend/internal/domain/membership"
	"github.com/fittrack/backend/internal/domain/shared"
)

// newMockMemberRepository creates a GormMemberRepository with a mocked SQL connection
func newMockMemberRepository(t *testing.T) (*GormMemberRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormMemberRepository(gormDB), mock, mockDB
}

func memberColumns() []string {
	return []string{"id", "version", "member_id", "name", "phone", "email", "join_date", "plan", "status", "last_payment_date", "next_due_date"}
}

func TestGormMemberRepository_FindByID(t *testing.T) {
	t.Run("finds existing member", func(t *testing.T) {
		repo, mock, mockDB := newMockMemberRepository(t)
		defer mockDB.Close()

		memberID := uuid.New()
		rows := sqlmock.NewRows(memberColumns()).
			AddRow(memberID, 1, "GYM-001", "Asha Rao", "9876543210", "asha@example.com", "2024-01-10", "Monthly", "Active", "2024-03-10", "2024-04-10")

		mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(memberID, 1).
			WillReturnRows(rows)

		member, err := repo.FindByID(context.Background(), memberID)

		assert.NoError(t, err)
		require.NotNil(t, member)
		assert.Equal(t, memberID, member.ID)
		assert.Equal(t, "GYM-001", member.MemberID)
		assert.Equal(t, membership.PlanMonthly, member.Plan)
		assert.Equal(t, "2024-04-10", member.NextDueDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing member", func(t *testing.T) {
		repo, mock, mockDB := newMockMemberRepository(t)
		defer mockDB.Close()

		memberID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(memberID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		member, err := repo.FindByID(context.Background(), memberID)

		assert.Nil(t, member)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMemberRepository_FindByMemberID(t *testing.T) {
	t.Run("finds member by business key", func(t *testing.T) {
		repo, mock, mockDB := newMockMemberRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		rows := sqlmock.NewRows(memberColumns()).
			AddRow(id, 1, "GYM-001", "Asha Rao", "", "", "", "Yearly", "Active", "", "")

		mock.ExpectQuery(`SELECT \* FROM "members" WHERE member_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("GYM-001", 1).
			WillReturnRows(rows)

		member, err := repo.FindByMemberID(context.Background(), "GYM-001")

		assert.NoError(t, err)
		require.NotNil(t, member)
		assert.Equal(t, membership.PlanYearly, member.Plan)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMemberRepository_ExistsByMemberID(t *testing.T) {
	repo, mock, mockDB := newMockMemberRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "members" WHERE member_id = \$1`).
		WithArgs("GYM-001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByMemberID(context.Background(), "GYM-001")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMemberRepository_Search(t *testing.T) {
	repo, mock, mockDB := newMockMemberRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows(memberColumns()).
		AddRow(uuid.New(), 1, "GYM-001", "Asha Rao", "", "", "", "Monthly", "Active", "", "")

	mock.ExpectQuery(`SELECT \* FROM "members" WHERE member_id ILIKE \$1 OR name ILIKE \$2 OR phone ILIKE \$3 OR email ILIKE \$4 ORDER BY created_at DESC`).
		WithArgs("%asha%", "%asha%", "%asha%", "%asha%").
		WillReturnRows(rows)

	members, err := repo.Search(context.Background(), "asha")

	assert.NoError(t, err)
	assert.Len(t, members, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMemberRepository_FindFiltered(t *testing.T) {
	repo, mock, mockDB := newMockMemberRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows(memberColumns()).
		AddRow(uuid.New(), 1, "GYM-001", "Asha Rao", "", "", "", "Quarterly", "Active", "", "")

	mock.ExpectQuery(`SELECT \* FROM "members" WHERE status = \$1 AND plan = \$2 ORDER BY created_at DESC`).
		WithArgs("Active", "Quarterly").
		WillReturnRows(rows)

	members, err := repo.FindFiltered(context.Background(), membership.MemberFilter{
		Status: membership.StatusActive,
		Plan:   membership.PlanQuarterly,
	})

	assert.NoError(t, err)
	assert.Len(t, members, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMemberRepository_Delete(t *testing.T) {
	t.Run("deletes existing member", func(t *testing.T) {
		repo, mock, mockDB := newMockMemberRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectExec(`DELETE FROM "members" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockMemberRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectExec(`DELETE FROM "members" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Equal(t, shared.ErrNotFound, repo.Delete(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
