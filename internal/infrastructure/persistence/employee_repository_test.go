package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockEmployeeRepository creates a GormEmployeeRepository with a mocked SQL connection
func newMockEmployeeRepository(t *testing.T) (*GormEmployeeRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormEmployeeRepository(gormDB), mock, mockDB
}

func employeeRows(id uuid.UUID, username string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "version", "username", "email", "full_name", "password_hash",
		"role", "status", "hourly_rate", "hired_at", "failed_attempts",
	}).AddRow(
		id, 1, username, username+"@atelier.local", "Marco Rossi", "$2a$10$hash",
		"TAILOR", "ACTIVE", decimal.NewFromInt(28), time.Now().AddDate(-2, 0, 0), 0,
	)
}

func TestGormEmployeeRepository_FindByID(t *testing.T) {
	t.Run("finds existing employee", func(t *testing.T) {
		repo, mock, mockDB := newMockEmployeeRepository(t)
		defer mockDB.Close()

		employeeID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(employeeID, 1).
			WillReturnRows(employeeRows(employeeID, "m.rossi"))

		employee, err := repo.FindByID(context.Background(), employeeID)

		assert.NoError(t, err)
		assert.NotNil(t, employee)
		assert.Equal(t, employeeID, employee.GetID())
		assert.Equal(t, "m.rossi", employee.Username)
		assert.Equal(t, workforce.RoleTailor, employee.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for non-existent employee", func(t *testing.T) {
		repo, mock, mockDB := newMockEmployeeRepository(t)
		defer mockDB.Close()

		employeeID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(employeeID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		employee, err := repo.FindByID(context.Background(), employeeID)

		assert.Error(t, err)
		assert.Nil(t, employee)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormEmployeeRepository_FindByUsername(t *testing.T) {
	t.Run("finds employee by username", func(t *testing.T) {
		repo, mock, mockDB := newMockEmployeeRepository(t)
		defer mockDB.Close()

		employeeID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE username = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("m.rossi", 1).
			WillReturnRows(employeeRows(employeeID, "m.rossi"))

		employee, err := repo.FindByUsername(context.Background(), "m.rossi")

		assert.NoError(t, err)
		assert.NotNil(t, employee)
		assert.Equal(t, workforce.EmployeeStatusActive, employee.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormEmployeeRepository_Delete(t *testing.T) {
	t.Run("deletes existing employee", func(t *testing.T) {
		repo, mock, mockDB := newMockEmployeeRepository(t)
		defer mockDB.Close()

		employeeID := uuid.New()

		mock.ExpectExec(`DELETE FROM "employees" WHERE id = \$1`).
			WithArgs(employeeID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), employeeID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockEmployeeRepository(t)
		defer mockDB.Close()

		employeeID := uuid.New()

		mock.ExpectExec(`DELETE FROM "employees" WHERE id = \$1`).
			WithArgs(employeeID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), employeeID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
