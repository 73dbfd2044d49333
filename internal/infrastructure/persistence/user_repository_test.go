package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockUserRepository creates a GormUserRepository with a mocked SQL connection
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormUserRepository(gormDB), mock, mockDB
}

var userColumns = []string{"id", "created_at_utc", "first_name", "last_name", "email", "password_hash", "role"}

func TestGormUserRepository_GetByID(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows(userColumns).
			AddRow(int64(4), time.Now().UTC(), "Ada", "Lovelace", "ada@example.com", "hash", 2)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(4), 1).
			WillReturnRows(rows)

		got, err := repo.GetByID(context.Background(), 4)

		require.NoError(t, err)
		require.True(t, got.IsOk())
		assert.Equal(t, "Ada", got.Value().FirstName)
		assert.Equal(t, identity.RoleAdmin, got.Value().Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(9), 1).
			WillReturnRows(sqlmock.NewRows(userColumns))

		got, err := repo.GetByID(context.Background(), 9)

		require.NoError(t, err)
		assert.Equal(t, []*shared.Error{shared.NewNotFoundError("User with id 9 not found.")}, got.Errors())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns infrastructure errors unclassified", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errors.New("connection reset"))

		_, err := repo.GetByID(context.Background(), 1)
		assert.EqualError(t, err, "connection reset")
	})
}

func TestGormUserRepository_GetByEmail(t *testing.T) {
	repo, mock, mockDB := newMockUserRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY .* LIMIT .*`).
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows(userColumns))

	got, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.Equal(t, []*shared.Error{shared.NewNotFoundError("User with email nobody@example.com not found.")}, got.Errors())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Add(t *testing.T) {
	repo, mock, mockDB := newMockUserRepository(t)
	defer mockDB.Close()

	user, err := identity.NewUser("Ada", "Lovelace", "ada@example.com", "hash", identity.RoleUser)
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO "users" .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(int64(11), 1).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(11), user.CreatedAtUTC, "Ada", "Lovelace", "ada@example.com", "hash", 0))

	got, err := repo.Add(context.Background(), user)

	require.NoError(t, err)
	require.True(t, got.IsOk())
	assert.Equal(t, int64(11), got.Value().ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Remove_Missing(t *testing.T) {
	repo, mock, mockDB := newMockUserRepository(t)
	defer mockDB.Close()

	mock.ExpectExec(`DELETE FROM "users" WHERE "users"."id" = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	got, err := repo.Remove(context.Background(), 3)

	require.NoError(t, err)
	assert.True(t, got.HasKind(shared.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Update(t *testing.T) {
	repo, mock, mockDB := newMockUserRepository(t)
	defer mockDB.Close()

	user, err := identity.NewUser("Ada", "Lovelace", "ada@example.com", "hash", identity.RoleManager)
	require.NoError(t, err)
	user.ID = 6

	mock.ExpectExec(`UPDATE "users" SET .* WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(int64(6), 1).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(6), user.CreatedAtUTC, "Ada", "Lovelace", "ada@example.com", "hash", 1))

	got, err := repo.Update(context.Background(), user)

	require.NoError(t, err)
	require.True(t, got.IsOk())
	assert.Equal(t, identity.RoleManager, got.Value().Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
