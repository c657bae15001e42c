package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"pawhaven/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(1, "pawuser", "paw@example.com")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
			WithArgs(1, 1).
			WillReturnRows(rows)

		user, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		if assert.NotNil(t, user) {
			assert.Equal(t, "pawuser", user.Username)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByID(ctx, 99)
		assert.Nil(t, user)
		var appErr *models.AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, models.CodeNotFound, appErr.Code)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(1, 1).
			WillReturnError(errors.New("connection timeout"))

		user, err := repo.GetByID(ctx, 1)
		assert.Nil(t, user)
		var appErr *models.AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, models.CodeInternal, appErr.Code)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByIdentifier(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Email Identifier", func(t *testing.T) {
		email := "paw@example.com"
		rows := sqlmock.NewRows([]string{"id", "email"}).AddRow(1, email)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
			WithArgs(email, 1).
			WillReturnRows(rows)

		user, err := repo.GetByIdentifier(ctx, email)
		assert.NoError(t, err)
		if assert.NotNil(t, user) {
			assert.Equal(t, email, user.Email)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Username Identifier", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "pawuser")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("pawuser", 1).
			WillReturnRows(rows)

		user, err := repo.GetByIdentifier(ctx, "pawuser")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Returns Nil Without Error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByIdentifier(ctx, "ghost")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.User{Username: "taken", Email: "taken@example.com"})
	var appErr *models.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, models.CodeDuplicate, appErr.Code)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"Postgres", errors.New(`duplicate key value violates unique constraint "idx"`), true},
		{"SQLState", errors.New("SQLSTATE 23505"), true},
		{"SQLite", errors.New("UNIQUE constraint failed: users.username"), true},
		{"Other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueConstraintError(tt.err))
		})
	}
}
