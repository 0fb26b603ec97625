package repository

import (
	"context"
	"regexp"
	"testing"

	"quill/internal/cache"
	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "leo", "leo@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "leo", Email: "leo@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, models.IsNotFound(err))
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "username", "email"}).
		AddRow(2, "mira", "mira@example.com")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("mira", 1).
		WillReturnRows(rows)

	user, err := repo.GetByUsername(ctx, "mira")
	assert.NoError(t, err)
	assert.Equal(t, uint(2), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The second lookup must come from the profile cache; sqlmock fails the test
// if another query reaches the database.
func TestUserRepository_GetByUsernameCached(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "username", "email"}).
		AddRow(2, "mira", "mira@example.com")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("mira", 1).
		WillReturnRows(rows)

	first, err := repo.GetByUsername(ctx, "mira")
	assert.NoError(t, err)

	second, err := repo.GetByUsername(ctx, "mira")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, mr.Exists(cache.UserProfileKey("mira")))
}

func TestUserRepository_CreateInvalidatesProfile(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	require.NoError(t, mr.Set(cache.UserProfileKey("mira"), `{"id":2}`))

	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &models.User{
		Username: "mira",
		Email:    "mira@example.com",
		Password: "hash",
	})
	assert.NoError(t, err)
	assert.False(t, mr.Exists(cache.UserProfileKey("mira")))
}

func TestUserRepository_GetByUsernameNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("ghost", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_IsAdmin(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"is_admin"}).AddRow(true)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "is_admin" FROM "users" WHERE id = $1`)).
		WithArgs(1).
		WillReturnRows(rows)

	isAdmin, err := repo.IsAdmin(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, isAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}
