package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	now := time.Now()
	postRows := sqlmock.NewRows([]string{"id", "text", "user_id", "group_id", "comments_count", "created_at"}).
		AddRow(1, "hello world", 5, nil, 2, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(postRows)
	userRows := sqlmock.NewRows([]string{"id", "username"}).AddRow(5, "leo")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(5).
		WillReturnRows(userRows)

	post, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, int64(2), post.CommentsCount)
	assert.Equal(t, "leo", post.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(42, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByID(context.Background(), 42)
	assert.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListByAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE user_id = $1`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "text", "user_id", "comments_count"}).
		AddRow(1, "newest", 5, 0)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count FROM "posts" WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`)).
		WithArgs(5, 10).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(5, "leo"))

	posts, total, err := repo.ListByAuthor(context.Background(), 5, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListByAuthorsEmptySet(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewPostRepository(db)

	// no authors means no query at all
	posts, total, err := repo.ListByAuthors(context.Background(), nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, total)
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	post := &models.Post{Text: "fresh", UserID: 5}
	err := repo.Create(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "posts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &models.Post{ID: 1, Text: "edited"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
