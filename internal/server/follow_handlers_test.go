package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followCount(t *testing.T, s *Server, userID, authorID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error)
	return count
}

func TestFollowAuthor(t *testing.T) {
	s, app := setupTestServer(t)
	reader := seedUser(t, s.db, "reader", false)
	author := seedUser(t, s.db, "writer", false)

	t.Run("follow creates the subscription and redirects", func(t *testing.T) {
		req := authed(t, s, httptest.NewRequest(http.MethodGet, "/profile/writer/follow", nil), reader)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/follow", resp.Header.Get("Location"))
		assert.Equal(t, int64(1), followCount(t, s, reader.ID, author.ID))
	})

	t.Run("repeat follow stays single", func(t *testing.T) {
		req := authed(t, s, httptest.NewRequest(http.MethodGet, "/profile/writer/follow", nil), reader)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, int64(1), followCount(t, s, reader.ID, author.ID))
	})

	t.Run("self-follow is a silent no-op", func(t *testing.T) {
		req := authed(t, s, httptest.NewRequest(http.MethodGet, "/profile/reader/follow", nil), reader)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/follow", resp.Header.Get("Location"))
		assert.Equal(t, int64(0), followCount(t, s, reader.ID, reader.ID))
	})

	t.Run("unknown author is 404", func(t *testing.T) {
		req := authed(t, s, httptest.NewRequest(http.MethodGet, "/profile/ghost/follow", nil), reader)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/profile/writer/follow", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})
}

func TestUnfollowAuthor(t *testing.T) {
	s, app := setupTestServer(t)
	reader := seedUser(t, s.db, "reader", false)
	author := seedUser(t, s.db, "writer", false)
	require.NoError(t, s.db.Create(&models.Follow{UserID: reader.ID, AuthorID: author.ID}).Error)

	t.Run("unfollow removes the subscription", func(t *testing.T) {
		req := authed(t, s, httptest.NewRequest(http.MethodGet, "/profile/writer/unfollow", nil), reader)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/follow", resp.Header.Get("Location"))
		assert.Equal(t, int64(0), followCount(t, s, reader.ID, author.ID))
	})

	t.Run("unfollowing again is a no-op", func(t *testing.T) {
		req := authed(t, s, httptest.NewRequest(http.MethodGet, "/profile/writer/unfollow", nil), reader)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	})

	t.Run("unknown author is 404", func(t *testing.T) {
		req := authed(t, s, httptest.NewRequest(http.MethodGet, "/profile/ghost/unfollow", nil), reader)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
