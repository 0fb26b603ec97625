package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGroups(t *testing.T) {
	s, app := setupTestServer(t)
	seedGroup(t, s.db, "Zebra Talk", "zebra-talk")
	seedGroup(t, s.db, "Antelope News", "antelope-news")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/group", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Groups []models.Group `json:"groups"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Groups, 2)
	assert.Equal(t, "Antelope News", body.Groups[0].Title)
}

func TestCreateGroup(t *testing.T) {
	s, app := setupTestServer(t)
	admin := seedUser(t, s.db, "admin", true)
	regular := seedUser(t, s.db, "regular", false)

	t.Run("admin creates a group", func(t *testing.T) {
		req := authed(t, s, jsonRequest(http.MethodPost, "/group",
			`{"title":"Go Notes","slug":"go-notes","description":"all things Go"}`), admin)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var group models.Group
		decodeBody(t, resp, &group)
		assert.Equal(t, "go-notes", group.Slug)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		req := authed(t, s, jsonRequest(http.MethodPost, "/group",
			`{"title":"Mine","slug":"mine-now"}`), regular)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("reserved slug rejected", func(t *testing.T) {
		req := authed(t, s, jsonRequest(http.MethodPost, "/group",
			`{"title":"Sneaky","slug":"admin"}`), admin)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unauthenticated is 401", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/group", `{"title":"X","slug":"xyzzy"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
