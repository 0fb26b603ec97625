package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "unit-test-secret-at-least-32-chars!!"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           testSecret,
		Env:                 "test",
		PageSize:            10,
		HomeCacheTTLSeconds: 20,
	}
}

// setupTestServer builds a Server over an in-memory sqlite database with the
// full route table registered. The global middleware chain is left off so
// tests hit handlers and auth guards directly.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	s := NewServerWithDeps(testConfig(), db, nil)
	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func seedUser(t *testing.T, db *gorm.DB, username string, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant-hash",
		IsAdmin:  admin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedPost(t *testing.T, db *gorm.DB, userID uint, text string, groupID *uint) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, UserID: userID, GroupID: groupID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func seedGroup(t *testing.T, db *gorm.DB, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("seed group %s: %v", slug, err)
	}
	return group
}

// authed issues a real token for the user and attaches it as a bearer header.
func authed(t *testing.T, s *Server, req *http.Request, user *models.User) *http.Request {
	t.Helper()
	token, err := s.generateToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func postDetailPath(id uint) string {
	return fmt.Sprintf("/posts/%d", id)
}
