// Package seed creates demo data for development databases.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password every seeded account can log in with.
const DemoPassword = "Quill-demo-1!"

// Seeder populates the database with generated users, groups, posts,
// comments, and follows.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes the content tables. Order matters for the foreign keys.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"follows", "comments", "posts", "groups", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run creates numUsers accounts and numPosts posts, plus groups, comments,
// and a follow mesh. One admin account ("editor") is always created.
func (s *Seeder) Run(numUsers, numPosts int) error {
	users, err := s.seedUsers(numUsers)
	if err != nil {
		return err
	}

	groups, err := s.seedGroups()
	if err != nil {
		return err
	}

	posts, err := s.seedPosts(users, groups, numPosts)
	if err != nil {
		return err
	}

	if err := s.seedComments(users, posts); err != nil {
		return err
	}
	return s.seedFollows(users)
}

func (s *Seeder) seedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n+1)
	users = append(users, models.User{
		Username: "editor",
		Email:    "editor@example.com",
		Password: string(hash),
		IsAdmin:  true,
	})
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			Username: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			Email:    fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password: string(hash),
		})
	}
	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	return users, nil
}

func (s *Seeder) seedGroups() ([]models.Group, error) {
	groups := []models.Group{
		{Title: "Travel Notes", Slug: "travel-notes", Description: "Trips and places worth writing about."},
		{Title: "Kitchen Stories", Slug: "kitchen-stories", Description: "Recipes and the disasters behind them."},
		{Title: "Book Club", Slug: "book-club", Description: "What we are reading this month."},
		{Title: "City Life", Slug: "city-life", Description: "Observations from the streets."},
	}
	if err := s.db.Create(&groups).Error; err != nil {
		return nil, fmt.Errorf("seed groups: %w", err)
	}
	return groups, nil
}

func (s *Seeder) seedPosts(users []models.User, groups []models.Group, n int) ([]models.Post, error) {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		post := models.Post{
			Text:   gofakeit.Paragraph(1, 4, 12, "\n\n"),
			UserID: author.ID,
			// spread creation over the last 90 days so feeds paginate
			CreatedAt: time.Now().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour),
		}
		if s.rand.Intn(3) > 0 {
			post.GroupID = &groups[s.rand.Intn(len(groups))].ID
		}
		if s.rand.Intn(4) == 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
		}
		posts = append(posts, post)
	}
	if err := s.db.CreateInBatches(&posts, 100).Error; err != nil {
		return nil, fmt.Errorf("seed posts: %w", err)
	}
	return posts, nil
}

func (s *Seeder) seedComments(users []models.User, posts []models.Post) error {
	var comments []models.Comment
	for _, post := range posts {
		for i := 0; i < s.rand.Intn(5); i++ {
			comments = append(comments, models.Comment{
				Text:      gofakeit.Sentence(10),
				PostID:    post.ID,
				UserID:    users[s.rand.Intn(len(users))].ID,
				CreatedAt: post.CreatedAt.Add(time.Duration(i+1) * time.Hour),
			})
		}
	}
	if len(comments) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&comments, 200).Error; err != nil {
		return fmt.Errorf("seed comments: %w", err)
	}
	return nil
}

func (s *Seeder) seedFollows(users []models.User) error {
	seen := map[[2]uint]bool{}
	var follows []models.Follow
	for _, user := range users {
		for i := 0; i < s.rand.Intn(6); i++ {
			author := users[s.rand.Intn(len(users))]
			key := [2]uint{user.ID, author.ID}
			if author.ID == user.ID || seen[key] {
				continue
			}
			seen[key] = true
			follows = append(follows, models.Follow{UserID: user.ID, AuthorID: author.ID})
		}
	}
	if len(follows) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&follows, 200).Error; err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}
	return nil
}
