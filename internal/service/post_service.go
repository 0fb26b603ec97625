// Package service contains the application's business logic layer.
package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

const maxPostLen = 40000

type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

type CreatePostInput struct {
	UserID    uint
	Text      string
	ImageURL  string
	GroupSlug string
}

type UpdatePostInput struct {
	UserID    uint
	PostID    uint
	Text      string
	ImageURL  string
	GroupSlug string
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{postRepo: postRepo, groupRepo: groupRepo}
}

// resolveGroup maps an optional group slug to its ID.
func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &group.ID, nil
}

func validatePostText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("Text is required")
	}
	if len(text) > maxPostLen {
		return models.NewValidationError("Post too long (max 40000 characters)")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostText(in.Text); err != nil {
		return nil, err
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
		GroupID:  groupID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost edits a post's text, image and group. Only the author may edit;
// anyone else gets an ownership error so the handler can redirect to the
// post's detail page.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}

	if err := validatePostText(in.Text); err != nil {
		return nil, err
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.ImageURL = in.ImageURL
	post.GroupID = groupID
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}
