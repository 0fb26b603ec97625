package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

type GroupService struct {
	groupRepo repository.GroupRepository
	isAdmin   func(ctx context.Context, userID uint) (bool, error)
}

type CreateGroupInput struct {
	UserID      uint
	Title       string
	Slug        string
	Description string
}

func NewGroupService(groupRepo repository.GroupRepository, isAdmin func(ctx context.Context, userID uint) (bool, error)) *GroupService {
	return &GroupService{groupRepo: groupRepo, isAdmin: isAdmin}
}

// CreateGroup adds a new topic group. Groups are curated, so only admins may
// create them.
func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	admin, err := s.isAdmin(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, models.NewUnauthorizedError("Only admins can create groups")
	}

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > 200 {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return nil, err
	}

	group := &models.Group{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}
