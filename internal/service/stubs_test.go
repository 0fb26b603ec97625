package service

import (
	"context"

	"quill/internal/models"
)

type stubPostRepo struct {
	createFn        func(ctx context.Context, post *models.Post) error
	getByIDFn       func(ctx context.Context, id uint) (*models.Post, error)
	updateFn        func(ctx context.Context, post *models.Post) error
	deleteFn        func(ctx context.Context, id uint) error
	listAllFn       func(ctx context.Context, limit, offset int) ([]models.Post, int64, error)
	listByGroupFn   func(ctx context.Context, groupID uint, limit, offset int) ([]models.Post, int64, error)
	listByAuthorFn  func(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, int64, error)
	listByAuthorsFn func(ctx context.Context, authorIDs []uint, limit, offset int) ([]models.Post, int64, error)
	countByAuthorFn func(ctx context.Context, authorID uint) (int64, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubPostRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	return s.listAllFn(ctx, limit, offset)
}

func (s *stubPostRepo) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.Post, int64, error) {
	return s.listByGroupFn(ctx, groupID, limit, offset)
}

func (s *stubPostRepo) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, int64, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}

func (s *stubPostRepo) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]models.Post, int64, error) {
	return s.listByAuthorsFn(ctx, authorIDs, limit, offset)
}

func (s *stubPostRepo) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}

type stubGroupRepo struct {
	createFn    func(ctx context.Context, group *models.Group) error
	getBySlugFn func(ctx context.Context, slug string) (*models.Group, error)
	listFn      func(ctx context.Context) ([]models.Group, error)
}

func (s *stubGroupRepo) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}

func (s *stubGroupRepo) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFn(ctx, slug)
}

func (s *stubGroupRepo) List(ctx context.Context) ([]models.Group, error) {
	return s.listFn(ctx)
}

type stubUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	isAdminFn       func(ctx context.Context, id uint) (bool, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserRepo) IsAdmin(ctx context.Context, id uint) (bool, error) {
	return s.isAdminFn(ctx, id)
}

type stubCommentRepo struct {
	createFn     func(ctx context.Context, comment *models.Comment) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn func(ctx context.Context, postID uint) ([]models.Comment, error)
	deleteFn     func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type stubFollowRepo struct {
	followFn         func(ctx context.Context, userID, authorID uint) error
	unfollowFn       func(ctx context.Context, userID, authorID uint) error
	existsFn         func(ctx context.Context, userID, authorID uint) (bool, error)
	authorIDsFn      func(ctx context.Context, userID uint) ([]uint, error)
	countFollowersFn func(ctx context.Context, authorID uint) (int64, error)
	countFollowingFn func(ctx context.Context, userID uint) (int64, error)
}

func (s *stubFollowRepo) Follow(ctx context.Context, userID, authorID uint) error {
	return s.followFn(ctx, userID, authorID)
}

func (s *stubFollowRepo) Unfollow(ctx context.Context, userID, authorID uint) error {
	return s.unfollowFn(ctx, userID, authorID)
}

func (s *stubFollowRepo) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.existsFn(ctx, userID, authorID)
}

func (s *stubFollowRepo) AuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.authorIDsFn(ctx, userID)
}

func (s *stubFollowRepo) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	return s.countFollowersFn(ctx, authorID)
}

func (s *stubFollowRepo) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
