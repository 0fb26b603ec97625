package service

import (
	"context"
	"time"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/repository"
)

// FeedService assembles the paginated post listings.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository

	pageSize int
	homeTTL  time.Duration
}

// ProfileFeed is one page of an author's posts plus the profile header data.
type ProfileFeed struct {
	Author         *models.User                 `json:"author"`
	Posts          pagination.Page[models.Post] `json:"posts"`
	PostCount      int64                        `json:"post_count"`
	FollowerCount  int64                        `json:"follower_count"`
	FollowingCount int64                        `json:"following_count"`
	Following      bool                         `json:"following"`
}

// GroupFeed is one page of a group's posts plus the group itself.
type GroupFeed struct {
	Group *models.Group                `json:"group"`
	Posts pagination.Page[models.Post] `json:"posts"`
}

// FollowedFeed is one page of posts by the viewer's followed authors.
type FollowedFeed struct {
	Posts        pagination.Page[models.Post] `json:"posts"`
	FollowingAny bool                         `json:"following_any"`
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	pageSize int,
	homeTTL time.Duration,
) *FeedService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		pageSize:   pageSize,
		homeTTL:    homeTTL,
	}
}

// PageSize returns the configured page size.
func (s *FeedService) PageSize() int {
	return s.pageSize
}

func (s *FeedService) fetchPage(
	ctx context.Context,
	page int,
	list func(ctx context.Context, limit, offset int) ([]models.Post, int64, error),
) (pagination.Page[models.Post], error) {
	// Two passes: the first fetch learns the total so an out-of-range page
	// number can be clamped to the last page.
	offset := pagination.Offset(page, s.pageSize)
	posts, total, err := list(ctx, s.pageSize, offset)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}

	if clamped := pagination.Clamp(page, total, s.pageSize); clamped != page {
		page = clamped
		posts, total, err = list(ctx, s.pageSize, pagination.Offset(page, s.pageSize))
		if err != nil {
			return pagination.Page[models.Post]{}, err
		}
	}

	return pagination.New(posts, page, s.pageSize, total), nil
}

// HomeFeed returns one page of all posts, newest first. Pages are served
// through a short-lived cache; a freshly published post may be absent until
// the cached page expires.
func (s *FeedService) HomeFeed(ctx context.Context, page int) (pagination.Page[models.Post], error) {
	if page < 1 {
		page = 1
	}

	var result pagination.Page[models.Post]
	err := cache.Aside(ctx, cache.HomeFeedKey(page), &result, s.homeTTL, func() error {
		fetched, err := s.fetchPage(ctx, page, s.postRepo.ListAll)
		if err != nil {
			return err
		}
		result = fetched
		return nil
	})
	return result, err
}

// GroupFeedPage returns one page of a group's posts, newest first.
func (s *FeedService) GroupFeedPage(ctx context.Context, slug string, page int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	posts, err := s.fetchPage(ctx, page, func(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
		return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	return &GroupFeed{Group: group, Posts: posts}, nil
}

// ProfileFeedPage returns one page of an author's posts together with the
// profile header counts and whether the viewer follows the author.
func (s *FeedService) ProfileFeedPage(ctx context.Context, username string, viewerID uint, page int) (*ProfileFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.fetchPage(ctx, page, func(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
		return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	followerCount, err := s.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.CountFollowing(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileFeed{
		Author:         author,
		Posts:          posts,
		PostCount:      posts.TotalItems,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		Following:      following,
	}, nil
}

// FollowFeed returns one page of posts by the authors the user follows.
// FollowingAny tells an empty feed apart from not following anybody.
func (s *FeedService) FollowFeed(ctx context.Context, userID uint, page int) (*FollowedFeed, error) {
	authorIDs, err := s.followRepo.AuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.fetchPage(ctx, page, func(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
		return s.postRepo.ListByAuthors(ctx, authorIDs, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	return &FollowedFeed{Posts: posts, FollowingAny: len(authorIDs) > 0}, nil
}
