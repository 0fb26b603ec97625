package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	HomeFeedKeyPrefix = "home:feed:page:%d"
	GroupKeyPrefix    = "group:%s"
	GroupListKey      = "group:list"
	UserProfilePrefix = "profile:%s"
)

const (
	// DefaultHomeTTL bounds home feed staleness. There is no invalidation on
	// writes; new posts appear once the entry expires.
	DefaultHomeTTL = 20 * time.Second

	GroupTTL     = 10 * time.Minute
	GroupListTTL = 5 * time.Minute
	ProfileTTL   = time.Minute
)

func HomeFeedKey(page int) string {
	return fmt.Sprintf(HomeFeedKeyPrefix, page)
}

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

func UserProfileKey(username string) string {
	return fmt.Sprintf(UserProfilePrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
	Invalidate(ctx, GroupListKey)
}

func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, UserProfileKey(username))
}
