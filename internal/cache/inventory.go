package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	PostKeyPrefix = "post:%d"
	// The first feed page carries viewer-specific fields (liked flags),
	// so each viewer gets their own copy.
	AllPostsKeyPrefix = "posts:all:first:%d"
	allPostsKeyGlob   = "posts:all:first:*"
)

const (
	UserTTL     = 5 * time.Minute
	PostTTL     = 30 * time.Minute
	PostListTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func AllPostsKey(viewerID uint) string {
	return fmt.Sprintf(AllPostsKeyPrefix, viewerID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidatePostsList drops every viewer's copy of the cached first feed
// page. Any write that changes the page contents or its counts must call
// this.
func InvalidatePostsList(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, allPostsKeyGlob, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
