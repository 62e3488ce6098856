package service

import (
	"context"
	"strings"

	"tweetnest/internal/cache"
	"tweetnest/internal/media"
	"tweetnest/internal/middleware"
	"tweetnest/internal/models"
	"tweetnest/internal/repository"
)

// DefaultPageSize bounds feed queries when the client does not ask for a
// specific page size.
const DefaultPageSize = 20

// FeedService composes post timelines and manages the post lifecycle.
type FeedService struct {
	posts repository.PostRepository
	users repository.UserRepository
	media media.Store
}

// NewFeedService returns a new FeedService.
func NewFeedService(posts repository.PostRepository, users repository.UserRepository, store media.Store) *FeedService {
	return &FeedService{posts: posts, users: users, media: store}
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	UserID uint
	Text   string
	// Image is the raw image payload, if any. It is uploaded to the media
	// store and only the resulting reference URL is persisted.
	Image []byte
}

// CreatePost stores a new post. A post must carry text or an image.
func (s *FeedService) CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" && len(input.Image) == 0 {
		return nil, models.NewValidationError("Post must have text or an image")
	}

	post := &models.Post{UserID: input.UserID, Text: text}
	if len(input.Image) > 0 {
		ref, err := s.media.Upload(ctx, input.Image)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		post.ImageURL = ref
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID, input.UserID)
}

// DeletePost removes a post owned by the caller. The post's image, if any,
// is deleted from the media store afterwards; a media failure does not undo
// the post deletion.
func (s *FeedService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	if post.ImageURL != "" {
		if err := s.media.Delete(ctx, post.ImageURL); err != nil {
			middleware.Logger.Warn("orphaned media object", "ref", post.ImageURL, "error", err)
		}
	}
	return nil
}

// AllPosts returns every post newest first. The first page is served through
// the cache; deeper pages always hit the database.
func (s *FeedService) AllPosts(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if offset == 0 && limit == DefaultPageSize {
		var posts []models.Post
		err := cache.Aside(ctx, cache.AllPostsKey(viewerID), &posts, cache.PostListTTL, func() error {
			var ferr error
			posts, ferr = s.posts.ListAll(ctx, viewerID, limit, offset)
			return ferr
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}

	return s.posts.ListAll(ctx, viewerID, limit, offset)
}

// PostsByAuthorHandle returns the posts authored by the user with the given
// handle, newest first. An unknown handle is an error even if the result
// would simply be empty.
func (s *FeedService) PostsByAuthorHandle(ctx context.Context, handle string, viewerID uint, limit, offset int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	author, err := s.users.GetByUsername(ctx, handle)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundMessage("User not found")
	}
	return s.posts.ListByUserID(ctx, author.ID, viewerID, limit, offset)
}

// PostsLikedBy returns the posts the given user has liked, newest first.
func (s *FeedService) PostsLikedBy(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.posts.ListLikedBy(ctx, userID, viewerID, limit, offset)
}

// FollowingFeed returns posts authored by users the viewer follows, newest
// first. A viewer following nobody gets an empty feed.
func (s *FeedService) FollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return s.posts.ListFollowingFeed(ctx, viewerID, limit, offset)
}
