package repository

import (
	"context"
	"errors"

	"tweetnest/internal/cache"
	"tweetnest/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	// ListAll returns posts newest first. Ties on creation time are broken by
	// descending ID so the order is stable across calls.
	ListAll(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
	ListByUserID(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error)
	ListLikedBy(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error)
	ListFollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) (bool, error)
	Unlike(ctx context.Context, userID, postID uint) error
	LikedPostIDs(ctx context.Context, userID uint) ([]uint, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withDetails decorates a post query with author, comments and the computed
// engagement columns for the given viewer.
func (r *postRepository) withDetails(ctx context.Context, viewerID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Select(`posts.*,
			(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked`, viewerID).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC").Preload("User")
		})
}

// enrichLikes fills in the liker ID set for each post in one query.
func (r *postRepository) enrichLikes(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	var likes []models.Like
	if err := r.db.WithContext(ctx).Where("post_id IN ?", ids).Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}
	byPost := make(map[uint][]uint, len(posts))
	for _, l := range likes {
		byPost[l.PostID] = append(byPost[l.PostID], l.UserID)
	}
	for i := range posts {
		if u, ok := byPost[posts[i].ID]; ok {
			posts[i].LikeUserIDs = u
		} else {
			posts[i].LikeUserIDs = []uint{}
		}
	}
	return nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.withDetails(ctx, viewerID).Where("posts.id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	posts := []models.Post{post}
	if err := r.enrichLikes(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (r *postRepository) list(ctx context.Context, q *gorm.DB, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := q.Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichLikes(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListAll(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	return r.list(ctx, r.withDetails(ctx, viewerID), limit, offset)
}

func (r *postRepository) ListByUserID(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error) {
	q := r.withDetails(ctx, viewerID).Where("posts.user_id = ?", userID)
	return r.list(ctx, q, limit, offset)
}

func (r *postRepository) ListLikedBy(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error) {
	q := r.withDetails(ctx, viewerID).
		Joins("JOIN likes viewer_likes ON viewer_likes.post_id = posts.id").
		Where("viewer_likes.user_id = ?", userID)
	return r.list(ctx, q, limit, offset)
}

func (r *postRepository) ListFollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	q := r.withDetails(ctx, viewerID).
		Joins("JOIN follows ON follows.followee_id = posts.user_id").
		Where("follows.follower_id = ?", viewerID)
	return r.list(ctx, q, limit, offset)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	like := models.Like{UserID: userID, PostID: postID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidatePostsList(ctx)
	return res.RowsAffected > 0, nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
