package repository

import (
	"context"
	"testing"
	"time"

	"tweetnest/internal/cache"
	"tweetnest/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_GetByIDComputesEngagement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author, "hello world")

	_, err := repo.Like(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: liker.ID, Text: "hi"}).Error)

	got, err := repo.GetByID(ctx, post.ID, liker.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 1, got.CommentsCount)
	assert.True(t, got.Liked)
	assert.Equal(t, []uint{liker.ID}, got.LikeUserIDs)
	assert.Equal(t, "author", got.User.Username)
	require.Len(t, got.Comments, 1)

	// From the author's perspective the post is not liked.
	got, err = repo.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, got.Liked)
	assert.Equal(t, 1, got.LikesCount)
}

func TestPostRepository_GetByIDUnknown(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 999, 1)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_ListAllNewestFirstStableTies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")

	// Three posts sharing one timestamp plus an older one.
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := &models.Post{UserID: author.ID, Text: "older", CreatedAt: at.Add(-time.Hour)}
	require.NoError(t, db.Create(older).Error)
	var tied []*models.Post
	for _, text := range []string{"a", "b", "c"} {
		p := &models.Post{UserID: author.ID, Text: text, CreatedAt: at}
		require.NoError(t, db.Create(p).Error)
		tied = append(tied, p)
	}

	posts, err := repo.ListAll(ctx, author.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 4)

	// Ties on created_at resolve by descending ID, repeatably.
	assert.Equal(t, tied[2].ID, posts[0].ID)
	assert.Equal(t, tied[1].ID, posts[1].ID)
	assert.Equal(t, tied[0].ID, posts[2].ID)
	assert.Equal(t, older.ID, posts[3].ID)

	again, err := repo.ListAll(ctx, author.ID, 10, 0)
	require.NoError(t, err)
	for i := range posts {
		assert.Equal(t, posts[i].ID, again[i].ID)
	}
}

func TestPostRepository_LikeIsIdempotentAtConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "like me")

	created, err := repo.Like(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Like(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, created, "second like is swallowed by the unique constraint")

	got, err := repo.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)

	require.NoError(t, repo.Unlike(ctx, author.ID, post.ID))
	got, err = repo.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)
	assert.Empty(t, got.LikeUserIDs)
}

func TestPostRepository_LikeInvalidatesCachedFeedPages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "counted")

	// A like changes every viewer's copy of the first page, so all of
	// them must be dropped.
	primeFeedPages := func() {
		for _, viewerID := range []uint{1, 2} {
			require.NoError(t, cache.SetJSON(ctx, cache.AllPostsKey(viewerID),
				[]models.Post{*post}, cache.PostListTTL))
		}
	}

	primeFeedPages()
	_, err = repo.Like(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.AllPostsKey(1)))
	assert.False(t, mr.Exists(cache.AllPostsKey(2)))

	primeFeedPages()
	require.NoError(t, repo.Unlike(ctx, author.ID, post.ID))
	assert.False(t, mr.Exists(cache.AllPostsKey(1)))
	assert.False(t, mr.Exists(cache.AllPostsKey(2)))
}

func TestPostRepository_ListLikedBy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	liked := createTestPost(t, db, author, "liked")
	createTestPost(t, db, author, "ignored")

	_, err := repo.Like(ctx, fan.ID, liked.ID)
	require.NoError(t, err)

	posts, err := repo.ListLikedBy(ctx, fan.ID, fan.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, liked.ID, posts[0].ID)
	assert.True(t, posts[0].Liked)
}

func TestPostRepository_ListFollowingFeed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")

	_, err := follows.Create(ctx, viewer.ID, followed.ID)
	require.NoError(t, err)

	inFeed := createTestPost(t, db, followed, "from followed")
	createTestPost(t, db, stranger, "from stranger")
	createTestPost(t, db, viewer, "own post")

	posts, err := repo.ListFollowingFeed(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1, "only followed authors appear, not self or strangers")
	assert.Equal(t, inFeed.ID, posts[0].ID)
}

func TestPostRepository_DeleteSoftDeletes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author, "delete me")

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID, author.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// The row remains for audit under the soft delete marker.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPostRepository_LikedPostIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	p1 := createTestPost(t, db, author, "one")
	p2 := createTestPost(t, db, author, "two")

	_, err := repo.Like(ctx, fan.ID, p1.ID)
	require.NoError(t, err)
	_, err = repo.Like(ctx, fan.ID, p2.ID)
	require.NoError(t, err)

	ids, err := repo.LikedPostIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{p1.ID, p2.ID}, ids)
}
