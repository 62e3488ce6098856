package service

import (
	"context"

	"tweetnest/internal/models"
)

// Function-field stubs for the repository interfaces. Tests set only the
// fields their scenario touches; unset calls panic to surface unexpected use.

type stubUserRepo struct {
	getByID        func(ctx context.Context, id uint) (*models.User, error)
	getForUpdate   func(ctx context.Context, id uint) (*models.User, error)
	getByUsername  func(ctx context.Context, username string) (*models.User, error)
	getByEmail     func(ctx context.Context, email string) (*models.User, error)
	create         func(ctx context.Context, user *models.User) error
	update         func(ctx context.Context, user *models.User) error
	updatePassword func(ctx context.Context, id uint, hash string) error
	list           func(ctx context.Context, limit, offset int) ([]models.User, error)
	sample         func(ctx context.Context, excludeID uint, limit int) ([]models.User, error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByID(ctx, id)
}
func (s *stubUserRepo) GetForUpdate(ctx context.Context, id uint) (*models.User, error) {
	return s.getForUpdate(ctx, id)
}
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsername(ctx, username)
}
func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmail(ctx, email)
}
func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.create(ctx, user)
}
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	return s.update(ctx, user)
}
func (s *stubUserRepo) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return s.updatePassword(ctx, id, hash)
}
func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.list(ctx, limit, offset)
}
func (s *stubUserRepo) Sample(ctx context.Context, excludeID uint, limit int) ([]models.User, error) {
	return s.sample(ctx, excludeID, limit)
}

type stubFollowRepo struct {
	create       func(ctx context.Context, followerID, followeeID uint) (bool, error)
	delete       func(ctx context.Context, followerID, followeeID uint) error
	isFollowing  func(ctx context.Context, followerID, followeeID uint) (bool, error)
	followerIDs  func(ctx context.Context, userID uint) ([]uint, error)
	followingIDs func(ctx context.Context, userID uint) ([]uint, error)
	followers    func(ctx context.Context, userID uint) ([]models.User, error)
	following    func(ctx context.Context, userID uint) ([]models.User, error)
}

func (s *stubFollowRepo) Create(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.create(ctx, followerID, followeeID)
}
func (s *stubFollowRepo) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.delete(ctx, followerID, followeeID)
}
func (s *stubFollowRepo) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowing(ctx, followerID, followeeID)
}
func (s *stubFollowRepo) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDs(ctx, userID)
}
func (s *stubFollowRepo) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDs(ctx, userID)
}
func (s *stubFollowRepo) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followers(ctx, userID)
}
func (s *stubFollowRepo) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.following(ctx, userID)
}

type stubPostRepo struct {
	create            func(ctx context.Context, post *models.Post) error
	getByID           func(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	listAll           func(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
	listByUserID      func(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error)
	listLikedBy       func(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error)
	listFollowingFeed func(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
	delete            func(ctx context.Context, id uint) error
	isLiked           func(ctx context.Context, userID, postID uint) (bool, error)
	like              func(ctx context.Context, userID, postID uint) (bool, error)
	unlike            func(ctx context.Context, userID, postID uint) error
	likedPostIDs      func(ctx context.Context, userID uint) ([]uint, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	return s.create(ctx, post)
}
func (s *stubPostRepo) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	return s.getByID(ctx, id, viewerID)
}
func (s *stubPostRepo) ListAll(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	return s.listAll(ctx, viewerID, limit, offset)
}
func (s *stubPostRepo) ListByUserID(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error) {
	return s.listByUserID(ctx, userID, viewerID, limit, offset)
}
func (s *stubPostRepo) ListLikedBy(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Post, error) {
	return s.listLikedBy(ctx, userID, viewerID, limit, offset)
}
func (s *stubPostRepo) ListFollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	return s.listFollowingFeed(ctx, viewerID, limit, offset)
}
func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	return s.delete(ctx, id)
}
func (s *stubPostRepo) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLiked(ctx, userID, postID)
}
func (s *stubPostRepo) Like(ctx context.Context, userID, postID uint) (bool, error) {
	return s.like(ctx, userID, postID)
}
func (s *stubPostRepo) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlike(ctx, userID, postID)
}
func (s *stubPostRepo) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.likedPostIDs(ctx, userID)
}

type stubCommentRepo struct {
	create     func(ctx context.Context, comment *models.Comment) error
	listByPost func(ctx context.Context, postID uint) ([]models.Comment, error)
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return s.create(ctx, comment)
}
func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPost(ctx, postID)
}

type stubNotificationRepo struct {
	create       func(ctx context.Context, n *models.Notification) error
	listFor      func(ctx context.Context, userID uint) ([]models.Notification, error)
	markAllRead  func(ctx context.Context, userID uint) error
	deleteAllFor func(ctx context.Context, userID uint) error
}

func (s *stubNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return s.create(ctx, n)
}
func (s *stubNotificationRepo) ListFor(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.listFor(ctx, userID)
}
func (s *stubNotificationRepo) MarkAllRead(ctx context.Context, userID uint) error {
	return s.markAllRead(ctx, userID)
}
func (s *stubNotificationRepo) DeleteAllFor(ctx context.Context, userID uint) error {
	return s.deleteAllFor(ctx, userID)
}

// stubNotifier records emissions for assertion.
type stubNotifier struct {
	emitted []models.Notification
	err     error
}

func (s *stubNotifier) Emit(_ context.Context, fromID, toID uint, t models.NotificationType) error {
	if s.err != nil {
		return s.err
	}
	s.emitted = append(s.emitted, models.Notification{FromID: fromID, ToID: toID, Type: t})
	return nil
}

// stubMediaStore is an in-memory media.Store.
type stubMediaStore struct {
	uploads int
	deleted []string
}

func (s *stubMediaStore) Upload(_ context.Context, _ []byte) (string, error) {
	s.uploads++
	return "/media/stub-upload.png", nil
}

func (s *stubMediaStore) Delete(_ context.Context, ref string) error {
	s.deleted = append(s.deleted, ref)
	return nil
}
