package service

import (
	"context"
	"strings"

	"tweetnest/internal/media"
	"tweetnest/internal/middleware"
	"tweetnest/internal/models"
	"tweetnest/internal/repository"
	"tweetnest/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	suggestedSampleSize = 10
	suggestedLimit      = 5
)

// UserService manages user accounts and profiles.
type UserService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	posts   repository.PostRepository
	media   media.Store
}

// NewUserService returns a new UserService.
func NewUserService(users repository.UserRepository, follows repository.FollowRepository, posts repository.PostRepository, store media.Store) *UserService {
	return &UserService{users: users, follows: follows, posts: posts, media: store}
}

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Username string
	FullName string
	Email    string
	Password string
}

// Register creates a new account. Username and email must be unique; the
// password is stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if err := validation.ValidateUsername(input.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.users.GetByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Username already taken")
	}
	if existing, err := s.users.GetByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: input.Username,
		FullName: strings.TrimSpace(input.FullName),
		Email:    input.Email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.enrich(ctx, user)
}

// Authenticate verifies a username/password pair and returns the account.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	return s.enrich(ctx, user)
}

// GetByID returns the user with the given ID including their graph views.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, user)
}

// GetProfile returns the user with the given handle including their graph
// views. An unknown handle is an error.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundMessage("User not found")
	}
	return s.enrich(ctx, user)
}

// SuggestedUsers returns up to five users the caller does not yet follow.
// A larger random sample is drawn first so the filter still leaves enough
// candidates for well-connected users.
func (s *UserService) SuggestedUsers(ctx context.Context, userID uint) ([]models.User, error) {
	sample, err := s.users.Sample(ctx, userID, suggestedSampleSize)
	if err != nil {
		return nil, err
	}
	followingIDs, err := s.follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	following := make(map[uint]struct{}, len(followingIDs))
	for _, id := range followingIDs {
		following[id] = struct{}{}
	}

	suggested := make([]models.User, 0, suggestedLimit)
	for _, u := range sample {
		if _, ok := following[u.ID]; ok {
			continue
		}
		suggested = append(suggested, u)
		if len(suggested) == suggestedLimit {
			break
		}
	}
	return suggested, nil
}

// UpdateProfileInput carries the profile fields a user may change. Nil
// pointers leave the stored value untouched.
type UpdateProfileInput struct {
	FullName        *string
	Email           *string
	Bio             *string
	Link            *string
	CurrentPassword string
	NewPassword     string
	// ProfileImage and CoverImage are raw payloads for replacement images.
	ProfileImage []byte
	CoverImage   []byte
}

// UpdateProfile applies partial changes to the caller's own profile. A
// password change requires both the current and the new password; supplying
// only one of them is rejected.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	// Mutations read the stored row directly; the cached copy has the
	// credential hash stripped.
	user, err := s.users.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if (input.CurrentPassword == "") != (input.NewPassword == "") {
		return nil, models.NewValidationError("Please provide both current password and new password")
	}
	newHash := ""
	if input.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)) != nil {
			return nil, models.NewUnauthorizedError("Current password is incorrect")
		}
		if err := validation.ValidatePassword(input.NewPassword); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		newHash = string(hash)
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.users.GetByEmail(ctx, email); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != userID {
			return nil, models.NewConflictError("Email already registered")
		}
		user.Email = email
	}
	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Link != nil {
		user.Link = *input.Link
	}

	if len(input.ProfileImage) > 0 {
		user.ProfileImage, err = s.replaceImage(ctx, user.ProfileImage, input.ProfileImage)
		if err != nil {
			return nil, err
		}
	}
	if len(input.CoverImage) > 0 {
		user.CoverImage, err = s.replaceImage(ctx, user.CoverImage, input.CoverImage)
		if err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if newHash != "" {
		if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
			return nil, err
		}
		user.Password = newHash
	}
	return s.enrich(ctx, user)
}

// replaceImage uploads the new payload first, then best-effort deletes the
// old object so a failed upload never loses the existing image.
func (s *UserService) replaceImage(ctx context.Context, oldRef string, data []byte) (string, error) {
	ref, err := s.media.Upload(ctx, data)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if oldRef != "" {
		if err := s.media.Delete(ctx, oldRef); err != nil {
			middleware.Logger.Warn("orphaned media object", "ref", oldRef, "error", err)
		}
	}
	return ref, nil
}

// enrich fills the user's graph and like views from their source tables.
func (s *UserService) enrich(ctx context.Context, user *models.User) (*models.User, error) {
	var err error
	if user.FollowerIDs, err = s.follows.FollowerIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	if user.FollowingIDs, err = s.follows.FollowingIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	if user.LikedPostIDs, err = s.posts.LikedPostIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}
