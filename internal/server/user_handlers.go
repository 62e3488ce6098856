package server

import (
	"encoding/base64"
	"strings"

	"tweetnest/internal/models"
	"tweetnest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	user, err := s.userService.GetProfile(c.Context(), username)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetSuggestedUsers handles GET /api/users/suggested
func (s *Server) GetSuggestedUsers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	suggested, err := s.userService.SuggestedUsers(c.Context(), userID)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(suggested)
}

// FollowToggle handles POST /api/users/follow/:id
func (s *Server) FollowToggle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.graphService.ToggleFollow(c.Context(), userID, targetID)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	message := "User unfollowed successfully"
	if following {
		message = "User followed successfully"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   message,
		"following": following,
	})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		FullName        *string `json:"fullname"`
		Email           *string `json:"email"`
		Bio             *string `json:"bio"`
		Link            *string `json:"link"`
		CurrentPassword string  `json:"current_password"`
		NewPassword     string  `json:"new_password"`
		ProfileImage    string  `json:"profile_image"`
		CoverImage      string  `json:"cover_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profileImage, err := decodeImagePayload(req.ProfileImage)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid profile image encoding"))
	}
	coverImage, err := decodeImagePayload(req.CoverImage)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid cover image encoding"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, service.UpdateProfileInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Bio:             req.Bio,
		Link:            req.Link,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ProfileImage:    profileImage,
		CoverImage:      coverImage,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// decodeImagePayload decodes a base64 image, accepting both bare base64 and
// data URLs ("data:image/png;base64,...."). An empty payload means no image.
func decodeImagePayload(payload string) ([]byte, error) {
	if payload == "" {
		return nil, nil
	}
	if i := strings.Index(payload, ","); i >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}
