package server

import (
	"tweetnest/internal/models"
	"tweetnest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := decodeImagePayload(req.Image)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid image encoding"))
	}

	post, err := s.feedService.CreatePost(c.Context(), service.CreatePostInput{
		UserID: userID,
		Text:   req.Text,
		Image:  image,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.feedService.DeletePost(c.Context(), userID, postID); err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// LikeToggle handles POST /api/posts/:id/like
func (s *Server) LikeToggle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.engagementService.ToggleLike(c.Context(), userID, postID)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(likes)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comments, err := s.engagementService.AddComment(c.Context(), userID, postID, req.Text)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comments)
}

// GetAllPosts handles GET /api/posts/all
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, service.DefaultPageSize)

	posts, err := s.feedService.AllPosts(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetUserPosts handles GET /api/posts/user/:username
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}
	page := parsePagination(c, service.DefaultPageSize)

	posts, err := s.feedService.PostsByAuthorHandle(c.Context(), username, userID, page.Limit, page.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetFollowingPosts handles GET /api/posts/following
func (s *Server) GetFollowingPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, service.DefaultPageSize)

	posts, err := s.feedService.FollowingFeed(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetLikedPosts handles GET /api/posts/likes/:id
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	viewerID := c.Locals("userID").(uint)
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, service.DefaultPageSize)

	posts, err := s.feedService.PostsLikedBy(c.Context(), userID, viewerID, page.Limit, page.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}
