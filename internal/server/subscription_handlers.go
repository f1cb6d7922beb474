package server

import (
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSubscriptions handles GET /api/users/subscriptions
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 10)

	recipesLimit, err := service.ParseRecipesLimit(c.Query("recipes_limit"))
	if err != nil {
		return respondServiceError(c, err)
	}

	views, err := s.subscriptionService.List(c.Context(), userID, p.Limit, p.Offset, recipesLimit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(views)
}

// Subscribe handles POST /api/users/:id/subscribe
func (s *Server) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipesLimit, err := service.ParseRecipesLimit(c.Query("recipes_limit"))
	if err != nil {
		return respondServiceError(c, err)
	}

	view, err := s.subscriptionService.Subscribe(c.Context(), userID, authorID, recipesLimit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.subscriptionService.Unsubscribe(c.Context(), userID, authorID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
