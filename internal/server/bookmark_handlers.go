package server

import (
	"github.com/gofiber/fiber/v2"
)

// FavoriteRecipe handles POST /api/recipes/:id/favorite
func (s *Server) FavoriteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	short, err := s.recipeService.Favorite(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(short)
}

// UnfavoriteRecipe handles DELETE /api/recipes/:id/favorite
func (s *Server) UnfavoriteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.Unfavorite(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddRecipeToCart handles POST /api/recipes/:id/shopping_cart
func (s *Server) AddRecipeToCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	short, err := s.recipeService.AddToCart(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(short)
}

// RemoveRecipeFromCart handles DELETE /api/recipes/:id/shopping_cart
func (s *Server) RemoveRecipeFromCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.RemoveFromCart(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
