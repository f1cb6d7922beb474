package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart
func (s *Server) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	doc, filename, err := s.cartService.DownloadShoppingCart(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(doc)
}
