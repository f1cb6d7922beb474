package service

import (
	"context"
	"fmt"
	"time"

	"forkful/internal/models"
	"forkful/internal/observability"
	"forkful/internal/repository"
)

// ShoppingListRenderer turns an aggregated shopping list into a
// downloadable document.
type ShoppingListRenderer interface {
	Render(items []models.CartItem) ([]byte, error)
}

// CartService aggregates a user's shopping cart into one ingredient
// list and renders it as a PDF.
type CartService struct {
	cartRepo repository.CartRepository
	userRepo repository.UserRepository
	renderer ShoppingListRenderer
}

// NewCartService creates a new cart service
func NewCartService(cartRepo repository.CartRepository, userRepo repository.UserRepository, renderer ShoppingListRenderer) *CartService {
	return &CartService{cartRepo: cartRepo, userRepo: userRepo, renderer: renderer}
}

// ShoppingList returns the user's cart aggregated per
// (ingredient, unit), amounts summed, ordered by ingredient name.
func (s *CartService) ShoppingList(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.cartRepo.Aggregate(ctx, userID)
}

// DownloadShoppingCart renders the aggregated cart as a PDF and returns
// the document with its download filename. An empty cart is a client
// error, not an empty document.
func (s *CartService) DownloadShoppingCart(ctx context.Context, userID uint) ([]byte, string, error) {
	items, err := s.cartRepo.Aggregate(ctx, userID)
	if err != nil {
		observability.CartExports.WithLabelValues("error").Inc()
		return nil, "", err
	}
	if len(items) == 0 {
		observability.CartExports.WithLabelValues("empty").Inc()
		return nil, "", models.NewValidationError("Shopping cart is empty")
	}

	user, err := s.userRepo.GetByID(ctx, userID, 0)
	if err != nil {
		observability.CartExports.WithLabelValues("error").Inc()
		return nil, "", err
	}

	start := time.Now()
	doc, err := s.renderer.Render(items)
	observability.PDFRenderSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.CartExports.WithLabelValues("error").Inc()
		return nil, "", fmt.Errorf("rendering shopping list: %w", err)
	}

	observability.CartExports.WithLabelValues("ok").Inc()
	return doc, fmt.Sprintf("%sShoppingCart.pdf", user.Username), nil
}
