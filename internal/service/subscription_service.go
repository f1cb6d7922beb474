package service

import (
	"context"
	"strconv"

	"forkful/internal/models"
	"forkful/internal/repository"
)

// SubscriptionView is the enriched author entry returned by
// subscription endpoints: author profile plus a recipe preview and the
// author's total recipe count.
type SubscriptionView struct {
	Email        string               `json:"email"`
	ID           uint                 `json:"id"`
	Username     string               `json:"username"`
	FirstName    string               `json:"first_name"`
	LastName     string               `json:"last_name"`
	IsSubscribed bool                 `json:"is_subscribed"`
	Recipes      []models.RecipeShort `json:"recipes"`
	RecipesCount int64                `json:"recipes_count"`
}

// SubscriptionService manages user-to-author subscriptions.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo, userRepo: userRepo}
}

// ParseRecipesLimit parses the recipes_limit query value. A non-integer
// value fails validation rather than being ignored; an empty value
// means no limit.
func ParseRecipesLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError("recipes_limit must be an integer")
	}
	if limit < 0 {
		return 0, models.NewValidationError("recipes_limit must not be negative")
	}
	return limit, nil
}

func (s *SubscriptionService) view(ctx context.Context, author *models.User, recipesLimit int) (*SubscriptionView, error) {
	recipes, err := s.subscriptionRepo.RecipePreview(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.subscriptionRepo.CountRecipes(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	return &SubscriptionView{
		Email:        author.Email,
		ID:           author.ID,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}

// Subscribe subscribes userID to authorID. Self-subscription and
// duplicate subscription are rejected.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*SubscriptionView, error) {
	if userID == authorID {
		return nil, models.NewValidationError("Cannot subscribe to yourself")
	}
	author, err := s.userRepo.GetByID(ctx, authorID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.subscriptionRepo.Create(ctx, userID, authorID); err != nil {
		return nil, err
	}
	return s.view(ctx, author, recipesLimit)
}

// Unsubscribe removes the subscription of userID to authorID.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if _, err := s.userRepo.GetByID(ctx, authorID, userID); err != nil {
		return err
	}
	return s.subscriptionRepo.Delete(ctx, userID, authorID)
}

// List returns the authors userID follows, each with a recipe preview.
func (s *SubscriptionService) List(ctx context.Context, userID uint, limit, offset, recipesLimit int) ([]*SubscriptionView, error) {
	subscriptions, err := s.subscriptionRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]*SubscriptionView, 0, len(subscriptions))
	for _, sub := range subscriptions {
		v, err := s.view(ctx, &sub.Author, recipesLimit)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
