package repository

import (
	"context"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for subscription data operations
type SubscriptionRepository interface {
	Create(ctx context.Context, userID, authorID uint) (*models.Subscription, error)
	Delete(ctx context.Context, userID, authorID uint) error
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Subscription, error)
	CountRecipes(ctx context.Context, authorID uint) (int64, error)
	RecipePreview(ctx context.Context, authorID uint, limit int) ([]models.RecipeShort, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, userID, authorID uint) (*models.Subscription, error) {
	exists, err := r.Exists(ctx, userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("Subscription already exists (user, author)")
	}

	sub := &models.Subscription{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Preload("Author").First(sub, sub.ID).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, userID, authorID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Subscription", authorID)
	}
	return nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("user_id = ?", userID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepository) CountRecipes(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) RecipePreview(ctx context.Context, authorID uint, limit int) ([]models.RecipeShort, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Select("id, name, image, cooking_time").
		Where("author_id = ?", authorID).
		Order("pub_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var preview []models.RecipeShort
	err := query.Scan(&preview).Error
	return preview, err
}
