package repository

import (
	"context"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// CartRepository aggregates shopping cart contents for export.
type CartRepository interface {
	Aggregate(ctx context.Context, userID uint) ([]models.CartItem, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Aggregate joins the user's purchases through recipes to ingredient
// lines, groups by (ingredient, unit) and sums the amounts. Rows are
// ordered by ingredient name so exports are reproducible.
func (r *cartRepository) Aggregate(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Model(&models.IngredientLine{}).
		Select("ingredients.name as ingredient_name, units.name as measurement_unit, SUM(ingredient_lines.amount) as total").
		Joins("JOIN purchases ON purchases.recipe_id = ingredient_lines.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = ingredient_lines.ingredient_id").
		Joins("JOIN units ON units.id = ingredients.unit_id").
		Where("purchases.user_id = ?", userID).
		Group("ingredients.name, units.name").
		Order("ingredients.name").
		Scan(&items).Error
	return items, err
}
