package repository

import (
	"context"
	"errors"

	"forkful/internal/cache"
	"forkful/internal/models"

	"gorm.io/gorm"
)

// RecipeListFilter captures the supported recipe list query parameters.
type RecipeListFilter struct {
	TagSlugs  []string
	AuthorID  uint
	Favorited bool
	InCart    bool
	Limit     int
	Offset    int
}

// RecipeRepository defines the interface for recipe data operations.
// Create and Update run all of their writes inside one transaction: a
// reader never observes a recipe without its lines or with a partial tag
// set.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe, lines []models.IngredientLine, tags []models.Tag) error
	Update(ctx context.Context, recipe *models.Recipe, lines []models.IngredientLine, tags []models.Tag, replaceLines, replaceTags bool) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeListFilter, currentUserID uint) ([]*models.Recipe, error)
	Delete(ctx context.Context, id uint) error
	Favorite(ctx context.Context, userID, recipeID uint) error
	Unfavorite(ctx context.Context, userID, recipeID uint) error
	AddToCart(ctx context.Context, userID, recipeID uint) error
	RemoveFromCart(ctx context.Context, userID, recipeID uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// applyRecipeFlags adds the per-viewer EXISTS subqueries in a single query.
// Anonymous viewers always read false for both flags.
func (r *recipeRepository) applyRecipeFlags(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select(
			"recipes.*, "+
				"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) as is_favorited, "+
				"EXISTS(SELECT 1 FROM purchases WHERE purchases.recipe_id = recipes.id AND purchases.user_id = ?) as is_in_shopping_cart",
			currentUserID, currentUserID,
		)
	}
	return db.Select("recipes.*, false as is_favorited, false as is_in_shopping_cart")
}

// preloadLineNames flattens ingredient and unit names into each line.
func preloadLineNames(db *gorm.DB) *gorm.DB {
	return db.
		Select("ingredient_lines.*, ingredients.name as name, units.name as measurement_unit").
		Joins("JOIN ingredients ON ingredients.id = ingredient_lines.ingredient_id").
		Joins("JOIN units ON units.id = ingredients.unit_id")
}

func (r *recipeRepository) preloadRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients", preloadLineNames)
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, lines []models.IngredientLine, tags []models.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Create(recipe).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			for i := range lines {
				lines[i].RecipeID = recipe.ID
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return tx.Model(recipe).Association("Tags").Replace(&tags)
	})
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, lines []models.IngredientLine, tags []models.Tag, replaceLines, replaceTags bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author", "PubDate").Save(recipe).Error; err != nil {
			return err
		}
		if replaceLines {
			// Lines are replaced wholesale, never patched.
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientLine{}).Error; err != nil {
				return err
			}
			if len(lines) > 0 {
				for i := range lines {
					lines[i].ID = 0
					lines[i].RecipeID = recipe.ID
				}
				if err := tx.Create(&lines).Error; err != nil {
					return err
				}
			}
		}
		if replaceTags {
			if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		cache.InvalidateRecipe(ctx, recipe.ID)
	}
	return err
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	var recipe models.Recipe

	fetch := func() error {
		return r.preloadRelations(
			r.applyRecipeFlags(r.db.WithContext(ctx), currentUserID),
		).First(&recipe, id).Error
	}

	var err error
	if currentUserID == 0 {
		// Anonymous detail views carry no per-viewer flags, so they are
		// safe to share through the cache.
		err = cache.Aside(ctx, cache.RecipeKey(id), &recipe, cache.RecipeTTL, fetch)
	} else {
		err = fetch()
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeListFilter, currentUserID uint) ([]*models.Recipe, error) {
	var recipes []*models.Recipe

	query := r.preloadRelations(
		r.applyRecipeFlags(r.db.WithContext(ctx), currentUserID),
	)

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct()
	}
	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.Favorited && currentUserID != 0 {
		query = query.Where(
			"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)",
			currentUserID,
		)
	}
	if filter.InCart && currentUserID != 0 {
		query = query.Where(
			"EXISTS(SELECT 1 FROM purchases WHERE purchases.recipe_id = recipes.id AND purchases.user_id = ?)",
			currentUserID,
		)
	}

	err := query.
		Order("recipes.pub_date DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Purchase{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err == nil {
		cache.InvalidateRecipe(ctx, id)
	}
	return err
}

func (r *recipeRepository) Favorite(ctx context.Context, userID, recipeID uint) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return models.NewConflictError("Recipe is already favorited (user, recipe)")
	}
	return r.db.WithContext(ctx).Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
}

func (r *recipeRepository) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Favorite", recipeID)
	}
	return nil
}

func (r *recipeRepository) AddToCart(ctx context.Context, userID, recipeID uint) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return models.NewConflictError("Recipe is already in the shopping cart (user, recipe)")
	}
	return r.db.WithContext(ctx).Create(&models.Purchase{UserID: userID, RecipeID: recipeID}).Error
}

func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Purchase{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Purchase", recipeID)
	}
	return nil
}
