// Package service implements the application's business operations on top
// of the repository layer.
package service

import (
	"context"

	"forkful/internal/middleware"
	"forkful/internal/models"
	"forkful/internal/observability"
	"forkful/internal/repository"
)

// RecipeService owns the nested recipe persistence operation: validation,
// eager reference resolution and the transactional write.
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
	isStaff        func(ctx context.Context, userID uint) (bool, error)
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	tagRepo repository.TagRepository,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
		isStaff:        isStaff,
	}
}

// IngredientInput is one (ingredient id, amount) pair in a recipe payload.
type IngredientInput struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

// CreateRecipeInput carries a validated-shape create payload.
type CreateRecipeInput struct {
	AuthorID    uint
	Name        string
	Image       string
	Text        string
	CookingTime int
	Ingredients []IngredientInput
	Tags        []int
}

// UpdateRecipeInput carries a partial update payload. Nil fields are left
// untouched on the existing recipe.
type UpdateRecipeInput struct {
	UserID      uint
	RecipeID    uint
	Name        *string
	Image       *string
	Text        *string
	CookingTime *int
	Ingredients *[]IngredientInput
	Tags        *[]int
}

// validateIngredients collects every structural problem with an
// ingredient list into fe instead of stopping at the first.
func validateIngredients(fe *models.FieldErrors, ingredients []IngredientInput) {
	if len(ingredients) == 0 {
		fe.Add("ingredients", "Ingredient list cannot be empty")
		return
	}
	seen := make(map[int]struct{}, len(ingredients))
	for _, ing := range ingredients {
		if ing.ID < 1 {
			fe.Addf("ingredients", "Ingredient id must be a positive integer, got %d", ing.ID)
			continue
		}
		if _, dup := seen[ing.ID]; dup {
			fe.Addf("ingredients", "Duplicate ingredient id %d", ing.ID)
		}
		seen[ing.ID] = struct{}{}
		if ing.Amount < 1 {
			fe.Addf("ingredients", "Amount for ingredient %d must be at least 1", ing.ID)
		}
	}
}

func validateTags(fe *models.FieldErrors, tags []int) {
	if len(tags) == 0 {
		fe.Add("tags", "Tag list cannot be empty")
		return
	}
	for _, id := range tags {
		if id < 1 {
			fe.Addf("tags", "Tag id must be a positive integer, got %d", id)
		}
	}
}

func validateCookingTime(fe *models.FieldErrors, cookingTime int) {
	if cookingTime < 1 {
		fe.Add("cooking_time", "Cooking time must be at least 1")
	}
}

// resolveReferences loads every referenced ingredient and tag eagerly.
// Any unresolved reference fails the whole operation with a not-found
// error before a single row is written.
func (s *RecipeService) resolveReferences(ctx context.Context, ingredients []IngredientInput, tags []int) ([]models.IngredientLine, []models.Tag, error) {
	ingredientIDs := make([]uint, len(ingredients))
	for i, ing := range ingredients {
		ingredientIDs[i] = uint(ing.ID)
	}
	if _, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs); err != nil {
		return nil, nil, err
	}

	lines := make([]models.IngredientLine, len(ingredients))
	for i, ing := range ingredients {
		lines[i] = models.IngredientLine{
			IngredientID: uint(ing.ID),
			Amount:       ing.Amount,
		}
	}

	tagIDs := make([]uint, len(tags))
	for i, id := range tags {
		tagIDs[i] = uint(id)
	}
	resolved, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}

	return lines, resolved, nil
}

// CreateRecipe validates the payload, resolves references and persists
// the recipe with its lines and tag set in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	fe := models.NewFieldErrors()
	if in.Name == "" {
		fe.Add("name", "Name is required")
	}
	if len(in.Name) > 200 {
		fe.Add("name", "Name too long (max 200 characters)")
	}
	if in.Text == "" {
		fe.Add("text", "Text is required")
	}
	if in.Image == "" {
		fe.Add("image", "Image is required")
	}
	validateCookingTime(fe, in.CookingTime)
	validateIngredients(fe, in.Ingredients)
	validateTags(fe, in.Tags)
	if fe.HasErrors() {
		return nil, fe
	}

	lines, tags, err := s.resolveReferences(ctx, in.Ingredients, in.Tags)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    in.AuthorID,
		Name:        in.Name,
		Image:       in.Image,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	if err := s.recipeRepo.Create(ctx, recipe, lines, tags); err != nil {
		return nil, err
	}
	observability.RecipeWrites.WithLabelValues("create").Inc()
	middleware.Logger.InfoContext(ctx, "recipe created",
		"recipe_id", recipe.ID,
		"recipe", models.Label(recipe.Name),
		"author_id", in.AuthorID,
	)

	return s.recipeRepo.GetByID(ctx, recipe.ID, in.AuthorID)
}

// UpdateRecipe applies a partial update. A present ingredient list
// replaces every existing line; a present tag list replaces the whole
// tag set; absent fields are untouched. Only the author or staff may
// update a recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeWrite(ctx, recipe, in.UserID); err != nil {
		return nil, err
	}

	fe := models.NewFieldErrors()
	if in.Name != nil {
		if *in.Name == "" {
			fe.Add("name", "Name cannot be blank")
		}
		if len(*in.Name) > 200 {
			fe.Add("name", "Name too long (max 200 characters)")
		}
	}
	if in.Text != nil && *in.Text == "" {
		fe.Add("text", "Text cannot be blank")
	}
	if in.CookingTime != nil {
		validateCookingTime(fe, *in.CookingTime)
	}
	if in.Ingredients != nil {
		validateIngredients(fe, *in.Ingredients)
	}
	if in.Tags != nil {
		validateTags(fe, *in.Tags)
	}
	if fe.HasErrors() {
		return nil, fe
	}

	var lines []models.IngredientLine
	var tags []models.Tag
	replaceLines := in.Ingredients != nil
	replaceTags := in.Tags != nil

	if replaceLines || replaceTags {
		resolveIngredients := []IngredientInput{}
		if replaceLines {
			resolveIngredients = *in.Ingredients
		}
		resolveTags := []int{}
		if replaceTags {
			resolveTags = *in.Tags
		}
		lines, tags, err = s.resolveReferences(ctx, resolveIngredients, resolveTags)
		if err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		recipe.Name = *in.Name
	}
	if in.Image != nil {
		recipe.Image = *in.Image
	}
	if in.Text != nil {
		recipe.Text = *in.Text
	}
	if in.CookingTime != nil {
		recipe.CookingTime = *in.CookingTime
	}

	// Saved associations are managed inside the repository transaction.
	recipe.Tags = nil
	recipe.Ingredients = nil

	if err := s.recipeRepo.Update(ctx, recipe, lines, tags, replaceLines, replaceTags); err != nil {
		return nil, err
	}
	observability.RecipeWrites.WithLabelValues("update").Inc()

	return s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
}

// DeleteRecipe removes a recipe and its dependents. Only the author or
// staff may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if err := s.authorizeWrite(ctx, recipe, userID); err != nil {
		return err
	}
	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return err
	}
	observability.RecipeWrites.WithLabelValues("delete").Inc()
	return nil
}

func (s *RecipeService) authorizeWrite(ctx context.Context, recipe *models.Recipe, userID uint) error {
	if recipe.AuthorID == userID {
		return nil
	}
	if s.isStaff != nil {
		staff, err := s.isStaff(ctx, userID)
		if err != nil {
			return err
		}
		if staff {
			return nil
		}
	}
	return models.NewForbiddenError("Only the author or staff may modify this recipe")
}

// Favorite bookmarks the recipe for the user. A duplicate bookmark is a
// uniqueness violation, not an idempotent no-op.
func (s *RecipeService) Favorite(ctx context.Context, userID, recipeID uint) (*models.RecipeShort, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Favorite(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	short := models.ShortRecipe(recipe)
	return &short, nil
}

// Unfavorite removes the user's bookmark of the recipe.
func (s *RecipeService) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepo.Unfavorite(ctx, userID, recipeID)
}

// AddToCart queues the recipe in the user's shopping cart.
func (s *RecipeService) AddToCart(ctx context.Context, userID, recipeID uint) (*models.RecipeShort, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.AddToCart(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	short := models.ShortRecipe(recipe)
	return &short, nil
}

// RemoveFromCart removes the recipe from the user's shopping cart.
func (s *RecipeService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepo.RemoveFromCart(ctx, userID, recipeID)
}

// ListRecipes applies the list filters. A list query that carries
// neither tag slugs nor the shopping cart filter returns an empty set;
// fully-open browsing is intentionally disabled.
func (s *RecipeService) ListRecipes(ctx context.Context, filter repository.RecipeListFilter, currentUserID uint) ([]*models.Recipe, error) {
	if len(filter.TagSlugs) == 0 && !filter.InCart {
		return []*models.Recipe{}, nil
	}
	return s.recipeRepo.List(ctx, filter, currentUserID)
}

// GetRecipe returns one recipe with relations and per-viewer flags.
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID, currentUserID uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, recipeID, currentUserID)
}
