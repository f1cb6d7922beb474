package server

import (
	"forkful/internal/models"
	"forkful/internal/repository"
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRecipes handles GET /api/recipes
//
// Filters: repeatable ?tags= slug, ?author= id, ?is_favorited=1,
// ?is_in_shopping_cart=1, plus limit/offset pagination. A query without
// tags and without the shopping cart filter yields an empty list.
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	p := parsePagination(c, 6)
	currentUserID, _ := s.optionalUserID(c)

	filter := repository.RecipeListFilter{
		Limit:  p.Limit,
		Offset: p.Offset,
	}

	// Repeatable tags param: ?tags=breakfast&tags=dinner
	args := c.Context().QueryArgs()
	args.VisitAll(func(key, value []byte) {
		if string(key) == "tags" && len(value) > 0 {
			filter.TagSlugs = append(filter.TagSlugs, string(value))
		}
	})

	if author := c.QueryInt("author", 0); author > 0 {
		filter.AuthorID = uint(author)
	}

	if c.Query("is_favorited") == "1" {
		if currentUserID == 0 {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}
		filter.Favorited = true
	}
	if c.Query("is_in_shopping_cart") == "1" {
		if currentUserID == 0 {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}
		filter.InCart = true
	}

	recipes, err := s.recipeService.ListRecipes(c.Context(), filter, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recipes)
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	recipe, err := s.recipeService.GetRecipe(c.Context(), id, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recipe)
}

type recipePayload struct {
	Name        *string                    `json:"name"`
	Image       *string                    `json:"image"`
	Text        *string                    `json:"text"`
	CookingTime *int                       `json:"cooking_time"`
	Ingredients *[]service.IngredientInput `json:"ingredients"`
	Tags        *[]int                     `json:"tags"`
}

// CreateRecipe handles POST /api/recipes
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req recipePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateRecipeInput{AuthorID: userID}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Image != nil {
		in.Image = *req.Image
	}
	if req.Text != nil {
		in.Text = *req.Text
	}
	if req.CookingTime != nil {
		in.CookingTime = *req.CookingTime
	}
	if req.Ingredients != nil {
		in.Ingredients = *req.Ingredients
	}
	if req.Tags != nil {
		in.Tags = *req.Tags
	}

	recipe, err := s.recipeService.CreateRecipe(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// UpdateRecipe handles PATCH /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req recipePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(c.Context(), service.UpdateRecipeInput{
		UserID:      userID,
		RecipeID:    id,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Ingredients: req.Ingredients,
		Tags:        req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.DeleteRecipe(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
