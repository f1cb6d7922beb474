package repository

import (
	"context"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeRepository_CreateAndGetByID(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	author := createTestUser(t, "author")
	flour := createTestIngredient(t, "flour", "g")
	milk := createTestIngredient(t, "milk", "ml")
	breakfast := createTestTag(t, "Breakfast", "breakfast")

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Image:       "pancakes.png",
		Text:        "Mix and fry.",
		CookingTime: 15,
	}
	lines := []models.IngredientLine{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: milk.ID, Amount: 300},
	}
	require.NoError(t, repo.Create(ctx, recipe, lines, []models.Tag{*breakfast}))
	require.NotZero(t, recipe.ID)

	got, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Equal(t, author.ID, got.Author.ID)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "breakfast", got.Tags[0].Slug)
	require.Len(t, got.Ingredients, 2)

	// Flattened names come from the ingredient and unit joins.
	byName := map[string]models.IngredientLine{}
	for _, line := range got.Ingredients {
		byName[line.Name] = line
	}
	require.Contains(t, byName, "flour")
	assert.Equal(t, "g", byName["flour"].MeasurementUnit)
	assert.Equal(t, 200, byName["flour"].Amount)
}

func TestRecipeRepository_GetByID_NotFound(t *testing.T) {
	resetTables(t)
	repo := NewRecipeRepository(testDB)

	_, err := repo.GetByID(context.Background(), 424242, 0)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestRecipeRepository_ViewerFlags(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	author := createTestUser(t, "author")
	viewer := createTestUser(t, "viewer")
	flour := createTestIngredient(t, "flour", "g")
	recipe := createTestRecipe(t, author, "Bread",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 500}}, nil)

	require.NoError(t, repo.Favorite(ctx, viewer.ID, recipe.ID))

	got, err := repo.GetByID(ctx, recipe.ID, viewer.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorited)
	assert.False(t, got.IsInShoppingCart)

	// Another viewer reads independent flags.
	got, err = repo.GetByID(ctx, recipe.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFavorited)
}

func TestRecipeRepository_Update_ReplacesLinesWholesale(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	author := createTestUser(t, "author")
	flour := createTestIngredient(t, "flour", "g")
	sugar := createTestIngredient(t, "sugar", "g")
	recipe := createTestRecipe(t, author, "Cake",
		[]models.IngredientLine{
			{IngredientID: flour.ID, Amount: 100},
			{IngredientID: sugar.ID, Amount: 50},
		}, nil)

	update := &models.Recipe{
		ID:          recipe.ID,
		AuthorID:    author.ID,
		Name:        "Cake v2",
		Image:       "img.png",
		Text:        "text",
		CookingTime: 20,
	}
	newLines := []models.IngredientLine{{IngredientID: sugar.ID, Amount: 75}}
	require.NoError(t, repo.Update(ctx, update, newLines, nil, true, false))

	got, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Cake v2", got.Name)
	require.Len(t, got.Ingredients, 1, "old lines must be gone")
	assert.Equal(t, "sugar", got.Ingredients[0].Name)
	assert.Equal(t, 75, got.Ingredients[0].Amount)

	var lineCount int64
	require.NoError(t, testDB.Model(&models.IngredientLine{}).Count(&lineCount).Error)
	assert.Equal(t, int64(1), lineCount, "no orphan lines may remain")
}

func TestRecipeRepository_Update_UntouchedAssociationsSurvive(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	author := createTestUser(t, "author")
	flour := createTestIngredient(t, "flour", "g")
	breakfast := createTestTag(t, "Breakfast", "breakfast")
	recipe := createTestRecipe(t, author, "Toast",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 10}},
		[]models.Tag{*breakfast})

	update := &models.Recipe{
		ID:          recipe.ID,
		AuthorID:    author.ID,
		Name:        "Toast deluxe",
		Image:       "img.png",
		Text:        "text",
		CookingTime: 5,
	}
	require.NoError(t, repo.Update(ctx, update, nil, nil, false, false))

	got, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Toast deluxe", got.Name)
	require.Len(t, got.Ingredients, 1)
	require.Len(t, got.Tags, 1)
}

func TestRecipeRepository_Update_ReplacesTagSet(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	author := createTestUser(t, "author")
	flour := createTestIngredient(t, "flour", "g")
	breakfast := createTestTag(t, "Breakfast", "breakfast")
	dinner := createTestTag(t, "Dinner", "dinner")
	recipe := createTestRecipe(t, author, "Omelette",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 10}},
		[]models.Tag{*breakfast})

	update := &models.Recipe{
		ID:          recipe.ID,
		AuthorID:    author.ID,
		Name:        "Omelette",
		Image:       "img.png",
		Text:        "text",
		CookingTime: 10,
	}
	require.NoError(t, repo.Update(ctx, update, nil, []models.Tag{*dinner}, false, true))

	got, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "dinner", got.Tags[0].Slug)
}

func TestRecipeRepository_List_TagFilterAndOrdering(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	author := createTestUser(t, "author")
	flour := createTestIngredient(t, "flour", "g")
	breakfast := createTestTag(t, "Breakfast", "breakfast")
	dinner := createTestTag(t, "Dinner", "dinner")

	first := createTestRecipe(t, author, "First",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 1}},
		[]models.Tag{*breakfast})
	second := createTestRecipe(t, author, "Second",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 1}},
		[]models.Tag{*breakfast, *dinner})
	createTestRecipe(t, author, "Untagged",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 1}}, nil)

	recipes, err := repo.List(ctx, RecipeListFilter{
		TagSlugs: []string{"breakfast", "dinner"},
		Limit:    10,
	}, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 2, "multi-tag matches must not duplicate")

	ids := []uint{recipes[0].ID, recipes[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestRecipeRepository_List_AuthorAndFavoritedFilters(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	flour := createTestIngredient(t, "flour", "g")
	breakfast := createTestTag(t, "Breakfast", "breakfast")

	aliceRecipe := createTestRecipe(t, alice, "Alice dish",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 1}},
		[]models.Tag{*breakfast})
	createTestRecipe(t, bob, "Bob dish",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 1}},
		[]models.Tag{*breakfast})

	recipes, err := repo.List(ctx, RecipeListFilter{
		TagSlugs: []string{"breakfast"},
		AuthorID: alice.ID,
		Limit:    10,
	}, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, aliceRecipe.ID, recipes[0].ID)

	require.NoError(t, repo.Favorite(ctx, bob.ID, aliceRecipe.ID))
	recipes, err = repo.List(ctx, RecipeListFilter{
		TagSlugs:  []string{"breakfast"},
		Favorited: true,
		Limit:     10,
	}, bob.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, aliceRecipe.ID, recipes[0].ID)
	assert.True(t, recipes[0].IsFavorited)
}

func TestRecipeRepository_FavoriteTwiceIsConflict(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	author := createTestUser(t, "author")
	flour := createTestIngredient(t, "flour", "g")
	recipe := createTestRecipe(t, author, "Dish",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 1}}, nil)

	require.NoError(t, repo.Favorite(ctx, author.ID, recipe.ID))

	err := repo.Favorite(ctx, author.ID, recipe.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestRecipeRepository_CartToggles(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	user := createTestUser(t, "user")
	flour := createTestIngredient(t, "flour", "g")
	recipe := createTestRecipe(t, user, "Dish",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 1}}, nil)

	require.NoError(t, repo.AddToCart(ctx, user.ID, recipe.ID))

	err := repo.AddToCart(ctx, user.ID, recipe.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)

	require.NoError(t, repo.RemoveFromCart(ctx, user.ID, recipe.ID))
	err = repo.RemoveFromCart(ctx, user.ID, recipe.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestRecipeRepository_Delete_RemovesDependents(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewRecipeRepository(testDB)

	user := createTestUser(t, "user")
	flour := createTestIngredient(t, "flour", "g")
	breakfast := createTestTag(t, "Breakfast", "breakfast")
	recipe := createTestRecipe(t, user, "Dish",
		[]models.IngredientLine{{IngredientID: flour.ID, Amount: 1}},
		[]models.Tag{*breakfast})

	require.NoError(t, repo.Favorite(ctx, user.ID, recipe.ID))
	require.NoError(t, repo.AddToCart(ctx, user.ID, recipe.ID))

	require.NoError(t, repo.Delete(ctx, recipe.ID))

	_, err := repo.GetByID(ctx, recipe.ID, 0)
	assert.True(t, models.IsNotFound(err))

	var lines, favorites, purchases int64
	require.NoError(t, testDB.Model(&models.IngredientLine{}).Count(&lines).Error)
	require.NoError(t, testDB.Model(&models.Favorite{}).Count(&favorites).Error)
	require.NoError(t, testDB.Model(&models.Purchase{}).Count(&purchases).Error)
	assert.Zero(t, lines)
	assert.Zero(t, favorites)
	assert.Zero(t, purchases)
}
