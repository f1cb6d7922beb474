package repository

import (
	"context"
	"log"
	"os"
	"testing"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Setenv("DB_DRIVER", "sqlite")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Repository tests skipped: failed to load test config: %v", err)
		os.Exit(0)
	}

	testDB, err = database.Connect(cfg)
	if err != nil {
		log.Printf("Repository tests skipped: test database unavailable: %v", err)
		os.Exit(0)
	}

	os.Exit(m.Run())
}

// resetTables clears every table between tests, keeping the shared
// in-memory database usable across the whole package run.
func resetTables(t *testing.T) {
	t.Helper()
	for _, stmt := range []string{
		"DELETE FROM recipe_tags",
		"DELETE FROM ingredient_lines",
		"DELETE FROM favorites",
		"DELETE FROM purchases",
		"DELETE FROM subscriptions",
		"DELETE FROM recipes",
		"DELETE FROM tags",
		"DELETE FROM ingredients",
		"DELETE FROM units",
		"DELETE FROM users",
	} {
		require.NoError(t, testDB.Exec(stmt).Error)
	}
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  "x",
		IsActive:  true,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createTestIngredient(t *testing.T, name, unitName string) *models.Ingredient {
	t.Helper()
	ingredient, _, err := NewIngredientRepository(testDB).GetOrCreate(context.Background(), name, unitName)
	require.NoError(t, err)
	return ingredient
}

func createTestTag(t *testing.T, name, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: "#49B64E", Slug: slug}
	require.NoError(t, testDB.Create(tag).Error)
	return tag
}

func createTestRecipe(t *testing.T, author *models.User, name string, lines []models.IngredientLine, tags []models.Tag) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "img.png",
		Text:        "text",
		CookingTime: 10,
	}
	require.NoError(t, NewRecipeRepository(testDB).Create(context.Background(), recipe, lines, tags))
	return recipe
}
