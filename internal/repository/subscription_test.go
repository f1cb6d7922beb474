package repository

import (
	"context"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_CreateAndExists(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewSubscriptionRepository(testDB)

	follower := createTestUser(t, "follower")
	author := createTestUser(t, "author")

	sub, err := repo.Create(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "author", sub.Author.Username)

	exists, err := repo.Exists(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Create(ctx, follower.ID, author.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestSubscriptionRepository_Delete(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewSubscriptionRepository(testDB)

	follower := createTestUser(t, "follower")
	author := createTestUser(t, "author")

	_, err := repo.Create(ctx, follower.ID, author.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, follower.ID, author.ID))

	err = repo.Delete(ctx, follower.ID, author.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestSubscriptionRepository_ListByUser(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewSubscriptionRepository(testDB)

	follower := createTestUser(t, "follower")
	alpha := createTestUser(t, "alpha")
	beta := createTestUser(t, "beta")

	_, err := repo.Create(ctx, follower.ID, alpha.ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, follower.ID, beta.ID)
	require.NoError(t, err)

	subs, err := repo.ListByUser(ctx, follower.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "alpha", subs[0].Author.Username)
	assert.Equal(t, "beta", subs[1].Author.Username)

	page, err := repo.ListByUser(ctx, follower.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "beta", page[0].Author.Username)
}

func TestSubscriptionRepository_RecipePreviewAndCount(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewSubscriptionRepository(testDB)

	author := createTestUser(t, "author")
	flour := createTestIngredient(t, "flour", "g")
	for _, name := range []string{"One", "Two", "Three"} {
		createTestRecipe(t, author, name,
			[]models.IngredientLine{{IngredientID: flour.ID, Amount: 1}}, nil)
	}

	count, err := repo.CountRecipes(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	preview, err := repo.RecipePreview(ctx, author.ID, 2)
	require.NoError(t, err)
	require.Len(t, preview, 2, "preview honors the limit")
	for _, item := range preview {
		assert.NotZero(t, item.ID)
		assert.NotEmpty(t, item.Name)
	}

	full, err := repo.RecipePreview(ctx, author.ID, 0)
	require.NoError(t, err)
	assert.Len(t, full, 3, "zero limit means no cap")
}
