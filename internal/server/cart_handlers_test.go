package server

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadShoppingCart(t *testing.T) {
	resetState(t)
	user := createAccount(t, "chef")
	recipe := createRecipeFor(t, user, "Pancakes", nil)
	token := tokenFor(t, user)

	resp := doRequest(t, fiber.MethodPost, "/api/recipes/"+itoa(recipe.ID)+"/shopping_cart", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, fiber.MethodGet, "/api/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `inline; filename="chefShoppingCart.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))

	doc, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, len(doc) > 0)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestDownloadShoppingCart_EmptyCart(t *testing.T) {
	resetState(t)
	user := createAccount(t, "chef")

	resp := doRequest(t, fiber.MethodGet, "/api/recipes/download_shopping_cart", tokenFor(t, user), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "Shopping cart is empty", body["error"])
}

func TestDownloadShoppingCart_RequiresAuth(t *testing.T) {
	resetState(t)

	resp := doRequest(t, fiber.MethodGet, "/api/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
