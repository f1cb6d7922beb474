package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/models"
	"forkful/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	testDB     *gorm.DB
	testRedis  *miniredis.Miniredis
	testServer *Server
	testApp    *fiber.App
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Setenv("DB_DRIVER", "sqlite")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Server tests skipped: failed to load test config: %v", err)
		os.Exit(0)
	}

	testDB, err = database.Connect(cfg)
	if err != nil {
		log.Printf("Server tests skipped: test database unavailable: %v", err)
		os.Exit(0)
	}

	testRedis, err = miniredis.Run()
	if err != nil {
		log.Printf("Server tests skipped: miniredis unavailable: %v", err)
		os.Exit(0)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: testRedis.Addr()})

	// Metric registration is process-global, so the server is built once
	// and shared across the package run.
	testServer, err = NewServerWithDeps(cfg, testDB, redisClient)
	if err != nil {
		log.Printf("Server tests skipped: server setup failed: %v", err)
		os.Exit(0)
	}

	testApp = fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	testServer.SetupRoutes(testApp)

	code := m.Run()

	testRedis.Close()
	os.Exit(code)
}

// resetState clears the database and Redis between tests.
func resetState(t *testing.T) {
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
	testRedis.FlushAll()
}

const testPassword = "Str0ngPass!"

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func createAccount(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  string(hash),
		IsActive:  true,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := testServer.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return token
}

func createRecipeFor(t *testing.T, author *models.User, name string, tags []models.Tag) *models.Recipe {
	t.Helper()
	flour, _, err := repository.NewIngredientRepository(testDB).GetOrCreate(context.Background(), "flour", "g")
	require.NoError(t, err)
	lines := []models.IngredientLine{{IngredientID: flour.ID, Amount: 100}}
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "img.png",
		Text:        "text",
		CookingTime: 15,
	}
	require.NoError(t, repository.NewRecipeRepository(testDB).Create(context.Background(), recipe, lines, tags))
	return recipe
}

func doRequest(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := testApp.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
