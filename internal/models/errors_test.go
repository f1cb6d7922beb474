package models

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Not found", NewNotFoundError("Recipe", 1), fiber.StatusNotFound},
		{"Validation", NewValidationError("bad"), fiber.StatusBadRequest},
		{"Conflict", NewConflictError("dup"), fiber.StatusBadRequest},
		{"Unauthorized", NewUnauthorizedError("no"), fiber.StatusUnauthorized},
		{"Forbidden", NewForbiddenError("no"), fiber.StatusForbidden},
		{"Internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"Plain error", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}

	t.Run("Field errors", func(t *testing.T) {
		fe := NewFieldErrors()
		fe.Add("name", "required")
		assert.Equal(t, fiber.StatusBadRequest, StatusForError(fe))
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("Tag", 3)))
	assert.False(t, IsNotFound(NewConflictError("dup")))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestFieldErrors(t *testing.T) {
	fe := NewFieldErrors()
	assert.False(t, fe.HasErrors())

	fe.Add("username", "required")
	fe.Addf("email", "must not exceed %d characters", 254)
	fe.Add("username", "contains restricted characters")

	assert.True(t, fe.HasErrors())
	assert.Len(t, fe.Fields()["username"], 2)
	// Field names are sorted in the message.
	assert.Equal(t, "validation failed: email, username", fe.Error())
}

func TestShortRecipe(t *testing.T) {
	short := ShortRecipe(&Recipe{
		ID:          9,
		Name:        "Pancakes",
		Image:       "img.png",
		Text:        "never serialized",
		CookingTime: 15,
	})
	assert.Equal(t, RecipeShort{ID: 9, Name: "Pancakes", Image: "img.png", CookingTime: 15}, short)
}
