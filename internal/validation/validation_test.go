package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("chef.2024"))
	assert.NoError(t, ValidateUsername("user@name+tag-x_y"))

	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 151)))

	err := ValidateUsername("bad name!")
	require.Error(t, err)
	// Every restricted character is named once.
	assert.Contains(t, err.Error(), " ")
	assert.Contains(t, err.Error(), "!")
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.example.org"))

	for _, email := range []string{"", "plain", "missing@tld", "@example.com", "user@.com"} {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateHexColor(t *testing.T) {
	assert.NoError(t, ValidateHexColor("#E26C2D"))
	assert.NoError(t, ValidateHexColor("#fff"))

	for _, color := range []string{"", "E26C2D", "#12345", "#GGGGGG", "#1234567"} {
		assert.Error(t, ValidateHexColor(color), color)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Str0ngPass"))

	assert.Error(t, ValidatePassword("sh0rt"))
	assert.Error(t, ValidatePassword("lettersonly"))
	assert.Error(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword(strings.Repeat("a1", 65)))
}
