package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ingredientRepoStub struct {
	existing map[string]bool
	calls    []string
}

func newIngredientRepoStub(existing ...string) *ingredientRepoStub {
	stub := &ingredientRepoStub{existing: map[string]bool{}}
	for _, key := range existing {
		stub.existing[key] = true
	}
	return stub
}

func (s *ingredientRepoStub) List(ctx context.Context, nameFilter string) ([]*models.Ingredient, error) {
	return nil, nil
}

func (s *ingredientRepoStub) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	return nil, nil
}

func (s *ingredientRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	return nil, nil
}

func (s *ingredientRepoStub) GetOrCreate(ctx context.Context, name, unitName string) (*models.Ingredient, bool, error) {
	key := name + "|" + unitName
	s.calls = append(s.calls, key)
	created := !s.existing[key]
	s.existing[key] = true
	return &models.Ingredient{Name: name}, created, nil
}

func TestImportCSV(t *testing.T) {
	stub := newIngredientRepoStub()
	im := NewImporter(stub)

	input := "flour,g\n milk , ml \nsugar,g\n"
	result, err := im.ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 0, result.Skipped)
	// Whitespace around fields is trimmed.
	assert.Contains(t, stub.calls, "milk|ml")
}

func TestImportCSV_WrongColumnCount(t *testing.T) {
	im := NewImporter(newIngredientRepoStub())

	_, err := im.ImportCSV(context.Background(), strings.NewReader("flour,g,extra\n"))
	assert.Error(t, err)
}

func TestImportJSON(t *testing.T) {
	stub := newIngredientRepoStub("flour|g")
	im := NewImporter(stub)

	input := `[
		{"name": "flour", "measurement_unit": "g"},
		{"name": "milk", "measurement_unit": "ml"}
	]`
	result, err := im.ImportJSON(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestImport_MissingFieldFails(t *testing.T) {
	im := NewImporter(newIngredientRepoStub())

	_, err := im.ImportJSON(context.Background(), strings.NewReader(`[{"name": "flour"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "ingredients.csv")
	require.NoError(t, os.WriteFile(path, []byte("flour,g\n"), 0o644))

	stub := newIngredientRepoStub()
	result, err := NewImporter(stub).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	t.Run("Unsupported extension", func(t *testing.T) {
		bad := filepath.Join(dir, "ingredients.txt")
		require.NoError(t, os.WriteFile(bad, []byte("flour,g\n"), 0o644))

		_, err := NewImporter(stub).ImportFile(context.Background(), bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported file type")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := NewImporter(stub).ImportFile(context.Background(), filepath.Join(dir, "nope.csv"))
		assert.Error(t, err)
	})
}

func TestImport_Idempotent(t *testing.T) {
	stub := newIngredientRepoStub()
	im := NewImporter(stub)

	input := `[{"name": "flour", "measurement_unit": "g"}]`
	first, err := im.ImportJSON(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	second, err := im.ImportJSON(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, first.Created)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Skipped)
}
