package repository

import (
	"context"
	"errors"
	"strings"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// IngredientRepository defines the interface for ingredient data operations
type IngredientRepository interface {
	List(ctx context.Context, nameFilter string) ([]*models.Ingredient, error)
	GetByID(ctx context.Context, id uint) (*models.Ingredient, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error)
	GetOrCreate(ctx context.Context, name, unitName string) (*models.Ingredient, bool, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// withUnitName flattens the unit name into the measurement_unit alias.
func (r *ingredientRepository) withUnitName(db *gorm.DB) *gorm.DB {
	return db.
		Select("ingredients.*, units.name as measurement_unit").
		Joins("JOIN units ON units.id = ingredients.unit_id")
}

func (r *ingredientRepository) List(ctx context.Context, nameFilter string) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	query := r.withUnitName(r.db.WithContext(ctx)).Order("ingredients.name")
	if nameFilter != "" {
		// Case-insensitive substring match.
		query = query.Where("LOWER(ingredients.name) LIKE ?", "%"+strings.ToLower(nameFilter)+"%")
	}
	err := query.Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.withUnitName(r.db.WithContext(ctx)).
		Where("ingredients.id = ?", id).
		First(&ingredient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ingredient", id)
		}
		return nil, err
	}
	return &ingredient, nil
}

// GetByIDs resolves every id or fails with a not-found error naming the
// first missing one. Used to resolve a recipe's ingredient list eagerly.
func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.withUnitName(r.db.WithContext(ctx)).
		Where("ingredients.id IN ?", ids).
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		found := make(map[uint]struct{}, len(ingredients))
		for _, ing := range ingredients {
			found[ing.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return nil, models.NewNotFoundError("Ingredient", id)
			}
		}
	}
	return ingredients, nil
}

// GetOrCreate finds or inserts the (name, unit) pair, creating the unit on
// demand. Both lookups run inside one transaction so a re-import never
// duplicates rows. The bool reports whether the ingredient was created.
func (r *ingredientRepository) GetOrCreate(ctx context.Context, name, unitName string) (*models.Ingredient, bool, error) {
	var ingredient models.Ingredient
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.Where("name = ?", unitName).First(&unit).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			unit = models.Unit{Name: unitName}
			if err := tx.Create(&unit).Error; err != nil {
				return err
			}
		}

		err := tx.Where("name = ? AND unit_id = ?", name, unit.ID).First(&ingredient).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		ingredient = models.Ingredient{Name: name, UnitID: unit.ID}
		if err := tx.Create(&ingredient).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &ingredient, created, nil
}
