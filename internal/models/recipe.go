package models

import (
	"time"
)

// Unit is a measurement unit label, created on demand during ingredient import.
type Unit struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:200;not null" json:"name"`
}

// Ingredient pairs a name with its measurement unit. The (name, unit)
// pair is unique so repeated imports stay idempotent.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	UnitID uint   `gorm:"not null;uniqueIndex:idx_ingredient_name_unit" json:"-"`
	Unit   Unit   `gorm:"foreignKey:UnitID" json:"-"`
	// MeasurementUnit is the unit name, flattened for serialization
	MeasurementUnit string `gorm:"->" json:"measurement_unit"`
}

// Tag labels recipes. Color is a hex color string ("#" plus 3 or 6 hex digits).
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:200;not null" json:"name"`
	Color string `gorm:"size:7;not null" json:"color"`
	Slug  string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}

// Recipe is a published dish record owned by one author.
type Recipe struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	AuthorID    uint             `gorm:"not null;index" json:"-"`
	Author      User             `gorm:"foreignKey:AuthorID" json:"author"`
	Name        string           `gorm:"size:200;not null" json:"name"`
	Image       string           `gorm:"type:text" json:"image"`
	Text        string           `gorm:"type:text;not null" json:"text"`
	CookingTime int              `gorm:"not null" json:"cooking_time"`
	Tags        []Tag            `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []IngredientLine `gorm:"foreignKey:RecipeID" json:"ingredients"`
	// IsFavorited reports whether the requesting user bookmarked this recipe (computed)
	IsFavorited bool `gorm:"->" json:"is_favorited"`
	// IsInShoppingCart reports whether the requesting user queued this recipe (computed)
	IsInShoppingCart bool      `gorm:"->" json:"is_in_shopping_cart"`
	PubDate          time.Time `gorm:"autoCreateTime" json:"-"`
}

// IngredientLine is one (recipe, ingredient, amount) row. Lines are
// replaced wholesale on every update that touches ingredients.
type IngredientLine struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	RecipeID     uint       `gorm:"not null;index" json:"-"`
	IngredientID uint       `gorm:"not null" json:"id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
	Amount       int        `gorm:"not null" json:"amount"`
	// Name and MeasurementUnit are flattened from the ingredient for serialization
	Name            string `gorm:"->" json:"name"`
	MeasurementUnit string `gorm:"->" json:"measurement_unit"`
}

// Favorite is a user's bookmark of a recipe, unique per (user, recipe).
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"recipe_id"`
	CreatedAt time.Time `json:"-"`
}

// Purchase is a recipe queued in a user's shopping cart, unique per (user, recipe).
type Purchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_purchase_pair" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_purchase_pair" json:"recipe_id"`
	CreatedAt time.Time `json:"-"`
}

// RecipeShort is the trimmed recipe payload returned by favorite and
// shopping cart toggles and by subscription previews.
type RecipeShort struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ShortRecipe trims a recipe to its toggle-response shape.
func ShortRecipe(r *Recipe) RecipeShort {
	return RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// CartItem is one aggregated shopping list row: the summed amount of an
// ingredient across every recipe in a user's cart, grouped by unit.
type CartItem struct {
	IngredientName  string `json:"ingredient_name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}
