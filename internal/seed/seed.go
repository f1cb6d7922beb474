// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"forkful/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls the seed volume.
type Options struct {
	Users       int
	Recipes     int
	Ingredients int
	MaxDays     int
}

// DefaultOptions returns a small demo dataset configuration.
func DefaultOptions() Options {
	return Options{Users: 10, Recipes: 40, Ingredients: 60, MaxDays: 90}
}

var defaultTags = []models.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	{Name: "Dessert", Color: "#F3C918", Slug: "dessert"},
}

var unitNames = []string{"g", "kg", "ml", "l", "pcs", "tbsp", "tsp", "cup"}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds the full demo dataset: tags, units, ingredients, users,
// recipes with lines and tag sets, plus some favorites and
// subscriptions.
func (f *Factory) Run() error {
	tags, err := f.CreateTags()
	if err != nil {
		return fmt.Errorf("seeding tags: %w", err)
	}
	ingredients, err := f.CreateIngredients(f.opts.Ingredients)
	if err != nil {
		return fmt.Errorf("seeding ingredients: %w", err)
	}
	users, err := f.CreateUsers(f.opts.Users)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	recipes, err := f.CreateRecipes(f.opts.Recipes, users, ingredients, tags)
	if err != nil {
		return fmt.Errorf("seeding recipes: %w", err)
	}
	if err := f.CreateEngagement(users, recipes); err != nil {
		return fmt.Errorf("seeding engagement: %w", err)
	}
	return nil
}

// CreateTags inserts the default tag palette, skipping existing slugs.
func (f *Factory) CreateTags() ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(defaultTags))
	for _, tpl := range defaultTags {
		var tag models.Tag
		err := f.db.Where(models.Tag{Slug: tpl.Slug}).
			Attrs(models.Tag{Name: tpl.Name, Color: tpl.Color}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// CreateIngredients creates n fake ingredients across the default units.
func (f *Factory) CreateIngredients(n int) ([]models.Ingredient, error) {
	units := make([]models.Unit, 0, len(unitNames))
	for _, name := range unitNames {
		var unit models.Unit
		if err := f.db.Where(models.Unit{Name: name}).FirstOrCreate(&unit).Error; err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	ingredients := make([]models.Ingredient, 0, n)
	for i := 0; i < n; i++ {
		unit := units[f.rnd.Intn(len(units))]
		name := fmt.Sprintf("%s %d", gofakeit.Vegetable(), i)
		ingredient := models.Ingredient{Name: name, UnitID: unit.ID}
		if err := f.db.Create(&ingredient).Error; err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

// CreateUsers creates n accounts, all with the password "seedpass123".
func (f *Factory) CreateUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("seedpass123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:     fmt.Sprintf("seed%d.%s", i, gofakeit.Email()),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Password:  string(hash),
			IsActive:  true,
		}
		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreateRecipes creates n recipes with 2-6 ingredient lines and 1-2 tags
// each, spread over the configured time window.
func (f *Factory) CreateRecipes(n int, users []models.User, ingredients []models.Ingredient, tags []models.Tag) ([]models.Recipe, error) {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}

	recipes := make([]models.Recipe, 0, n)
	for i := 0; i < n; i++ {
		author := users[f.rnd.Intn(len(users))]
		recipe := models.Recipe{
			AuthorID:    author.ID,
			Name:        gofakeit.Dinner(),
			Image:       fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			Text:        gofakeit.Paragraph(1, 3, 8, "\n"),
			CookingTime: 5 + f.rnd.Intn(115),
			PubDate:     time.Now().Add(-time.Duration(f.rnd.Intn(maxDays*24)) * time.Hour),
		}
		if err := f.db.Create(&recipe).Error; err != nil {
			return nil, err
		}

		lineCount := 2 + f.rnd.Intn(5)
		picked := f.rnd.Perm(len(ingredients))[:lineCount]
		for _, idx := range picked {
			line := models.IngredientLine{
				RecipeID:     recipe.ID,
				IngredientID: ingredients[idx].ID,
				Amount:       1 + f.rnd.Intn(500),
			}
			if err := f.db.Create(&line).Error; err != nil {
				return nil, err
			}
		}

		tagSet := []models.Tag{tags[f.rnd.Intn(len(tags))]}
		if f.rnd.Intn(2) == 0 {
			tagSet = append(tagSet, tags[f.rnd.Intn(len(tags))])
		}
		if err := f.db.Model(&recipe).Association("Tags").Replace(tagSet); err != nil {
			return nil, err
		}

		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// CreateEngagement scatters favorites, cart entries and subscriptions
// across the seeded users and recipes.
func (f *Factory) CreateEngagement(users []models.User, recipes []models.Recipe) error {
	for _, user := range users {
		for _, recipe := range recipes {
			if f.rnd.Intn(5) == 0 {
				fav := models.Favorite{UserID: user.ID, RecipeID: recipe.ID}
				if err := f.db.Create(&fav).Error; err != nil {
					return err
				}
			}
			if f.rnd.Intn(8) == 0 {
				purchase := models.Purchase{UserID: user.ID, RecipeID: recipe.ID}
				if err := f.db.Create(&purchase).Error; err != nil {
					return err
				}
			}
		}
		for _, author := range users {
			if author.ID != user.ID && f.rnd.Intn(4) == 0 {
				sub := models.Subscription{UserID: user.ID, AuthorID: author.ID}
				if err := f.db.Create(&sub).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
