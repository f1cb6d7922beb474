package database

import (
	"forkful/internal/models"

	"gorm.io/gorm"
)

// Registry lists every persisted model in dependency order so AutoMigrate
// creates referenced tables before their dependents.
func Registry() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Unit{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Recipe{},
		&models.IngredientLine{},
		&models.Favorite{},
		&models.Purchase{},
		&models.Subscription{},
	}
}

// Migrate runs AutoMigrate over the full model registry.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Registry()...)
}
