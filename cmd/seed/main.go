// Command seed populates the database with demo data for local
// development.
package main

import (
	"flag"
	"log"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	recipes := flag.Int("recipes", 40, "number of recipes to create")
	ingredients := flag.Int("ingredients", 60, "number of ingredients to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	opts := seed.DefaultOptions()
	opts.Users = *users
	opts.Recipes = *recipes
	opts.Ingredients = *ingredients

	factory := seed.NewFactory(db, opts)
	if err := factory.Run(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Printf("Seeded %d users, %d ingredients, %d recipes", opts.Users, opts.Ingredients, opts.Recipes)
}
