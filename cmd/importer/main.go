// Command importer loads an ingredient catalog file (CSV or JSON) into
// the database. Re-running the import is safe: existing pairs are
// skipped.
package main

import (
	"context"
	"flag"
	"log"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/importer"
	"forkful/internal/repository"
)

func main() {
	path := flag.String("file", "", "path to the ingredient catalog (.csv or .json)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	target := *path
	if target == "" {
		target = cfg.IngredientCSV
	}
	if target == "" {
		log.Fatal("No catalog file given: pass -file or set INGREDIENT_CSV_PATH")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	im := importer.NewImporter(repository.NewIngredientRepository(db))
	result, err := im.ImportFile(context.Background(), target)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete: %d created, %d skipped", result.Created, result.Skipped)
}
