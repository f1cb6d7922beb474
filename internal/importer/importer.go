// Package importer loads ingredient catalogs from CSV or JSON files.
// Imports are idempotent: existing (name, unit) pairs are skipped.
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"forkful/internal/middleware"
	"forkful/internal/repository"
)

// Result summarizes one import run.
type Result struct {
	Created int
	Skipped int
}

// Importer feeds catalog files through the ingredient repository.
type Importer struct {
	ingredientRepo repository.IngredientRepository
}

// NewImporter creates a new importer
func NewImporter(ingredientRepo repository.IngredientRepository) *Importer {
	return &Importer{ingredientRepo: ingredientRepo}
}

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// ImportFile dispatches on the file extension (.csv or .json).
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return im.ImportCSV(ctx, f)
	case ".json":
		return im.ImportJSON(ctx, f)
	default:
		return nil, fmt.Errorf("unsupported file type %q, want .csv or .json", filepath.Ext(path))
	}
}

// ImportCSV reads headerless rows of the form "name,unit".
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	var records []ingredientRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		records = append(records, ingredientRecord{
			Name:            strings.TrimSpace(row[0]),
			MeasurementUnit: strings.TrimSpace(row[1]),
		})
	}
	return im.load(ctx, records)
}

// ImportJSON reads an array of {"name", "measurement_unit"} objects.
func (im *Importer) ImportJSON(ctx context.Context, r io.Reader) (*Result, error) {
	var records []ingredientRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return im.load(ctx, records)
}

func (im *Importer) load(ctx context.Context, records []ingredientRecord) (*Result, error) {
	result := &Result{}
	for i, rec := range records {
		if rec.Name == "" || rec.MeasurementUnit == "" {
			return nil, fmt.Errorf("record %d: name and measurement_unit are required", i+1)
		}
		_, created, err := im.ingredientRepo.GetOrCreate(ctx, rec.Name, rec.MeasurementUnit)
		if err != nil {
			return nil, fmt.Errorf("importing %q: %w", rec.Name, err)
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}
	middleware.Logger.Info("ingredient import finished",
		"created", result.Created,
		"skipped", result.Skipped,
	)
	return result, nil
}
