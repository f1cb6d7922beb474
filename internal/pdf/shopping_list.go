// Package pdf renders shopping lists as downloadable PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"forkful/internal/models"
)

// ShoppingListRenderer renders an aggregated shopping list, one line
// per (ingredient, unit) pair.
type ShoppingListRenderer struct {
	title string
	now   func() time.Time
}

// NewShoppingListRenderer creates a renderer with the default title.
func NewShoppingListRenderer() *ShoppingListRenderer {
	return &ShoppingListRenderer{title: "Shopping list", now: time.Now}
}

// Render produces the PDF document bytes.
func (r *ShoppingListRenderer) Render(items []models.CartItem) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(r.now())
	doc.SetTitle(r.title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, r.title, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(120, 120, 120)
	doc.CellFormat(0, 6, r.now().Format("2006-01-02"), "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 12)
	for i, item := range items {
		line := fmt.Sprintf("%d. %s (%s) - %d", i+1, item.IngredientName, item.MeasurementUnit, item.Total)
		doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
