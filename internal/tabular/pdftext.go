// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// PDFExtractor extracts tables with ledongthuc/pdf (pure Go, no CGO).
// The library groups positioned text fragments into visual rows; cell
// boundaries within a row are recovered from horizontal gaps.
type PDFExtractor struct{}

// NewPDFExtractor creates the production extraction backend.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract reads every page of the PDF at pdfPath and returns one RawTable
// per page that carries tabular content. Unreadable pages are skipped;
// a document without a single table yields ErrNoTables.
func (e *PDFExtractor) Extract(pdfPath string) ([]types.RawTable, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var tables []types.RawTable
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue // skip unreadable pages
		}

		var grid [][]string
		for _, row := range rows {
			cells := splitRow(row.Content)
			if len(cells) > 0 {
				grid = append(grid, cells)
			}
		}
		if len(grid) == 0 {
			continue
		}

		tables = append(tables, types.RawTable{Page: i, Rows: grid})
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("%s: %w", pdfPath, ErrNoTables)
	}
	return tables, nil
}

// PlainText returns the concatenated text of all pages, used for
// metadata extraction from the scoresheet front matter.
func PlainText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Gap thresholds for assembling cells, as multiples of the current font
// size. A gap wider than cellGapEm starts a new cell; anything between
// wordGapEm and cellGapEm is an ordinary word space within the cell.
const (
	wordGapEm = 0.25
	cellGapEm = 1.5
)

// splitRow assembles a visual row of positioned text fragments into cell
// strings. Fragments arrive sorted by X.
func splitRow(texts []pdf.Text) []string {
	var cells []string
	var cell strings.Builder
	var prevEnd float64

	flush := func() {
		s := strings.TrimSpace(cell.String())
		cell.Reset()
		if s != "" || len(cells) > 0 {
			cells = append(cells, s)
		}
	}

	for i, t := range texts {
		if t.S == "" {
			continue
		}
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		if i > 0 {
			gap := t.X - prevEnd
			switch {
			case gap > cellGapEm*size:
				flush()
			case gap > wordGapEm*size:
				cell.WriteByte(' ')
			}
		}
		cell.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	if cell.Len() > 0 {
		flush()
	}

	// Drop rows that are entirely whitespace.
	empty := true
	for _, c := range cells {
		if c != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil
	}
	return cells
}
