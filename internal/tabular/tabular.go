// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular extracts raw tables from scoresheet PDFs. The Extractor
// interface is the boundary to the PDF library, so the normalizer and the
// emitters can be exercised with synthetic tables in tests.
package tabular

import (
	"errors"

	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// ErrNoTables signals that a PDF contained no extractable tabular data.
// It is a distinct condition from rows being skipped during
// normalization; a request with zero tables fails outright.
var ErrNoTables = errors.New("no tabular data found")

// Extractor produces the raw tables of a scoresheet PDF in page order.
// Implementations return ErrNoTables (possibly wrapped) when the document
// yields no tables at all.
type Extractor interface {
	Extract(pdfPath string) ([]types.RawTable, error)
}
