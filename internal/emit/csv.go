// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// csvHeader is the fixed flat-CSV column order.
var csvHeader = []string{"Group", "Round", "Competitor", "Judge", "Score"}

// CSV emits one row per record in fixed column order, header first.
// Absent scores render as an empty field.
func CSV(records []types.ScoreRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, rec := range records {
		score := ""
		if rec.Score != nil {
			score = formatScore(*rec.Score)
		}
		row := []string{rec.Group, strconv.Itoa(rec.Round), rec.Competitor, rec.Judge, score}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}
