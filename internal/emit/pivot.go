// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// pivotCol identifies one pivot column: a (round, judge) pair.
type pivotCol struct {
	round int
	judge string
}

func (c pivotCol) label() string {
	if c.judge == "" {
		return fmt.Sprintf("Round%d", c.round)
	}
	return fmt.Sprintf("Round%d/%s", c.round, c.judge)
}

// pivotCell keys a single matrix cell.
type pivotCell struct {
	competitor string
	col        pivotCol
}

// Pivot emits a matrix with one row per distinct competitor and one
// column per distinct (round, judge) pair, both in first-seen order.
// Cells without a matching record stay blank; when several records map
// to the same cell the last one encountered wins.
func Pivot(records []types.ScoreRecord) ([]byte, error) {
	var competitors []string
	var cols []pivotCol
	seenComp := make(map[string]bool)
	seenCol := make(map[pivotCol]bool)
	cells := make(map[pivotCell]*float64)

	for _, rec := range records {
		if !seenComp[rec.Competitor] {
			seenComp[rec.Competitor] = true
			competitors = append(competitors, rec.Competitor)
		}
		col := pivotCol{round: rec.Round, judge: rec.Judge}
		if !seenCol[col] {
			seenCol[col] = true
			cols = append(cols, col)
		}
		cells[pivotCell{competitor: rec.Competitor, col: col}] = rec.Score
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(cols)+1)
	header = append(header, "Competitor")
	for _, col := range cols {
		header = append(header, col.label())
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing pivot header: %w", err)
	}

	for _, comp := range competitors {
		row := make([]string, 0, len(cols)+1)
		row = append(row, comp)
		for _, col := range cols {
			value := ""
			if score, ok := cells[pivotCell{competitor: comp, col: col}]; ok && score != nil {
				value = formatScore(*score)
			}
			row = append(row, value)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing pivot row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing pivot: %w", err)
	}
	return buf.Bytes(), nil
}
