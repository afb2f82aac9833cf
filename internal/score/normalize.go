// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score normalizes raw extracted tables into ScoreRecords.
package score

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// ErrNoData signals that normalization received zero tables. It is the
// "no tabular data found" condition, distinct from individual rows being
// skipped.
var ErrNoData = errors.New("no tabular data found")

// Diagnostics summarizes a normalization run. Skipped rows are a
// diagnostic, never an error.
type Diagnostics struct {
	// Tables is the number of raw tables processed.
	Tables int

	// Rows is the number of ScoreRecords produced.
	Rows int

	// RowsSkipped counts rows dropped for missing a required identifying
	// field (group, competitor, or a parseable round).
	RowsSkipped int
}

// field identifies a logical column of the score schema.
type field int

const (
	fieldNone field = iota
	fieldGroup
	fieldRound
	fieldCompetitor
	fieldJudge
	fieldScore
)

// positionalOrder is the fallback column mapping used when no header row
// is recognized: group, round, competitor, judge, score.
var positionalOrder = []field{fieldGroup, fieldRound, fieldCompetitor, fieldJudge, fieldScore}

// headerTokens maps known header labels (lowercased) to schema fields.
// Scoresheets vary in wording across districts, hence the variants.
var headerTokens = map[string]field{
	"group":      fieldGroup,
	"quartet":    fieldGroup,
	"chorus":     fieldGroup,
	"ensemble":   fieldGroup,
	"round":      fieldRound,
	"rnd":        fieldRound,
	"session":    fieldRound,
	"competitor": fieldCompetitor,
	"contestant": fieldCompetitor,
	"entrant":    fieldCompetitor,
	"performer":  fieldCompetitor,
	"song":       fieldCompetitor,
	"songs":      fieldCompetitor,
	"judge":      fieldJudge,
	"category":   fieldJudge,
	"panel":      fieldJudge,
	"score":      fieldScore,
	"points":     fieldScore,
	"total":      fieldScore,
	"pts":        fieldScore,
}

// minHeaderMatches is the number of recognized labels the first row must
// carry to be treated as a header row rather than data.
const minHeaderMatches = 2

var digitRun = regexp.MustCompile(`\d+`)

// Normalize maps raw tables to the full ordered ScoreRecord sequence for
// a document. Tables are concatenated in extraction order and duplicate
// competitor/round/judge combinations are preserved verbatim; source
// PDFs sometimes repeat rows and that duplication is not repaired here.
func Normalize(tables []types.RawTable) ([]types.ScoreRecord, Diagnostics, error) {
	var diag Diagnostics
	if len(tables) == 0 {
		return nil, diag, ErrNoData
	}

	var records []types.ScoreRecord
	for _, table := range tables {
		diag.Tables++
		rows := table.Rows
		mapping, hasHeader := detectHeader(rows)
		if hasHeader {
			rows = rows[1:]
		}

		for _, row := range rows {
			if blankRow(row) {
				continue
			}
			rec, ok := mapRow(row, mapping)
			if !ok {
				diag.RowsSkipped++
				continue
			}
			records = append(records, rec)
		}
	}

	diag.Rows = len(records)
	return records, diag, nil
}

// detectHeader inspects the first row of a table for known header labels.
// It returns the column-index-to-field mapping and whether a header row
// was recognized; without one, positional fallback applies.
func detectHeader(rows [][]string) (map[int]field, bool) {
	positional := make(map[int]field, len(positionalOrder))
	for i, f := range positionalOrder {
		positional[i] = f
	}
	if len(rows) == 0 {
		return positional, false
	}

	header := rows[0]
	mapping := make(map[int]field)
	matches := 0
	for i, cell := range header {
		label := strings.ToLower(strings.TrimSpace(stripBOM(cell)))
		f, ok := headerTokens[label]
		if !ok {
			continue
		}
		// First occurrence wins when a label repeats.
		if !fieldMapped(mapping, f) {
			mapping[i] = f
			matches++
		}
	}
	if matches < minHeaderMatches {
		return positional, false
	}
	return mapping, true
}

func fieldMapped(mapping map[int]field, f field) bool {
	for _, mapped := range mapping {
		if mapped == f {
			return true
		}
	}
	return false
}

// mapRow converts one data row into a ScoreRecord. Rows missing group,
// competitor, or a parseable round are rejected.
func mapRow(row []string, mapping map[int]field) (types.ScoreRecord, bool) {
	var rec types.ScoreRecord
	roundOK := false

	for i, cell := range row {
		f, ok := mapping[i]
		if !ok {
			continue
		}
		value := strings.TrimSpace(cell)
		switch f {
		case fieldGroup:
			rec.Group = value
		case fieldRound:
			if r, ok := parseRound(value); ok {
				rec.Round = r
				roundOK = true
			}
		case fieldCompetitor:
			rec.Competitor = value
		case fieldJudge:
			rec.Judge = value
		case fieldScore:
			rec.Score = parseScore(value)
		}
	}

	if rec.Group == "" || rec.Competitor == "" || !roundOK {
		return types.ScoreRecord{}, false
	}
	return rec, true
}

// parseRound extracts the round number from a cell. Cells arrive either
// as bare integers ("1") or labelled ("Round 2"); the first digit run
// decides. A cell without digits is unparseable.
func parseRound(cell string) (int, bool) {
	m := digitRun.FindString(cell)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseScore parses a score cell. Blank or non-numeric cells yield nil,
// an absent score, not a failure.
func parseScore(cell string) *float64 {
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &v
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// stripBOM removes a UTF-8 byte-order mark from the start of a header
// cell. Extracted headers occasionally carry one, either decoded or as
// raw latin-1 bytes.
func stripBOM(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimPrefix(s, "ï»¿")
}
