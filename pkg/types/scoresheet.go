// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model and configuration structures
// for the scoresheet conversion pipeline.
package types

// RawTable is one unprocessed grid of text cells as extracted from a PDF
// page. It is produced by the extraction adapter and never mutated.
type RawTable struct {
	// Page is the 1-based PDF page the table was found on.
	Page int

	// Rows holds the table cells in reading order, one slice per row.
	Rows [][]string
}

// ScoreRecord is one normalized scoring row. Group, Round and Competitor
// are always populated; Judge may be empty and Score is nil when the
// source cell was blank or not numeric.
type ScoreRecord struct {
	Group      string
	Round      int
	Competitor string
	Judge      string
	Score      *float64
}

// Format identifies an output format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatPivot    Format = "pivot"
	FormatTremper  Format = "tremper"
	FormatMetadata Format = "metadata"
)

// KnownFormats lists every format the pipeline can emit, in the order
// output files are reported.
var KnownFormats = []Format{FormatCSV, FormatJSON, FormatPivot, FormatTremper, FormatMetadata}

// Known reports whether f is a supported output format.
func (f Format) Known() bool {
	for _, k := range KnownFormats {
		if f == k {
			return true
		}
	}
	return false
}

// Artifact is one finished output payload. Artifacts are immutable after
// creation; emitters create them and the invocation layer writes or
// uploads them.
type Artifact struct {
	// Name is the target filename, derived from the input base name
	// (e.g. "contest.csv", "contest_pivot.csv").
	Name string

	// Format identifies which emitter produced the artifact.
	Format Format

	// Data is the serialized payload.
	Data []byte
}

// ContentType returns the MIME type for the artifact's format.
func (a Artifact) ContentType() string {
	switch a.Format {
	case FormatJSON:
		return "application/json"
	case FormatMetadata:
		return "application/yaml"
	case FormatTremper:
		return "text/tab-separated-values"
	default:
		return "text/csv"
	}
}
