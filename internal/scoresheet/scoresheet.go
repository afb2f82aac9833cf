// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoresheet orchestrates one conversion: extract raw tables,
// normalize them into ScoreRecords, and emit every requested format as
// an immutable artifact.
package scoresheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scoresheet-engine/internal/emit"
	"github.com/pdiddy/scoresheet-engine/internal/metadata"
	"github.com/pdiddy/scoresheet-engine/internal/score"
	"github.com/pdiddy/scoresheet-engine/internal/tabular"
	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// Failure records a per-format emission failure. Sibling formats still
// complete; nothing here is all-or-nothing.
type Failure struct {
	Format types.Format
	Err    error
}

// Result summarizes one conversion run.
type Result struct {
	// Artifacts holds the finished outputs, one per succeeded format.
	Artifacts []types.Artifact

	// SkippedFormats lists requested identifiers that name no known
	// format. They are diagnostics, fatal only when nothing remains.
	SkippedFormats []string

	// Failures lists formats whose emission failed.
	Failures []Failure

	// Records is the number of normalized ScoreRecords.
	Records int

	// RowsSkipped counts source rows dropped during normalization.
	RowsSkipped int
}

// Produced reports whether at least one artifact was produced.
func (r Result) Produced() bool {
	return len(r.Artifacts) > 0
}

// ParseFormats validates requested format identifiers, preserving order.
// Unknown identifiers land in skipped rather than failing the request.
func ParseFormats(names []string) (valid []types.Format, skipped []string) {
	seen := make(map[types.Format]bool)
	for _, name := range names {
		f := types.Format(strings.ToLower(strings.TrimSpace(name)))
		if !f.Known() {
			skipped = append(skipped, name)
			continue
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		valid = append(valid, f)
	}
	return valid, skipped
}

// BaseName derives the output filename stem from the input PDF path.
func BaseName(pdfPath string) string {
	base := filepath.Base(pdfPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ArtifactName returns the deterministic output filename for a format,
// derived from the input stem: stem.csv, stem.json, stem_pivot.csv,
// stem_tremper.txt, stem_metadata.yaml.
func ArtifactName(base string, f types.Format) string {
	switch f {
	case types.FormatCSV:
		return base + ".csv"
	case types.FormatJSON:
		return base + ".json"
	case types.FormatPivot:
		return base + "_pivot.csv"
	case types.FormatTremper:
		return base + "_tremper.txt"
	case types.FormatMetadata:
		return base + "_metadata.yaml"
	default:
		return base + "." + string(f)
	}
}

// Convert runs the full pipeline for one PDF. It fails outright when the
// document yields no tabular data; per-format emission failures and
// skipped rows are reported in the Result instead. Progress lines go
// to w.
func Convert(ex tabular.Extractor, pdfPath string, formats []types.Format, w io.Writer) (Result, error) {
	var result Result

	tables, err := ex.Extract(pdfPath)
	if err != nil {
		return result, err
	}

	records, diag, err := score.Normalize(tables)
	if err != nil {
		return result, err
	}
	result.Records = diag.Rows
	result.RowsSkipped = diag.RowsSkipped
	fmt.Fprintf(w, "normalized: %d records from %d table(s), %d row(s) skipped\n",
		diag.Rows, diag.Tables, diag.RowsSkipped)

	base := BaseName(pdfPath)

	var recordFormats []types.Format
	wantMetadata := false
	for _, f := range formats {
		if f == types.FormatMetadata {
			wantMetadata = true
			continue
		}
		recordFormats = append(recordFormats, f)
	}

	outputs, failures := emit.All(records, recordFormats)
	for _, out := range outputs {
		result.Artifacts = append(result.Artifacts, types.Artifact{
			Name:   ArtifactName(base, out.Format),
			Format: out.Format,
			Data:   out.Data,
		})
		fmt.Fprintf(w, "emitted: %s (%d bytes)\n", ArtifactName(base, out.Format), len(out.Data))
	}
	for _, f := range failures {
		result.Failures = append(result.Failures, Failure{Format: f.Format, Err: f.Err})
		fmt.Fprintf(w, "failed:  %s (%v)\n", f.Format, f.Err)
	}

	if wantMetadata {
		if artifact, err := metadataArtifact(pdfPath, base); err != nil {
			result.Failures = append(result.Failures, Failure{Format: types.FormatMetadata, Err: err})
			fmt.Fprintf(w, "failed:  metadata (%v)\n", err)
		} else {
			result.Artifacts = append(result.Artifacts, artifact)
			fmt.Fprintf(w, "emitted: %s (%d bytes)\n", artifact.Name, len(artifact.Data))
		}
	}

	return result, nil
}

func metadataArtifact(pdfPath, base string) (types.Artifact, error) {
	md, err := metadata.FromPDF(pdfPath)
	if err != nil {
		return types.Artifact{}, err
	}
	data, err := metadata.EmitYAML(md)
	if err != nil {
		return types.Artifact{}, err
	}
	return types.Artifact{
		Name:   ArtifactName(base, types.FormatMetadata),
		Format: types.FormatMetadata,
		Data:   data,
	}, nil
}

// WriteArtifacts writes each artifact under dir. A failed write is
// reported and counted but does not abort sibling artifacts.
func WriteArtifacts(artifacts []types.Artifact, dir string, w io.Writer) (written []string, failures []Failure) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		for _, a := range artifacts {
			failures = append(failures, Failure{Format: a.Format, Err: err})
		}
		return nil, failures
	}

	for _, a := range artifacts {
		path := filepath.Join(dir, a.Name)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			failures = append(failures, Failure{Format: a.Format, Err: err})
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			continue
		}
		written = append(written, path)
		fmt.Fprintf(w, "wrote: %s\n", path)
	}
	return written, failures
}
