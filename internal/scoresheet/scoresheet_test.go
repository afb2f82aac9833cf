// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoresheet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/scoresheet-engine/internal/tabular"
	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// fakeExtractor implements tabular.Extractor with canned tables or an
// error, depending on configuration.
type fakeExtractor struct {
	tables []types.RawTable
	err    error
}

func (f *fakeExtractor) Extract(pdfPath string) ([]types.RawTable, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tables, nil
}

func sampleTables() []types.RawTable {
	return []types.RawTable{{Page: 1, Rows: [][]string{
		{"Group", "Round", "Competitor", "Judge", "Score"},
		{"A", "1", "Foo", "J1", "85"},
		{"A", "1", "Bar", "J1", ""},
	}}}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		wantValid   []types.Format
		wantSkipped []string
	}{
		{"all valid", []string{"csv", "json", "pivot"},
			[]types.Format{types.FormatCSV, types.FormatJSON, types.FormatPivot}, nil},
		{"unknown skipped", []string{"csv", "bogus"},
			[]types.Format{types.FormatCSV}, []string{"bogus"}},
		{"case and space", []string{" CSV ", "Json"},
			[]types.Format{types.FormatCSV, types.FormatJSON}, nil},
		{"duplicates collapsed", []string{"csv", "csv"},
			[]types.Format{types.FormatCSV}, nil},
		{"none valid", []string{"xml", "xlsx"},
			nil, []string{"xml", "xlsx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, skipped := ParseFormats(tt.input)
			if !reflect.DeepEqual(valid, tt.wantValid) {
				t.Errorf("valid = %v, want %v", valid, tt.wantValid)
			}
			if !reflect.DeepEqual(skipped, tt.wantSkipped) {
				t.Errorf("skipped = %v, want %v", skipped, tt.wantSkipped)
			}
		})
	}
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		format types.Format
		want   string
	}{
		{types.FormatCSV, "contest.csv"},
		{types.FormatJSON, "contest.json"},
		{types.FormatPivot, "contest_pivot.csv"},
		{types.FormatTremper, "contest_tremper.txt"},
		{types.FormatMetadata, "contest_metadata.yaml"},
	}
	for _, tt := range tests {
		if got := ArtifactName("contest", tt.format); got != tt.want {
			t.Errorf("ArtifactName(contest, %s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestConvert(t *testing.T) {
	ex := &fakeExtractor{tables: sampleTables()}
	var log bytes.Buffer

	result, err := Convert(ex, "/tmp/contest.pdf", []types.Format{types.FormatCSV, types.FormatJSON}, &log)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if !result.Produced() {
		t.Fatal("no artifacts produced")
	}
	if len(result.Artifacts) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(result.Artifacts))
	}
	if result.Artifacts[0].Name != "contest.csv" || result.Artifacts[1].Name != "contest.json" {
		t.Errorf("artifact names = %q, %q", result.Artifacts[0].Name, result.Artifacts[1].Name)
	}
	if result.Records != 2 || result.RowsSkipped != 0 {
		t.Errorf("records = %d, skipped = %d", result.Records, result.RowsSkipped)
	}
	if !strings.Contains(log.String(), "normalized: 2 records") {
		t.Errorf("log = %q", log.String())
	}
}

func TestConvert_NoTables(t *testing.T) {
	ex := &fakeExtractor{err: tabular.ErrNoTables}
	var log bytes.Buffer

	result, err := Convert(ex, "/tmp/empty.pdf", []types.Format{types.FormatCSV}, &log)
	if !errors.Is(err, tabular.ErrNoTables) {
		t.Fatalf("err = %v, want ErrNoTables", err)
	}
	if result.Produced() {
		t.Error("artifacts produced despite extraction failure")
	}
}

func TestConvert_MetadataFailureDoesNotAbortSiblings(t *testing.T) {
	// The fake extractor succeeds but the metadata pass reads the real
	// (nonexistent) PDF, so it fails per-artifact.
	ex := &fakeExtractor{tables: sampleTables()}
	var log bytes.Buffer

	result, err := Convert(ex, "/tmp/does-not-exist.pdf",
		[]types.Format{types.FormatCSV, types.FormatMetadata}, &log)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if len(result.Artifacts) != 1 || result.Artifacts[0].Format != types.FormatCSV {
		t.Fatalf("artifacts = %+v, want csv only", result.Artifacts)
	}
	if len(result.Failures) != 1 || result.Failures[0].Format != types.FormatMetadata {
		t.Fatalf("failures = %+v, want metadata failure", result.Failures)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := []types.Artifact{
		{Name: "contest.csv", Format: types.FormatCSV, Data: []byte("a,b\n")},
		{Name: "contest.json", Format: types.FormatJSON, Data: []byte("{}")},
	}
	var log bytes.Buffer

	written, failures := WriteArtifacts(artifacts, dir, &log)
	if len(failures) != 0 {
		t.Fatalf("failures: %+v", failures)
	}
	if len(written) != 2 {
		t.Fatalf("wrote %d files, want 2", len(written))
	}
	data, err := os.ReadFile(filepath.Join(dir, "contest.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a,b\n" {
		t.Errorf("content = %q", data)
	}
}
