package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scoresheet-engine/internal/fetch"
	"github.com/pdiddy/scoresheet-engine/internal/scoresheet"
	"github.com/pdiddy/scoresheet-engine/internal/tabular"
	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "scoresheet-engine/0.1"
	defaultFormats   = "csv"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdf-path-or-url]",
	Short: "Convert a scoresheet PDF into the requested output formats",
	Long: `Convert takes one scoresheet PDF, given as a local path or an http(s)
URL, extracts its score table, and writes one artifact per requested format.
Unknown format identifiers are reported and skipped; the run fails only when
no artifact could be produced at all.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("formats", defaultFormats, "comma-separated output formats: csv, json, pivot, tremper, metadata")
	convertCmd.Flags().String("output-dir", "", "directory artifacts are written into (default: current directory)")
	convertCmd.Flags().String("work-dir", os.TempDir(), "directory remote PDFs are downloaded into")
	convertCmd.Flags().Duration("timeout", 0, "HTTP request timeout for URL inputs (default 60s)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	formatsFlag, _ := cmd.Flags().GetString("formats")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = "."
	}
	workDir, _ := cmd.Flags().GetString("work-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	formats, skipped := scoresheet.ParseFormats(strings.Split(formatsFlag, ","))
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "skipping unknown format: %s\n", s)
	}
	if len(formats) == 0 {
		return fmt.Errorf("no valid output formats in %q", formatsFlag)
	}
	ccfg := types.ConvertConfig{
		Formats:   formats,
		OutputDir: outputDir,
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		WorkDir: workDir,
	}
	client := &http.Client{Timeout: cfg.Timeout}

	pdfPath, downloaded, err := fetch.Resolve(cmd.Context(), client, args[0], cfg)
	if err != nil {
		return err
	}
	if downloaded {
		defer os.Remove(pdfPath)
	}

	result, err := scoresheet.Convert(&tabular.PDFExtractor{}, pdfPath, ccfg.Formats, os.Stdout)
	if err != nil {
		return err
	}

	written, failures := scoresheet.WriteArtifacts(result.Artifacts, ccfg.OutputDir, os.Stdout)
	for _, f := range append(result.Failures, failures...) {
		fmt.Fprintf(os.Stderr, "format %s failed: %v\n", f.Format, f.Err)
	}
	if len(written) == 0 {
		return fmt.Errorf("no artifacts produced")
	}

	fmt.Fprintf(os.Stdout, "Converted %d record(s) into %d artifact(s)", result.Records, len(written))
	if result.RowsSkipped > 0 {
		fmt.Fprintf(os.Stdout, " (%d source row(s) skipped)", result.RowsSkipped)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}
