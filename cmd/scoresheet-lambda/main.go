// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the AWS Lambda entry point for scoresheet conversion.
// One invocation converts one PDF, uploads the artifacts to S3, and
// returns their object URLs.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"

	"github.com/pdiddy/scoresheet-engine/internal/fetch"
	"github.com/pdiddy/scoresheet-engine/internal/scoresheet"
	"github.com/pdiddy/scoresheet-engine/internal/tabular"
	"github.com/pdiddy/scoresheet-engine/internal/upload"
	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

const (
	requestTimeout   = 60 * time.Second
	defaultUserAgent = "scoresheet-engine/0.1"
)

// Request is the invocation payload.
type Request struct {
	// PDFURL locates the scoresheet PDF to convert.
	PDFURL string `json:"pdf_url"`

	// Formats lists the requested output formats. Empty means csv.
	Formats []string `json:"formats,omitempty"`
}

// Response reports the conversion outcome. URLs maps each produced
// format to its S3 object URL under a "<format>_url" key.
type Response struct {
	URLs           map[string]string `json:"urls"`
	SkippedFormats []string          `json:"skipped_formats,omitempty"`
	FailedFormats  map[string]string `json:"failed_formats,omitempty"`
	Records        int               `json:"records"`
	RowsSkipped    int               `json:"rows_skipped"`
}

type handler struct {
	uploader upload.Uploader
	client   *http.Client
	workDir  string
}

func (h *handler) handle(ctx context.Context, req Request) (Response, error) {
	if req.PDFURL == "" {
		return Response{}, fmt.Errorf("pdf_url is required")
	}

	names := req.Formats
	if len(names) == 0 {
		names = []string{"csv"}
	}
	formats, skipped := scoresheet.ParseFormats(names)
	if len(formats) == 0 {
		return Response{}, fmt.Errorf("no valid output formats in %v", req.Formats)
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   requestTimeout,
			UserAgent: defaultUserAgent,
		},
		WorkDir: h.workDir,
	}
	pdfPath, downloaded, err := fetch.Resolve(ctx, h.client, req.PDFURL, cfg)
	if err != nil {
		return Response{}, err
	}
	if downloaded {
		defer os.Remove(pdfPath)
	}

	result, err := scoresheet.Convert(&tabular.PDFExtractor{}, pdfPath, formats, io.Discard)
	if err != nil {
		return Response{}, err
	}

	resp := Response{
		URLs:           make(map[string]string),
		SkippedFormats: skipped,
		Records:        result.Records,
		RowsSkipped:    result.RowsSkipped,
	}
	failed := make(map[string]string)
	for _, f := range result.Failures {
		failed[string(f.Format)] = f.Err.Error()
	}

	requestID := uuid.NewString()
	for _, artifact := range result.Artifacts {
		key := requestID + "/" + artifact.Name
		url, err := h.uploader.Upload(ctx, key, artifact.Data, artifact.ContentType())
		if err != nil {
			failed[string(artifact.Format)] = err.Error()
			continue
		}
		resp.URLs[string(artifact.Format)+"_url"] = url
	}
	if len(failed) > 0 {
		resp.FailedFormats = failed
	}
	if len(resp.URLs) == 0 {
		return Response{}, fmt.Errorf("all artifact uploads failed: %v", failed)
	}
	return resp, nil
}

func main() {
	uploader, err := upload.NewS3Uploader(context.Background(), types.UploadConfig{
		Bucket:   os.Getenv("SCORESHEET_BUCKET"),
		Prefix:   os.Getenv("SCORESHEET_PREFIX"),
		Endpoint: os.Getenv("SCORESHEET_S3_ENDPOINT"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(1)
	}

	h := &handler{
		uploader: uploader,
		client:   &http.Client{Timeout: requestTimeout},
		workDir:  os.TempDir(),
	}
	lambda.Start(h.handle)
}
