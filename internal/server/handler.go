// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the conversion pipeline as an HTTP service.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pdiddy/scoresheet-engine/internal/fetch"
	"github.com/pdiddy/scoresheet-engine/internal/score"
	"github.com/pdiddy/scoresheet-engine/internal/scoresheet"
	"github.com/pdiddy/scoresheet-engine/internal/tabular"
	"github.com/pdiddy/scoresheet-engine/internal/upload"
	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

const maxUploadBytes = 32 << 20

// Handler serves conversion requests. Every request is stateless: one
// PDF in, artifacts uploaded, URLs out.
type Handler struct {
	Extractor tabular.Extractor
	Uploader  upload.Uploader

	// Fetch configures remote PDF downloads for url-based requests.
	Fetch types.FetchConfig

	// AuthToken, when non-empty, must match the request bearer token.
	AuthToken string

	// Client performs remote fetches; nil means http.DefaultClient.
	Client *http.Client
}

// Attach registers the service routes.
func (h *Handler) Attach(r chi.Router) {
	r.Post("/convert", h.handleConvert)
	r.Get("/healthz", h.handleHealthz)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, map[string]string{"status": "ok"})
}

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, errors.New("missing or invalid bearer token"))
		return
	}

	formats := requestFormats(r)
	valid, skipped := scoresheet.ParseFormats(formats)
	if len(valid) == 0 {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("no valid output formats in %v", formats))
		return
	}

	pdfPath, cleanup, err := h.resolveInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer cleanup()

	result, err := scoresheet.Convert(h.Extractor, pdfPath, valid, io.Discard)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tabular.ErrNoTables) || errors.Is(err, score.ErrNoData) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}

	// Per-request key prefix keeps concurrent conversions of same-named
	// inputs apart.
	requestID := uuid.NewString()

	response := map[string]any{
		"records":      result.Records,
		"rows_skipped": result.RowsSkipped,
	}
	if len(skipped) > 0 {
		response["skipped_formats"] = skipped
	}

	failed := make(map[string]string)
	for _, f := range result.Failures {
		failed[string(f.Format)] = f.Err.Error()
	}

	succeeded := 0
	for _, artifact := range result.Artifacts {
		key := requestID + "/" + artifact.Name
		url, err := h.Uploader.Upload(r.Context(), key, artifact.Data, artifact.ContentType())
		if err != nil {
			failed[string(artifact.Format)] = err.Error()
			continue
		}
		response[string(artifact.Format)+"_url"] = url
		succeeded++
	}
	if len(failed) > 0 {
		response["failed_formats"] = failed
	}

	if succeeded == 0 {
		writeError(w, http.StatusInternalServerError,
			fmt.Errorf("all artifact uploads failed: %v", failed))
		return
	}

	writeJson(w, response)
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.AuthToken == "" {
		return true
	}
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return token == h.AuthToken
}

// resolveInput produces a local PDF path from either an uploaded file or
// a "url" form value. The cleanup function removes anything resolveInput
// wrote to disk.
func (h *Handler) resolveInput(r *http.Request) (string, func(), error) {
	noop := func() {}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()

		// A per-request directory avoids collisions while keeping the
		// uploaded base name, which downstream artifact names derive from.
		dir := filepath.Join(h.Fetch.WorkDir, uuid.NewString())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", noop, fmt.Errorf("creating work directory: %w", err)
		}
		cleanup := func() { os.RemoveAll(dir) }

		name := filepath.Base(header.Filename)
		if name == "." || name == string(filepath.Separator) || name == "" {
			name = "upload.pdf"
		}
		dest := filepath.Join(dir, name)

		out, err := os.Create(dest)
		if err != nil {
			cleanup()
			return "", noop, fmt.Errorf("saving upload: %w", err)
		}
		_, copyErr := io.Copy(out, io.LimitReader(file, maxUploadBytes))
		closeErr := out.Close()
		if copyErr != nil || closeErr != nil {
			cleanup()
			return "", noop, fmt.Errorf("saving upload %s: %w", header.Filename, errors.Join(copyErr, closeErr))
		}
		return dest, cleanup, nil
	}

	if rawURL := r.FormValue("url"); rawURL != "" {
		client := h.Client
		if client == nil {
			client = http.DefaultClient
		}
		path, downloaded, err := fetch.Resolve(r.Context(), client, rawURL, h.Fetch)
		if err != nil {
			return "", noop, err
		}
		cleanup := noop
		if downloaded {
			cleanup = func() { os.Remove(path) }
		}
		return path, cleanup, nil
	}

	return "", noop, errors.New("provide a PDF upload (\"file\") or a \"url\" form value")
}

// requestFormats collects the requested format identifiers from repeated
// "formats" values, accepting comma-separated lists too. Missing formats
// default to csv.
func requestFormats(r *http.Request) []string {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return []string{"csv"}
	}

	var formats []string
	for _, value := range r.Form["formats"] {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				formats = append(formats, part)
			}
		}
	}
	if len(formats) == 0 {
		return []string{"csv"}
	}
	return formats
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)

	text := http.StatusText(code)
	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}
