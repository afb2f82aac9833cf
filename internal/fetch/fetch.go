// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch resolves a scoresheet reference (a local filesystem path
// or a remote URL) to a readable PDF on the local filesystem.
package fetch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scoresheet-engine/internal/httputil"
	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

// SourceType classifies an input scoresheet reference.
type SourceType int

const (
	SourceUnknown SourceType = iota
	SourcePath
	SourceURL
)

func (t SourceType) String() string {
	switch t {
	case SourcePath:
		return "path"
	case SourceURL:
		return "url"
	default:
		return "unknown"
	}
}

// Classify determines whether the reference is a local path or a remote
// URL and returns the trimmed form. A reference that is neither an
// http(s) URL nor an existing file classifies as SourceUnknown.
func Classify(reference string) (SourceType, string) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return SourceUnknown, reference
	}

	if u, err := url.Parse(reference); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return SourceURL, reference
	}

	if info, err := os.Stat(reference); err == nil && !info.IsDir() {
		return SourcePath, reference
	}

	return SourceUnknown, reference
}

// Slug returns a filesystem-safe filename stem for a remote reference,
// taken from the last URL path element. URLs without a usable filename
// fall back to a hash-derived stem so downloads never collide on "".
func Slug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return urlHashSlug(rawURL)
	}
	base := strings.TrimSuffix(filepath.Base(u.Path), filepath.Ext(u.Path))
	if base == "" || base == "." || base == "/" {
		return urlHashSlug(rawURL)
	}
	return base
}

func urlHashSlug(rawURL string) string {
	h := sha256.Sum256([]byte(rawURL))
	return fmt.Sprintf("sheet-%x", h[:8])
}

// Resolve returns a local path for the reference, downloading it first
// when the reference is remote. The second return value reports whether a
// download happened (the caller owns cleanup of downloaded files).
func Resolve(ctx context.Context, client *http.Client, reference string, cfg types.FetchConfig) (localPath string, downloaded bool, err error) {
	srcType, ref := Classify(reference)
	switch srcType {
	case SourcePath:
		return ref, false, nil
	case SourceURL:
		dest := filepath.Join(cfg.WorkDir, Slug(ref)+".pdf")
		if err := Download(ctx, client, ref, dest, cfg); err != nil {
			return "", false, fmt.Errorf("fetch failed: %w", err)
		}
		return dest, true, nil
	default:
		return "", false, fmt.Errorf("unrecognized scoresheet reference %q (not an existing file or http(s) URL)", reference)
	}
}

// Download fetches url to destPath using a temporary file that is renamed
// into place on success, so a failed download never leaves a partial PDF
// behind. Rate-limited responses are retried via httputil.DoWithRetry.
func Download(ctx context.Context, client *http.Client, rawURL, destPath string, cfg types.FetchConfig) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
