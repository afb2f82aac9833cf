// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirUploader writes artifacts under a local directory and returns URLs
// below a base URL. The HTTP server pairs it with an /artifacts/ file
// route to self-host outputs when no object store is configured.
type DirUploader struct {
	dir     string
	baseURL string
}

// NewDirUploader stores artifacts under dir and derives URLs from
// baseURL (e.g. "http://localhost:8080/artifacts").
func NewDirUploader(dir, baseURL string) *DirUploader {
	return &DirUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes the payload to dir/key, creating intermediate
// directories as needed. Keys must stay below the artifact root.
func (u *DirUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid artifact key %q", key)
	}

	dest := filepath.Join(u.dir, clean)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("creating artifact directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", dest, err)
	}

	return u.baseURL + "/" + filepath.ToSlash(clean), nil
}
