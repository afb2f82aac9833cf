// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upload publishes finished artifacts and returns the URL a
// caller can retrieve them from. Implementations exist for S3-compatible
// object storage (service and Lambda modes) and for a local directory
// served by the HTTP server itself.
package upload

import "context"

// Uploader stores one artifact payload under key and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
