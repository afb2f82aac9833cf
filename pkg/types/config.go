// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scoresheet-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for resolving and downloading input PDFs.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// WorkDir is the directory remote PDFs are downloaded into.
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// MaxRetries is the number of retry attempts on rate-limited
	// downloads (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ConvertConfig holds settings for a single conversion run.
type ConvertConfig struct {
	// Formats lists the requested output format identifiers. Unknown
	// identifiers are skipped with a diagnostic, not an error.
	Formats []Format `json:"formats" yaml:"formats"`

	// OutputDir is the directory artifacts are written into. Empty means
	// the current directory.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// UploadConfig holds settings for publishing artifacts to object storage.
type UploadConfig struct {
	// Bucket is the S3 bucket artifacts are uploaded to. Empty disables
	// object-storage upload; the server then self-hosts artifacts.
	Bucket string `json:"bucket" yaml:"bucket"`

	// Prefix is prepended to every object key (e.g. "scoresheets/").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Endpoint overrides the S3 endpoint URL, for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// ServerConfig holds settings for the HTTP service mode.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ArtifactDir is where self-hosted artifacts are stored.
	ArtifactDir string `json:"artifact_dir" yaml:"artifact_dir"`

	// BaseURL is the externally visible base URL used when building
	// artifact references (e.g. "http://localhost:8080").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// AuthToken, when set, requires requests to carry it as a bearer token.
	AuthToken string `json:"auth_token,omitempty" yaml:"auth_token,omitempty"`

	Upload UploadConfig `json:"upload" yaml:"upload"`
}
