// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "service-token"), []byte("tok-123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s3-endpoint"), []byte("  https://minio.local  "), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("nope"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("   "), 0o600))

	got, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"service-token": "tok-123",
		"s3-endpoint":   "https://minio.local",
	}, got)
}

func TestLoad_MissingDirectory(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDefault(t *testing.T) {
	s := map[string]string{"service-token": "from-file"}
	assert.Equal(t, "from-flag", Default(s, "service-token", "from-flag"))
	assert.Equal(t, "from-file", Default(s, "service-token", ""))
	assert.Equal(t, "", Default(s, "missing", ""))
}
