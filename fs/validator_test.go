package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/fs"
	"github.com/fwojciec/docsync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Extracted Tree Validation
// Only a single top-level directory holding doc/ci with markdown passes.

func TestTreeValidator_ReturnsDocumentRoot(t *testing.T) {
	t.Parallel()

	// Given an extraction with one top directory and doc/ci markdown
	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"gitlab-master-doc-ci/doc/ci/index.md":       "# CI",
		"gitlab-master-doc-ci/doc/ci/yaml/_index.md": "# YAML",
	})

	// When I validate
	root, err := fs.NewTreeValidator("").Validate(context.Background(), dir)

	// Then the document root is returned
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gitlab-master-doc-ci", "doc", "ci"), root)
}

func TestTreeValidator_RejectsBadShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantMsg string
	}{
		{
			name:    "empty extraction",
			files:   nil,
			wantMsg: "extraction produced no files",
		},
		{
			name: "two top-level entries",
			files: map[string]string{
				"a/doc/ci/index.md": "x",
				"b/doc/ci/index.md": "x",
			},
			wantMsg: "unexpected extraction structure",
		},
		{
			name:    "top-level file",
			files:   map[string]string{"README.md": "x"},
			wantMsg: "unexpected extraction structure",
		},
		{
			name:    "missing subpath",
			files:   map[string]string{"top/doc/api/index.md": "x"},
			wantMsg: "expected doc/ci directory not found",
		},
		{
			name:    "no markdown",
			files:   map[string]string{"top/doc/ci/image.png": "x"},
			wantMsg: "no markdown files found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			testutil.WriteTree(t, dir, tt.files)

			_, err := fs.NewTreeValidator("doc/ci").Validate(context.Background(), dir)

			require.Error(t, err)
			assert.Equal(t, docsync.EVALIDATE, docsync.ErrorCode(err))
			assert.Contains(t, docsync.ErrorMessage(err), tt.wantMsg)
		})
	}
}

func TestTreeValidator_SubpathIsFileNotDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "top", "doc"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top", "doc", "ci"), []byte("x"), 0644))

	_, err := fs.NewTreeValidator("doc/ci").Validate(context.Background(), dir)

	require.Error(t, err)
	assert.Equal(t, docsync.EVALIDATE, docsync.ErrorCode(err))
}

func TestTreeValidator_MissingExtractionDir(t *testing.T) {
	t.Parallel()

	_, err := fs.NewTreeValidator("").Validate(context.Background(), filepath.Join(t.TempDir(), "nope"))

	require.Error(t, err)
	assert.Equal(t, docsync.EVALIDATE, docsync.ErrorCode(err))
}
