package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsync"
)

// Ensure TreeValidator implements docsync.TreeValidator at compile time.
var _ docsync.TreeValidator = (*TreeValidator)(nil)

// TreeValidator checks that an extracted archive has the expected shape:
// exactly one top-level directory containing Subpath with markdown in it.
type TreeValidator struct {
	Subpath string
}

// NewTreeValidator creates a TreeValidator for the given subpath.
// An empty subpath means docsync.DefaultDocsSubpath.
func NewTreeValidator(subpath string) *TreeValidator {
	if subpath == "" {
		subpath = docsync.DefaultDocsSubpath
	}
	return &TreeValidator{Subpath: subpath}
}

// Validate returns the path of the document root inside extractedDir.
func (v *TreeValidator) Validate(ctx context.Context, extractedDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(extractedDir)
	if err != nil {
		return "", docsync.WrapError(docsync.EVALIDATE, err, "failed to read extraction directory %s", extractedDir)
	}
	if len(entries) == 0 {
		return "", docsync.Errorf(docsync.EVALIDATE, "extraction produced no files in %s", extractedDir)
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		return "", docsync.Errorf(docsync.EVALIDATE, "unexpected extraction structure in %s: %v", extractedDir, names)
	}

	top := filepath.Join(extractedDir, entries[0].Name())
	docRoot := filepath.Join(top, filepath.FromSlash(v.Subpath))

	info, err := os.Stat(docRoot)
	if err != nil || !info.IsDir() {
		return "", docsync.Errorf(docsync.EVALIDATE, "expected %s directory not found at %s (parent: %s)", v.Subpath, docRoot, top)
	}

	files, err := MarkdownFiles(docRoot)
	if err != nil {
		return "", docsync.WrapError(docsync.EVALIDATE, err, "failed to scan %s", docRoot)
	}
	if len(files) == 0 {
		return "", docsync.Errorf(docsync.EVALIDATE, "no markdown files found in %s", docRoot)
	}

	return docRoot, nil
}
