package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsync"
)

// Ensure Indexer implements docsync.Indexer at compile time.
var _ docsync.Indexer = (*Indexer)(nil)

// Indexer builds the documentation index of a groomed tree and splices it
// into the index document.
type Indexer struct {
	Parser docsync.MetadataParser

	// LinkPrefix is prepended to every document path in the index,
	// e.g. "./references/ci/".
	LinkPrefix string

	// Heading is the level-two section title replaced in the index document.
	Heading string
}

// BuildIndex reads every markdown file under docRoot and renders the index.
func (x *Indexer) BuildIndex(ctx context.Context, docRoot string) (*docsync.Index, error) {
	root, err := filepath.Abs(docRoot)
	if err != nil {
		return nil, docsync.WrapError(docsync.EGROOM, err, "invalid document root %s", docRoot)
	}

	files, err := MarkdownFiles(root)
	if err != nil {
		return nil, docsync.WrapError(docsync.EGROOM, err, "failed to scan %s", root)
	}

	docs := make([]*docsync.Document, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, docsync.WrapError(docsync.EGROOM, err, "failed to read %s", path)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, docsync.WrapError(docsync.EGROOM, err, "failed to resolve %s", path)
		}

		meta := x.Parser.Parse(data)
		docs = append(docs, &docsync.Document{
			Path:        filepath.ToSlash(rel),
			Title:       meta.Title,
			Description: meta.Description,
			Hash:        fmt.Sprintf("%016x", xxhash.Sum64(data)),
			Size:        int64(len(data)),
		})
	}

	docsync.SortDocuments(docs)

	return &docsync.Index{
		Documents: docs,
		Text:      docsync.RenderIndex(filepath.Base(root), x.LinkPrefix, docs),
	}, nil
}

// UpdateIndexDocument replaces the index section of indexFile with text.
// The index document must already exist.
func (x *Indexer) UpdateIndexDocument(ctx context.Context, indexFile, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(indexFile)
	if errors.Is(err, os.ErrNotExist) {
		return docsync.Errorf(docsync.EGROOM, "index document not found at %s", indexFile)
	} else if err != nil {
		return docsync.WrapError(docsync.EGROOM, err, "failed to read index document %s", indexFile)
	}

	data, err := os.ReadFile(indexFile)
	if err != nil {
		return docsync.WrapError(docsync.EGROOM, err, "failed to read index document %s", indexFile)
	}

	heading := x.Heading
	if heading == "" {
		heading = docsync.DefaultIndexHeading
	}

	updated := docsync.ReplaceSection(string(data), heading, text)
	if updated == string(data) {
		return nil
	}

	if err := WriteFileAtomic(indexFile, []byte(updated), info.Mode().Perm()); err != nil {
		return docsync.WrapError(docsync.EGROOM, err, "failed to write index document %s", indexFile)
	}
	return nil
}
