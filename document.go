package docsync

import (
	"context"
	"time"
)

// Metadata holds the fields read from a document's leading metadata block.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MetadataParser reads the leading metadata block of a markdown document.
type MetadataParser interface {
	// Parse returns the metadata of content. Content without a metadata
	// block, or with an unparsable one, yields zero Metadata and no error.
	Parse(content []byte) Metadata
}

// Document represents one published markdown file.
type Document struct {
	// Path is slash-separated and relative to the document root.
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Hash        string    `json:"hash"`
	Size        int64     `json:"size"`
	RunID       string    `json:"runId"`
	PublishedAt time.Time `json:"publishedAt"`
}

// DocumentService represents a catalog of the currently published documents.
type DocumentService interface {
	// ReplaceDocuments replaces the whole catalog with docs.
	ReplaceDocuments(ctx context.Context, runID string, docs []*Document) error

	// FindDocuments returns the catalog ordered by path.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	PathPrefix *string `json:"pathPrefix"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ChangeSet counts differences between two generations of a document tree.
type ChangeSet struct {
	Added   int `json:"added"`
	Changed int `json:"changed"`
	Removed int `json:"removed"`
}

// Empty reports whether no document changed.
func (c ChangeSet) Empty() bool {
	return c.Added == 0 && c.Changed == 0 && c.Removed == 0
}

// DiffDocuments compares two generations by path and content hash.
func DiffDocuments(previous, current []*Document) ChangeSet {
	old := make(map[string]string, len(previous))
	for _, doc := range previous {
		old[doc.Path] = doc.Hash
	}

	var cs ChangeSet
	for _, doc := range current {
		hash, ok := old[doc.Path]
		switch {
		case !ok:
			cs.Added++
		case hash != doc.Hash:
			cs.Changed++
		}
		delete(old, doc.Path)
	}
	cs.Removed = len(old)
	return cs
}
