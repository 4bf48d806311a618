package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/docsync"
)

// Compile-time interface verification.
var _ docsync.DocumentService = (*DocumentService)(nil)

// DocumentService implements docsync.DocumentService using SQLite.
type DocumentService struct {
	db *DB

	// Now returns the publish timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db, Now: time.Now}
}

// ReplaceDocuments replaces the whole catalog with docs in one transaction.
func (s *DocumentService) ReplaceDocuments(ctx context.Context, runID string, docs []*docsync.Document) error {
	if runID == "" {
		return docsync.Errorf(docsync.EINVALID, "run ID required")
	}
	for _, doc := range docs {
		if doc.Path == "" {
			return docsync.Errorf(docsync.EINVALID, "document path required")
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (path, title, description, hash, size, run_id, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	publishedAt := s.Now().UTC()
	for _, doc := range docs {
		if _, err := stmt.ExecContext(ctx, doc.Path, doc.Title, doc.Description, doc.Hash,
			doc.Size, runID, formatTime(publishedAt)); err != nil {
			return err
		}
		doc.RunID = runID
		doc.PublishedAt = publishedAt
	}

	return tx.Commit()
}

// FindDocuments retrieves catalog entries matching the filter, ordered by path.
func (s *DocumentService) FindDocuments(ctx context.Context, filter docsync.DocumentFilter) ([]*docsync.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT path, title, description, hash, size, run_id, published_at FROM documents WHERE 1=1")

	if filter.PathPrefix != nil && *filter.PathPrefix != "" {
		query.WriteString(" AND instr(path, ?) = 1")
		args = append(args, *filter.PathPrefix)
	}

	query.WriteString(" ORDER BY path ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docsync.Document
	for rows.Next() {
		var doc docsync.Document
		var publishedAt string

		if err := rows.Scan(&doc.Path, &doc.Title, &doc.Description, &doc.Hash, &doc.Size,
			&doc.RunID, &publishedAt); err != nil {
			return nil, err
		}

		if doc.PublishedAt, err = parseTime(publishedAt, "published_at"); err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
