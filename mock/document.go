package mock

import (
	"context"

	"github.com/fwojciec/docsync"
)

var _ docsync.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docsync.DocumentService.
type DocumentService struct {
	ReplaceDocumentsFn func(ctx context.Context, runID string, docs []*docsync.Document) error
	FindDocumentsFn    func(ctx context.Context, filter docsync.DocumentFilter) ([]*docsync.Document, error)
}

func (s *DocumentService) ReplaceDocuments(ctx context.Context, runID string, docs []*docsync.Document) error {
	return s.ReplaceDocumentsFn(ctx, runID, docs)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter docsync.DocumentFilter) ([]*docsync.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

var _ docsync.MetadataParser = (*MetadataParser)(nil)

// MetadataParser is a mock implementation of docsync.MetadataParser.
type MetadataParser struct {
	ParseFn func(content []byte) docsync.Metadata
}

func (p *MetadataParser) Parse(content []byte) docsync.Metadata {
	return p.ParseFn(content)
}
