package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/docsync"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	var filter docsync.DocumentFilter
	if c.Prefix != "" {
		filter.PathPrefix = &c.Prefix
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No published documents. Use 'docsync sync' to fetch them.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Published documents (%d total):\n\n", len(docs))
	for _, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.Path
		}
		fmt.Fprintf(deps.Stdout, "  %s  %s\n     %s\n", doc.Path, humanize.Bytes(uint64(doc.Size)), title)
	}

	return nil
}
