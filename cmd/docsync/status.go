package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/docsync"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	state, err := deps.Locks.Load()
	if err != nil {
		return err
	}

	if state == nil {
		fmt.Fprintln(deps.Stdout, "No sync has run yet.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Last run:        %s (%s)\n", state.LastRun.Local().Format("2006-01-02 15:04:05"), humanize.Time(state.LastRun))
	fmt.Fprintf(deps.Stdout, "Last status:     %s\n", state.LastStatus)
	fmt.Fprintf(deps.Stdout, "Files processed: %d\n", state.FilesProcessed)

	if remaining := deps.Gate.Remaining(state); remaining > 0 {
		fmt.Fprintf(deps.Stdout, "Next update in:  %s\n", formatDuration(remaining))
	} else {
		fmt.Fprintln(deps.Stdout, "Next update:     now")
	}

	if deps.Documents != nil {
		docs, err := deps.Documents.FindDocuments(deps.Ctx, docsync.DocumentFilter{})
		if err != nil {
			return err
		}
		var size int64
		for _, doc := range docs {
			size += doc.Size
		}
		fmt.Fprintf(deps.Stdout, "Published:       %d documents, %s\n", len(docs), humanize.Bytes(uint64(size)))
	}

	return nil
}
