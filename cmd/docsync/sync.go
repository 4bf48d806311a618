package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/pipeline"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Checking for documentation updates...")

	result, err := deps.Syncer.Sync(deps.Ctx, pipeline.Options{
		URL:      c.URL,
		Layout:   deps.Layout,
		Force:    c.Force,
		KeepTemp: c.NoCleanup,
		Events:   progressPrinter(deps),
	})

	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(deps.Stderr, "Update interrupted by user")
		return err
	case err != nil:
		if result != nil && result.Stage != docsync.StateIdle {
			fmt.Fprintf(deps.Stderr, "failed while %s\n", result.Stage)
		}
		return err
	case result.Skipped:
		fmt.Fprintf(deps.Stdout, "Skipping update: cooldown active, next update in %s (use --force to override)\n",
			formatDuration(result.Remaining))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Successfully updated %d files\n", result.FilesProcessed)
	fmt.Fprintf(deps.Stdout, "Links: %d internal, %d external (%d distinct), %d unchanged\n",
		result.Links.Internal, result.Links.External, result.Links.DistinctExternal, result.Links.Unchanged)
	if !result.Changes.Empty() {
		fmt.Fprintf(deps.Stdout, "Changes: %d added, %d changed, %d removed\n",
			result.Changes.Added, result.Changes.Changed, result.Changes.Removed)
	}
	return nil
}

// progressPrinter reports state changes on stdout and download progress on
// stderr.
func progressPrinter(deps *Dependencies) docsync.EventFunc {
	return func(e docsync.Event) {
		if d := e.Download; d != nil {
			if d.Total > 0 {
				fmt.Fprintf(deps.Stderr, "\rDownloaded %s of %s", humanize.Bytes(uint64(d.Written)), humanize.Bytes(uint64(d.Total)))
			} else {
				fmt.Fprintf(deps.Stderr, "\rDownloaded %s", humanize.Bytes(uint64(d.Written)))
			}
			return
		}
		switch e.State {
		case docsync.StateFetching:
			fmt.Fprintln(deps.Stdout, "Downloading documentation archive...")
		case docsync.StateExtracting:
			fmt.Fprintln(deps.Stderr)
			fmt.Fprintln(deps.Stdout, "Extracting archive...")
		case docsync.StateValidating:
			fmt.Fprintln(deps.Stdout, "Validating extracted tree...")
		case docsync.StateGrooming:
			fmt.Fprintln(deps.Stdout, "Processing markdown files...")
		case docsync.StateIndexing:
			fmt.Fprintln(deps.Stdout, "Updating documentation index...")
		case docsync.StatePublishing:
			fmt.Fprintln(deps.Stdout, "Publishing documentation...")
		}
	}
}

// formatDuration renders a duration in days, hours and minutes.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
