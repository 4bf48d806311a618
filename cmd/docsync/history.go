package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docsync"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := docsync.RunFilter{Limit: c.Limit}
	if c.Status != "" {
		status := docsync.Status(c.Status)
		switch status {
		case docsync.StatusSuccess, docsync.StatusFailure, docsync.StatusSkipped:
		default:
			err := docsync.Errorf(docsync.EINVALID, "unknown status %q", c.Status)
			return err
		}
		filter.Status = &status
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'docsync sync' to run one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %-11s  %4d files  %s",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status, r.Stage, r.FilesProcessed,
			r.Duration().Round(10*time.Millisecond))
		if r.Error != "" {
			fmt.Fprintf(deps.Stdout, "  %s", r.Error)
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
