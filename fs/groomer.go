package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files groomed in parallel.
const DefaultConcurrency = 8

// Ensure Groomer implements docsync.Groomer at compile time.
var _ docsync.Groomer = (*Groomer)(nil)

// Groomer rewrites links and strips shortcodes from every markdown file
// under a document root, in place.
type Groomer struct {
	RawURLTemplate string
	Concurrency    int
}

// NewGroomer creates a Groomer. Zero values select the defaults.
func NewGroomer(rawURLTemplate string, concurrency int) *Groomer {
	return &Groomer{RawURLTemplate: rawURLTemplate, Concurrency: concurrency}
}

// Groom processes every .md file under docRoot. Links are rewritten before
// shortcodes are removed.
func (g *Groomer) Groom(ctx context.Context, docRoot string) (*docsync.GroomResult, error) {
	root, err := filepath.Abs(docRoot)
	if err != nil {
		return nil, docsync.WrapError(docsync.EGROOM, err, "invalid document root %s", docRoot)
	}

	files, err := MarkdownFiles(root)
	if err != nil {
		return nil, docsync.WrapError(docsync.EGROOM, err, "failed to scan %s", root)
	}
	if len(files) == 0 {
		return nil, docsync.Errorf(docsync.EGROOM, "no markdown files found in %s", root)
	}

	rewriter := &docsync.LinkRewriter{Root: root, RawURLTemplate: g.RawURLTemplate}

	concurrency := g.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	refs := make([][]docsync.LinkReference, len(files))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, path := range files {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found, err := groomFile(rewriter, path)
			if err != nil {
				rel, _ := filepath.Rel(root, path)
				return docsync.WrapError(docsync.EGROOM, err, "failed to process %s", rel)
			}
			refs[i] = found
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := &docsync.GroomResult{Files: len(files)}

	total := 0
	for _, r := range refs {
		total += len(r)
	}
	seen := bloom.NewFilter(uint(total), 0.001)
	for _, r := range refs {
		for _, ref := range r {
			result.Links.Add(ref)
			if ref.Kind == docsync.LinkExternal && !seen.Seen(ref.Resolved) {
				result.Links.DistinctExternal++
			}
		}
	}

	return result, nil
}

func groomFile(rewriter *docsync.LinkRewriter, path string) ([]docsync.LinkReference, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	original := string(data)
	content, refs := rewriter.Rewrite(original, path)
	content = docsync.StripShortcodes(content)

	if content != original {
		if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
			return nil, err
		}
	}
	return refs, nil
}
