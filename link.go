package docsync

import (
	"path/filepath"
	"regexp"
	"strings"
)

// linkRe matches inline markdown links: [text](target).
var linkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// LinkKind classifies how a link target was rewritten.
type LinkKind int

// LinkKind constants.
const (
	LinkUnchanged LinkKind = iota
	LinkInternal
	LinkExternal
)

func (k LinkKind) String() string {
	switch k {
	case LinkInternal:
		return "internal"
	case LinkExternal:
		return "external"
	default:
		return "unchanged"
	}
}

// LinkReference is a single link found while grooming a file.
type LinkReference struct {
	SourceFile string
	RawTarget  string
	Resolved   string
	Kind       LinkKind
}

// LinkStats summarizes link rewriting across a tree.
type LinkStats struct {
	Internal  int `json:"internal"`
	External  int `json:"external"`
	Unchanged int `json:"unchanged"`

	// DistinctExternal is the approximate number of distinct external targets.
	DistinctExternal int `json:"distinctExternal"`
}

// Add records one link reference.
func (s *LinkStats) Add(ref LinkReference) {
	switch ref.Kind {
	case LinkInternal:
		s.Internal++
	case LinkExternal:
		s.External++
	default:
		s.Unchanged++
	}
}

// LinkRewriter rewrites relative markdown links so they keep working once
// the document root is published on its own.
type LinkRewriter struct {
	// Root is the absolute path of the document root.
	Root string

	// Area is the absolute path of the broader document area that contains
	// Root. Defaults to the parent of Root.
	Area string

	// RawURLTemplate is used for targets inside Area but outside Root.
	// The "{path}" placeholder is replaced by the Area-relative path.
	RawURLTemplate string
}

// Resolve classifies and rewrites a single link target found in sourceFile.
func (r *LinkRewriter) Resolve(sourceFile, target string) LinkReference {
	ref := LinkReference{SourceFile: sourceFile, RawTarget: target, Resolved: target}

	if isPassthroughTarget(target) {
		return ref
	}

	path := filepath.FromSlash(target)
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(sourceFile), path)
	}
	path = filepath.Clean(path)

	if rel, ok := within(r.Root, path); ok {
		ref.Resolved = "./" + filepath.ToSlash(rel)
		ref.Kind = LinkInternal
		return ref
	}

	if rel, ok := within(r.area(), path); ok {
		ref.Resolved = strings.ReplaceAll(r.template(), "{path}", filepath.ToSlash(rel))
		ref.Kind = LinkExternal
		return ref
	}

	return ref
}

// Rewrite rewrites every link in content, which was read from sourceFile.
// It returns the new content and every link it examined.
func (r *LinkRewriter) Rewrite(content, sourceFile string) (string, []LinkReference) {
	matches := linkRe.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	refs := make([]LinkReference, 0, len(matches))
	var b strings.Builder
	b.Grow(len(content))

	last := 0
	for _, m := range matches {
		text := content[m[2]:m[3]]
		target := content[m[4]:m[5]]

		ref := r.Resolve(sourceFile, target)
		refs = append(refs, ref)

		b.WriteString(content[last:m[0]])
		if ref.Kind == LinkUnchanged {
			b.WriteString(content[m[0]:m[1]])
		} else {
			b.WriteString("[" + text + "](" + ref.Resolved + ")")
		}
		last = m[1]
	}
	b.WriteString(content[last:])

	return b.String(), refs
}

func (r *LinkRewriter) area() string {
	if r.Area == "" {
		return filepath.Dir(r.Root)
	}
	return r.Area
}

func (r *LinkRewriter) template() string {
	if r.RawURLTemplate == "" {
		return DefaultRawURLTemplate
	}
	return r.RawURLTemplate
}

// isPassthroughTarget reports whether a link target is left alone:
// absolute URLs, same-document anchors, and mailto links.
func isPassthroughTarget(target string) bool {
	for _, prefix := range []string{"http://", "https://", "#", "mailto:"} {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}

// within returns path relative to base when path lies inside base.
func within(base, path string) (string, bool) {
	if base == "" {
		return "", false
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
