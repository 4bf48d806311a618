package docsync

import "path/filepath"

// Default locations, relative to the working directory.
const (
	DefaultArchiveURL     = "https://gitlab.com/gitlab-org/gitlab/-/archive/master/gitlab-master.tar.gz?path=doc/ci"
	DefaultDocsSubpath    = "doc/ci"
	DefaultRawURLTemplate = "https://gitlab.com/gitlab-org/gitlab/-/raw/master/doc/{path}?ref_type=heads"
	DefaultIndexHeading   = "Documentation Index"

	DefaultPublishedDir = "references/ci"
	DefaultScratchDir   = "references/ci-new"
	DefaultArchiveName  = "gitlab-ci-docs.tar.gz"
	DefaultIndexFile    = "SKILL.md"
	DefaultLockFile     = ".sync-gitlab-docs.lock"
	DefaultGuardFile    = ".docsync.run"
	DefaultDBFile       = ".docsync.db"
)

// Layout holds the resolved filesystem locations used by one pipeline run.
type Layout struct {
	WorkDir      string
	PublishedDir string
	ScratchDir   string
	ArchivePath  string
	IndexFile    string
	LockFile     string
	GuardFile    string
	DBPath       string
}

// NewLayout returns the default layout rooted at workDir.
func NewLayout(workDir string) Layout {
	return Layout{
		WorkDir:      workDir,
		PublishedDir: filepath.Join(workDir, filepath.FromSlash(DefaultPublishedDir)),
		ScratchDir:   filepath.Join(workDir, filepath.FromSlash(DefaultScratchDir)),
		ArchivePath:  filepath.Join(workDir, DefaultArchiveName),
		IndexFile:    filepath.Join(workDir, DefaultIndexFile),
		LockFile:     filepath.Join(workDir, DefaultLockFile),
		GuardFile:    filepath.Join(workDir, DefaultGuardFile),
		DBPath:       filepath.Join(workDir, DefaultDBFile),
	}
}

// IndexLinkPrefix returns the link prefix used by index entries so that
// links in the index document resolve to the published tree.
// Example: index at /w/SKILL.md, published at /w/references/ci → "./references/ci/".
func (l Layout) IndexLinkPrefix() string {
	rel, err := filepath.Rel(filepath.Dir(l.IndexFile), l.PublishedDir)
	if err != nil {
		return "./" + filepath.ToSlash(filepath.Base(l.PublishedDir)) + "/"
	}
	return "./" + filepath.ToSlash(rel) + "/"
}
