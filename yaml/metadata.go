// Package yaml provides a docsync.MetadataParser for YAML frontmatter
// blocks using gopkg.in/yaml.v3.
package yaml

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/docsync"
	"gopkg.in/yaml.v3"
)

// frontmatterRe matches a leading block delimited by --- lines.
var frontmatterRe = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|\z)`)

// Ensure MetadataParser implements docsync.MetadataParser at compile time.
var _ docsync.MetadataParser = (*MetadataParser)(nil)

// MetadataParser extracts title and description from YAML frontmatter.
type MetadataParser struct{}

// NewMetadataParser creates a new MetadataParser.
func NewMetadataParser() *MetadataParser {
	return &MetadataParser{}
}

// Parse returns the title and description of the leading frontmatter block.
// Missing, malformed or non-mapping frontmatter yields zero Metadata.
func (p *MetadataParser) Parse(content []byte) docsync.Metadata {
	m := frontmatterRe.FindSubmatch(content)
	if m == nil {
		return docsync.Metadata{}
	}

	var fields map[string]any
	if err := yaml.Unmarshal(m[1], &fields); err != nil {
		return docsync.Metadata{}
	}

	return docsync.Metadata{
		Title:       stringField(fields, "title"),
		Description: stringField(fields, "description"),
	}
}

func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
