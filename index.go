package docsync

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// Index is the generated listing of a document tree.
type Index struct {
	Documents []*Document
	Text      string
}

// SortDocuments orders documents directory-then-name, comparing paths
// component by component.
func SortDocuments(docs []*Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		di, ni := path.Split(docs[i].Path)
		dj, nj := path.Split(docs[j].Path)
		if c := compareParts(splitDir(di), splitDir(dj)); c != 0 {
			return c < 0
		}
		return ni < nj
	})
}

// RenderIndex renders a nested tree listing of docs. Each file links to
// linkPrefix + its path and, when present, carries its description on the
// following line. docs must already be sorted with SortDocuments.
// The output depends only on its arguments.
func RenderIndex(rootName, linkPrefix string, docs []*Document) string {
	if len(docs) == 0 {
		return "*No markdown files found*\n"
	}

	lines := []string{"```text", rootName + "/"}
	emitted := make(map[string]bool)

	for _, doc := range docs {
		dir, name := path.Split(doc.Path)
		parts := splitDir(dir)

		for i := range parts {
			key := strings.Join(parts[:i+1], "/")
			if emitted[key] {
				continue
			}
			emitted[key] = true
			lines = append(lines, strings.Repeat("  ", i+1)+"├── "+parts[i]+"/")
		}

		title := collapse(doc.Title)
		if title == "" {
			title = name
		}
		fileIndent := strings.Repeat("  ", len(parts)+1)
		lines = append(lines, fileIndent+"├── ["+title+"]("+linkPrefix+doc.Path+")")

		if desc := collapse(doc.Description); desc != "" {
			lines = append(lines, fileIndent+"    "+desc)
		}
	}

	lines = append(lines, "```")
	return strings.Join(lines, "\n") + "\n"
}

// ReplaceSection replaces the body of the level-two section titled heading
// with body, up to the next level-two heading or end of content. When the
// section does not exist it is appended.
func ReplaceSection(content, heading, body string) string {
	section := "## " + heading + "\n\n" + body + "\n"

	headingRe := regexp.MustCompile(`(?m)^## ` + regexp.QuoteMeta(heading) + `[ \t]*(?:\r?\n|\z)`)
	loc := headingRe.FindStringIndex(content)
	if loc == nil {
		trimmed := strings.TrimRight(content, " \t\r\n")
		if trimmed == "" {
			return section
		}
		return trimmed + "\n\n" + section
	}

	end := len(content)
	nextRe := regexp.MustCompile(`(?m)^## `)
	if next := nextRe.FindStringIndex(content[loc[1]:]); next != nil {
		end = loc[1] + next[0]
	}

	return content[:loc[0]] + section + content[end:]
}

func splitDir(dir string) []string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}

func compareParts(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return strings.Compare(a[i], b[i])
		}
	}
	return len(a) - len(b)
}

// collapse joins runs of whitespace so multi-line values stay on one line.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
