package docsync

import (
	"regexp"
	"sort"
	"strings"
)

// shortcodeTagRe matches a single shortcode tag in either bracket style:
// {{< name >}}, {{< /name >}}, {{% name %}}, {{% /name %}}.
var shortcodeTagRe = regexp.MustCompile(`\{\{\s*([<%])\s*(/)?\s*(\w+)\s*([>%])\}\}`)

type shortcodeTag struct {
	start, end int
	style      byte
	name       string
	closing    bool
}

// StripShortcodes removes paired shortcode blocks, including everything
// between the opening and closing tag. Tags pair up only when both the name
// and the bracket style match. Nested blocks with the same name are tracked
// by depth, so the outermost matched pair is removed as a whole. Unmatched
// or mismatched tags are left untouched. Only bare tags are recognized:
// a tag carrying parameters, such as {{< tab title="x" >}}, is left alone.
func StripShortcodes(content string) string {
	tags := scanShortcodeTags(content)
	if len(tags) == 0 {
		return content
	}

	var stack []shortcodeTag
	var regions [][2]int
	for _, tag := range tags {
		if !tag.closing {
			stack = append(stack, tag)
			continue
		}
		for i := len(stack) - 1; i >= 0; i-- {
			open := stack[i]
			if open.style == tag.style && open.name == tag.name {
				regions = append(regions, [2]int{open.start, tag.end})
				stack = stack[:i]
				break
			}
		}
	}
	if len(regions) == 0 {
		return content
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i][0] < regions[j][0] })

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, r := range regions {
		if r[0] < last {
			// Contained in a region already removed.
			continue
		}
		b.WriteString(content[last:r[0]])
		last = r[1]
	}
	b.WriteString(content[last:])
	return b.String()
}

func scanShortcodeTags(content string) []shortcodeTag {
	matches := shortcodeTagRe.FindAllStringSubmatchIndex(content, -1)
	tags := make([]shortcodeTag, 0, len(matches))
	for _, m := range matches {
		open := content[m[2]]
		closer := content[m[8]]
		if (open == '<' && closer != '>') || (open == '%' && closer != '%') {
			continue
		}
		tags = append(tags, shortcodeTag{
			start:   m[0],
			end:     m[1],
			style:   open,
			name:    content[m[6]:m[7]],
			closing: m[4] >= 0,
		})
	}
	return tags
}
