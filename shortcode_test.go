package docsync_test

import (
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/stretchr/testify/assert"
)

func TestStripShortcodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "angle block alone",
			content: "{{< details >}}\nContent\n{{< /details >}}",
			want:    "",
		},
		{
			name:    "angle block between text",
			content: "Text\n{{< history >}}\nVersion info\n{{< /history >}}\nMore text",
			want:    "Text\n\nMore text",
		},
		{
			name:    "percent block spanning lines",
			content: "Before\n{{% alert %}}\nline one\nline two\n{{% /alert %}}\nAfter",
			want:    "Before\n\nAfter",
		},
		{
			name:    "tolerates whitespace inside delimiters",
			content: "a{{<history>}}x{{ < / history >}}b",
			want:    "ab",
		},
		{
			name:    "mismatched names are left untouched",
			content: "{{< details >}}\nkeep\n{{< /history >}}",
			want:    "{{< details >}}\nkeep\n{{< /history >}}",
		},
		{
			name:    "unmatched opening tag is left untouched",
			content: "{{< details >}}\nno close",
			want:    "{{< details >}}\nno close",
		},
		{
			name:    "unmatched closing tag is left untouched",
			content: "stray {{% /alert %}} tag",
			want:    "stray {{% /alert %}} tag",
		},
		{
			name:    "bracket styles do not pair with each other",
			content: "{{< alert >}}x{{% /alert %}}",
			want:    "{{< alert >}}x{{% /alert %}}",
		},
		{
			name:    "non-greedy between separate blocks",
			content: "{{< a >}}1{{< /a >}}keep{{< a >}}2{{< /a >}}",
			want:    "keep",
		},
		{
			name:    "nested same-name blocks removed as a whole",
			content: "x{{< d >}}a{{< d >}}b{{< /d >}}c{{< /d >}}y",
			want:    "xy",
		},
		{
			name:    "nested different styles",
			content: "x{{< outer >}}a{{% inner %}}b{{% /inner %}}c{{< /outer >}}y",
			want:    "xy",
		},
		{
			name:    "link-like text inside a block is removed with it",
			content: "{{< history >}}\n[old](../old.md)\n{{< /history >}}done",
			want:    "done",
		},
		{
			name:    "tags with parameters are left untouched",
			content: "{{< tab title=\"x\" >}}\nbody\n{{< /tab >}}",
			want:    "{{< tab title=\"x\" >}}\nbody\n{{< /tab >}}",
		},
		{
			name:    "no shortcodes",
			content: "# Title\n\nplain {{ template }} text",
			want:    "# Title\n\nplain {{ template }} text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, docsync.StripShortcodes(tt.content))
		})
	}
}
