package docsync_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/stretchr/testify/assert"
)

func newRewriter() *docsync.LinkRewriter {
	return &docsync.LinkRewriter{
		Root:           filepath.FromSlash("/x/top/doc/ci"),
		RawURLTemplate: docsync.DefaultRawURLTemplate,
	}
}

func TestLinkRewriter_Rewrite(t *testing.T) {
	t.Parallel()

	yamlFile := filepath.FromSlash("/x/top/doc/ci/yaml/index.md")

	tests := []struct {
		name    string
		source  string
		content string
		want    string
	}{
		{
			name:    "sibling directory inside root becomes root-relative",
			source:  yamlFile,
			content: "See [pipelines](../pipelines/index.md).",
			want:    "See [pipelines](./pipelines/index.md).",
		},
		{
			name:    "same directory link",
			source:  yamlFile,
			content: "[keywords](keywords.md)",
			want:    "[keywords](./yaml/keywords.md)",
		},
		{
			name:    "outside root but inside doc area becomes raw URL",
			source:  yamlFile,
			content: "[api](../../api/api_resources.md)",
			want:    "[api](https://gitlab.com/gitlab-org/gitlab/-/raw/master/doc/api/api_resources.md?ref_type=heads)",
		},
		{
			name:    "outside doc area is unchanged",
			source:  yamlFile,
			content: "[readme](../../../README.md)",
			want:    "[readme](../../../README.md)",
		},
		{
			name:    "absolute URL is unchanged",
			source:  yamlFile,
			content: "[site](https://example.com/a.md) and [plain](http://example.com)",
			want:    "[site](https://example.com/a.md) and [plain](http://example.com)",
		},
		{
			name:    "anchor is unchanged",
			source:  yamlFile,
			content: "[below](#configuration)",
			want:    "[below](#configuration)",
		},
		{
			name:    "mailto is unchanged",
			source:  yamlFile,
			content: "[mail](mailto:docs@example.com)",
			want:    "[mail](mailto:docs@example.com)",
		},
		{
			name:    "resolves relative to the file, not the root",
			source:  filepath.FromSlash("/x/top/doc/ci/a/b/c/deep.md"),
			content: "[up](../../sibling.md)",
			want:    "[up](./a/sibling.md)",
		},
		{
			name:    "multiple links on one line",
			source:  yamlFile,
			content: "[a](a.md), [b](#b), [c](../../c.md)",
			want:    "[a](./yaml/a.md), [b](#b), [c](https://gitlab.com/gitlab-org/gitlab/-/raw/master/doc/c.md?ref_type=heads)",
		},
		{
			name:    "content without links",
			source:  yamlFile,
			content: "plain text [not a link]",
			want:    "plain text [not a link]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := newRewriter().Rewrite(tt.content, tt.source)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinkRewriter_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("classifies link kinds", func(t *testing.T) {
		t.Parallel()

		r := newRewriter()
		src := filepath.FromSlash("/x/top/doc/ci/sub/page.md")

		assert.Equal(t, docsync.LinkInternal, r.Resolve(src, "other.md").Kind)
		assert.Equal(t, docsync.LinkExternal, r.Resolve(src, "../../api/resource.md").Kind)
		assert.Equal(t, docsync.LinkUnchanged, r.Resolve(src, "#top").Kind)
		assert.Equal(t, docsync.LinkUnchanged, r.Resolve(src, "../../../../outside.md").Kind)
	})

	t.Run("custom area and template", func(t *testing.T) {
		t.Parallel()

		r := &docsync.LinkRewriter{
			Root:           filepath.FromSlash("/x/top/doc/ci"),
			Area:           filepath.FromSlash("/x/top"),
			RawURLTemplate: "https://raw.example.com/{path}",
		}

		ref := r.Resolve(filepath.FromSlash("/x/top/doc/ci/index.md"), "../../lib/tool.md")

		assert.Equal(t, docsync.LinkExternal, ref.Kind)
		assert.Equal(t, "https://raw.example.com/lib/tool.md", ref.Resolved)
	})
}

func TestLinkStats_Add(t *testing.T) {
	t.Parallel()

	var s docsync.LinkStats
	s.Add(docsync.LinkReference{Kind: docsync.LinkInternal})
	s.Add(docsync.LinkReference{Kind: docsync.LinkExternal})
	s.Add(docsync.LinkReference{Kind: docsync.LinkExternal})
	s.Add(docsync.LinkReference{Kind: docsync.LinkUnchanged})

	assert.Equal(t, docsync.LinkStats{Internal: 1, External: 2, Unchanged: 1}, s)
}
