package markup_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcomment/pkg/markup"
)

type stubImages map[string]bool

func (s stubImages) Lookup(name string) (string, bool) {
	if s[strings.ToLower(name)] {
		return "/img/" + name, true
	}
	return "", false
}

type stubFiles map[string]string

func (s stubFiles) Resolve(path string) (string, bool) {
	abs, ok := s[path]
	return abs, ok
}

type mdClassifier struct{}

func (mdClassifier) IsMarkdown(fileName string) bool {
	return strings.HasSuffix(fileName, ".md")
}

func convert(t *testing.T, opts markup.Options, input string) string {
	t.Helper()
	e := markup.New("docs/index.md", 1, 0, opts)
	out, _ := e.Process([]byte(input))
	return string(out)
}

func TestProcessInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single emphasis",
			input: "a *word* b\n",
			want:  "a <em>word</em> b\n",
		},
		{
			name:  "underscore emphasis",
			input: "a _word_ b\n",
			want:  "a <em>word</em> b\n",
		},
		{
			name:  "space before closer is not emphasis",
			input: "a *word * b\n",
			want:  "a *word * b\n",
		},
		{
			name:  "strong",
			input: "x **bold** y\n",
			want:  "x <strong>bold</strong> y\n",
		},
		{
			name:  "emphasis and strong",
			input: "x ***both*** y\n",
			want:  "x <em><strong>both</strong></em> y\n",
		},
		{
			name:  "triple run closed by double then single",
			input: "x ***a** b* y\n",
			want:  "x <em><strong>a</strong> b</em> y\n",
		},
		{
			name:  "strike through",
			input: "x ~~gone~~ y\n",
			want:  "x <strike>gone</strike> y\n",
		},
		{
			name:  "underscores inside identifiers",
			input: "call snake_case_name now\n",
			want:  "call snake_case_name now\n",
		},
		{
			name:  "missing newline is added",
			input: "a *word* b",
			want:  "a <em>word</em> b\n",
		},
		{
			name:  "en dash",
			input: "a -- b\n",
			want:  "a &ndash; b\n",
		},
		{
			name:  "em dash",
			input: "a --- b\n",
			want:  "a &mdash; b\n",
		},
		{
			name:  "operator decrement stays",
			input: "x operator-- y\n",
			want:  "x operator-- y\n",
		},
		{
			name:  "html comment stays",
			input: "<!-- note -->\n",
			want:  "<!-- note -->\n",
		},
		{
			name:  "code span escapes specials",
			input: "use `a<b` here\n",
			want:  "use <tt>a\\<b</tt> here\n",
		},
		{
			name:  "double backtick span",
			input: "``a ` b``\n",
			want:  "<tt>a ` b</tt>\n",
		},
		{
			name:  "backtick quote",
			input: "a `quoted' word\n",
			want:  "a &lsquo;quoted&rsquo; word\n",
		},
		{
			name:  "unclosed code span",
			input: "a `open\n",
			want:  "a `open\n",
		},
		{
			name:  "escaped emphasis",
			input: "\\*literal\\*\n",
			want:  "*literal*\n",
		},
		{
			name:  "quoted text is not markdown",
			input: "say \"*a*\" now\n",
			want:  "say \"*a*\" now\n",
		},
		{
			name:  "hard line break",
			input: "one  \ntwo\n",
			want:  "one  <br>\ntwo\n",
		},
		{
			name:  "code command is copied",
			input: "\\code\n*x*\n\\endcode\n",
			want:  "\\code\n*x*\n\\endcode\n",
		},
		{
			name:  "anchor link",
			input: "[intro](#intro)\n",
			want:  "@ref intro \"intro\"\n",
		},
		{
			name:  "inline link with title",
			input: "[text](http://x.org \"T\")\n",
			want:  "<a href=\"http://x.org\" title=\"T\" >text</a>\n",
		},
		{
			name:  "image without registry",
			input: "![logo](logo.png)\n",
			want:  "<img src=\"logo.png\" alt=\"logo\"/>\n",
		},
		{
			name:  "table of contents",
			input: "[TOC]\n",
			want:  "@tableofcontents{html:5}\n",
		},
		{
			name:  "horizontal rule",
			input: "***\n",
			want:  "<hr>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, convert(t, markup.DefaultOptions(), tt.input))
		})
	}
}

func TestProcessHeadings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		toc  int
		in   string
		want string
	}{
		{
			name: "atx with generated id",
			toc:  5,
			in:   "## Sub\n",
			want: "@subsection autotoc_md0 Sub\n",
		},
		{
			name: "atx with explicit id",
			toc:  5,
			in:   "# Intro {#intro}\n",
			want: "@section intro Intro\n",
		},
		{
			name: "atx without ids",
			toc:  0,
			in:   "# T\n",
			want: "<h1>T</h1>\n",
		},
		{
			name: "setext",
			toc:  5,
			in:   "Title\n=====\n",
			want: "@section autotoc_md0 Title\n\n",
		},
		{
			name: "hash reference is not a heading",
			toc:  5,
			in:   "#ref\n",
			want: "#ref\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := markup.DefaultOptions()
			opts.TOCIncludeHeadings = tt.toc
			assert.Equal(t, tt.want, convert(t, opts, tt.in))
		})
	}
}

func TestProcessDocument(t *testing.T) {
	t.Parallel()

	out := convert(t, markup.DefaultOptions(), "# Title\n\nSome *em* and `code`.\n")
	assert.Contains(t, out, "@section autotoc_md0 Title")
	assert.Contains(t, out, "<em>em</em>")
	assert.Contains(t, out, "<tt>code</tt>")
}

func TestProcessBlocks(t *testing.T) {
	t.Parallel()

	t.Run("blockquote", func(t *testing.T) {
		t.Parallel()
		out := convert(t, markup.DefaultOptions(), "> quote\n")
		assert.Contains(t, out, "<blockquote>&zwj;quote")
		assert.Contains(t, out, "</blockquote>")
	})

	t.Run("indented code", func(t *testing.T) {
		t.Parallel()
		out := convert(t, markup.DefaultOptions(), "Text\n\n    code *x*\n\nAfter\n")
		assert.Contains(t, out, "@iverbatim\ncode *x*\n@endiverbatim")
		assert.Contains(t, out, "After")
	})

	t.Run("fenced code with language", func(t *testing.T) {
		t.Parallel()
		out := convert(t, markup.DefaultOptions(), "```go\nx := *p\n```\n")
		assert.Equal(t, "@icode{go}\nx := *p\n@endicode\n", out)
	})

	t.Run("fence closes on a longer run only", func(t *testing.T) {
		t.Parallel()
		out := convert(t, markup.DefaultOptions(), "````\ncode\n```\nmore\n`````\n")
		assert.Contains(t, out, "@icode\ncode\n```\nmore\n@endicode")
	})

	t.Run("table alignment", func(t *testing.T) {
		t.Parallel()
		out := convert(t, markup.DefaultOptions(), "| A | B |\n|:---|---:|\n| 1 | 2 |\n")
		assert.True(t, strings.HasPrefix(out, `<table class="markdownTable">`))
		assert.Contains(t, out, `<th class="markdownTableHeadLeft"> A \ilinebr </th>`)
		assert.Contains(t, out, `<th class="markdownTableHeadRight"> B \ilinebr </th>`)
		assert.Contains(t, out, `<td class="markdownTableBodyLeft"> 1 \ilinebr </td>`)
		assert.Contains(t, out, `<td class="markdownTableBodyRight"> 2 \ilinebr </td>`)
		assert.Contains(t, out, "</table>")
	})
}

func TestProcessLinks(t *testing.T) {
	t.Parallel()

	t.Run("reference labels fold case", func(t *testing.T) {
		t.Parallel()
		e := markup.New("index.md", 1, 0, markup.DefaultOptions())
		out, _ := e.Process([]byte("See [Foo][].\n\n[foo]: http://example.com \"Ex\"\n"))
		assert.Contains(t, string(out), `<a href="http://example.com" title="Ex" >Foo</a>`)

		ref, ok := e.LinkRef("FOO")
		require.True(t, ok)
		assert.Equal(t, "http://example.com", ref.Link)
		assert.Equal(t, "Ex", ref.Title)
	})

	t.Run("external links in new window", func(t *testing.T) {
		t.Parallel()
		opts := markup.DefaultOptions()
		opts.ExtLinksInWindow = true
		out := convert(t, opts, "[x](http://x.org)\n")
		assert.Equal(t, "<a href=\"http://x.org\" target=\"_blank\" >x</a>\n", out)
	})

	t.Run("markdown page link resolves next to the document", func(t *testing.T) {
		t.Parallel()
		opts := markup.DefaultOptions()
		opts.Languages = mdClassifier{}
		opts.Files = stubFiles{filepath.Join("docs", "guide.md"): "/abs/docs/guide.md"}
		out := convert(t, opts, "[the guide](guide.md)\n")
		assert.Equal(t, "@ref /abs/docs/guide.md \"the guide\"\n", out)
	})

	t.Run("registered image", func(t *testing.T) {
		t.Parallel()
		opts := markup.DefaultOptions()
		opts.Images = stubImages{"logo.png": true}
		out := convert(t, opts, "![logo](logo.png)\n")
		assert.Contains(t, out, "@image html logo.png \"logo\"\\ilinebr ")
		assert.Contains(t, out, "@image latex logo.png \"logo\"")
		assert.NotContains(t, out, "{inline}")
	})

	t.Run("registered image inside text", func(t *testing.T) {
		t.Parallel()
		opts := markup.DefaultOptions()
		opts.Images = stubImages{"x.png": true}
		out := convert(t, opts, "see ![i](x.png) here\n")
		assert.Contains(t, out, "@image{inline} html x.png \"i\"")
	})
}

func TestProcessEdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		out, n := markup.New("a.md", 1, 0, markup.DefaultOptions()).Process(nil)
		assert.Empty(t, out)
		assert.Zero(t, n)
	})

	t.Run("disabled is passthrough", func(t *testing.T) {
		t.Parallel()
		opts := markup.DefaultOptions()
		opts.Disabled = true
		assert.Equal(t, "# *x*", convert(t, opts, "# *x*"))
	})

	t.Run("leading newlines are counted", func(t *testing.T) {
		t.Parallel()
		out, n := markup.New("a.md", 1, 0, markup.DefaultOptions()).Process([]byte("\n\ntext\n"))
		assert.Equal(t, "text\n", string(out))
		assert.Equal(t, 2, n)
	})

	t.Run("non-breaking space", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a&nbsp;b\n", convert(t, markup.DefaultOptions(), "a\u00a0b\n"))
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		in := "# A\n\n* item *one*\n* item two\n\n| x | y |\n|---|---|\n| 1 | 2 |\n"
		assert.Equal(t, convert(t, markup.DefaultOptions(), in), convert(t, markup.DefaultOptions(), in))
	})
}

func TestSharedIDSequence(t *testing.T) {
	t.Parallel()

	ids := markup.NewIDSequence()
	opts := markup.DefaultOptions()
	opts.IDs = ids

	first, _ := markup.New("a.md", 1, 0, opts).Process([]byte("# A\n"))
	second, _ := markup.New("b.md", 1, 0, opts).Process([]byte("# B\n"))
	assert.Equal(t, "@section autotoc_md0 A\n", string(first))
	assert.Equal(t, "@section autotoc_md1 B\n", string(second))
}
