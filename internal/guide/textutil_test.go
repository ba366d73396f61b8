package guide

import (
	"strings"
	"testing"
)

func TestCleanInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses runs", "a  b\t\tc", "a b c"},
		{"trims edges", "  hello  ", "hello"},
		{"newlines become spaces", "line one\nline two", "line one line two"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanInline(tt.input); got != tt.want {
				t.Errorf("CleanInline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crlf to lf", "a\r\nb\rc", "a\nb\nc"},
		{"trailing spaces stripped", "a  \nb\t\nc", "a\nb\nc"},
		{"blank runs collapse", "a\n\n\n\nb", "a\n\nb"},
		{"single blank kept", "a\n\nb", "a\n\nb"},
		{"trimmed", "\n\na\n\n", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMultiline(tt.input); got != tt.want {
				t.Errorf("NormalizeMultiline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"named set", "&amp;&lt;&gt;&quot;&apos;&nbsp;", "&<>\"' "},
		{"decimal and hex", "&amp;&#65;&#x42;", "&AB"},
		{"numeric apostrophe", "it&#39;s", "it's"},
		{"unknown named kept", "&copy;&bogus;", "&copy;&bogus;"},
		{"bare ampersand kept", "a & b", "a & b"},
		{"invalid numeric kept", "&#;&#xZZ;", "&#;&#xZZ;"},
		{"cjk code point", "&#12354;", "あ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.input); got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"block tags break lines", "<p>a</p><p>b</p>", "a\nb"},
		{"br breaks lines", "a<br>b<br/>c<br />d", "a\nb\nc\nd"},
		{"script dropped with content", "<p>before</p><script>var x = 1;</script><p>after</p>", "before\nafter"},
		{"style dropped with content", "<style>body { color: red }</style>ok", "ok"},
		{"inline tags removed", "use the <b>Save</b> button", "use the Save button"},
		{"entities decoded", "<p>a &amp; b</p>", "a & b"},
		{"headings and list items", "<h1>Title</h1><ul><li>one</li><li>two</li></ul>", "Title\none\ntwo"},
		{"indentation stripped", "<div>\n    indented text\n</div>", "indented text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripHTMLLeavesNoMarkup(t *testing.T) {
	doc := `<html><head><title>t</title><script src="x.js"></script></head>
<body><div class="nav"><a href="/a.html">Link &amp; more</a></div>
<p>Body &#x3042; text</p></body></html>`

	got := StripHTML(doc)
	if strings.ContainsAny(got, "<>") {
		t.Errorf("StripHTML left markup in %q", got)
	}
	if strings.Contains(got, "&amp;") || strings.Contains(got, "&#") {
		t.Errorf("StripHTML left entity references in %q", got)
	}
	if !strings.Contains(got, "あ") {
		t.Errorf("StripHTML dropped decoded code point, got %q", got)
	}
}
