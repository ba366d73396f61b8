package guide

import (
	"net/url"
	"reflect"
	"testing"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		fallback string
		want     string
	}{
		{"basic", "<html><head><title>Getting Started</title></head></html>", "fb", "Getting Started"},
		{"whitespace cleaned", "<title>  Getting\n  Started  </title>", "fb", "Getting Started"},
		{"entities decoded by parser", "<title>Tips &amp; Tricks</title>", "fb", "Tips & Tricks"},
		{"missing title", "<html><body><p>no title</p></body></html>", "https://example.com/a.html", "https://example.com/a.html"},
		{"empty title", "<title>   </title>", "fb", "fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTitle(tt.doc, tt.fallback); got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractLinks(t *testing.T) {
	base, _ := url.Parse("https://help.example.com/portal/index.html")

	doc := `<html><body>
<a href="page1.html">one</a>
<a href="/portal/page2.html">two</a>
<a href="https://other.example.com/page3.html">absolute</a>
<a href="page1.html">duplicate</a>
<a href="#section">fragment only</a>
<a href="javascript:void(0)">js</a>
<a href="mailto:help@example.com">mail</a>
<a href="page4.html?utm=1#top">tracked</a>
<a href="">empty</a>
</body></html>`

	got := ExtractLinks(doc, base)
	want := []string{
		"https://help.example.com/portal/page1.html",
		"https://help.example.com/portal/page2.html",
		"https://other.example.com/page3.html",
		"https://help.example.com/portal/page4.html",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractLinks() = %v, want %v", got, want)
	}
}

func TestExtractLinksEmptyDocument(t *testing.T) {
	base, _ := url.Parse("https://help.example.com/")
	if got := ExtractLinks("", base); len(got) != 0 {
		t.Errorf("expected no links, got %v", got)
	}
}
