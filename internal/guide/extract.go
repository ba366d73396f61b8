package guide

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ExtractTitle returns the cleaned contents of the document's <title>
// element, or fallback when the document has none.
func ExtractTitle(doc string, fallback string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return fallback
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			title = CleanInline(sb.String())
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if title == "" {
		return fallback
	}
	return title
}

// ExtractLinks collects the href targets of anchor elements, resolved
// against base. Fragment-only, javascript: and mailto: targets are
// skipped, query strings and fragments are dropped, and duplicates are
// removed while preserving document order.
func ExtractLinks(doc string, base *url.URL) []string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := strings.TrimSpace(attr.Val)
				if href == "" || strings.HasPrefix(href, "#") {
					break
				}
				lower := strings.ToLower(href)
				if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") {
					break
				}
				ref, err := url.Parse(href)
				if err != nil {
					break
				}
				resolved := base.ResolveReference(ref)
				resolved.Fragment = ""
				resolved.RawQuery = ""
				link := resolved.String()
				if !seen[link] {
					seen[link] = true
					links = append(links, link)
				}
				break
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return links
}
