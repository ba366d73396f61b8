package guide

import (
	"net/url"
	"strings"
)

// Scope decides which URLs the crawler may visit: same host as the
// root, a path under the root's directory, and a document-looking
// suffix (.html, .htm, or a trailing slash).
type Scope struct {
	host string
	dir  string
}

// NewScope derives the crawl scope from the root URL. The directory is
// everything up to and including the last slash of the root's path.
func NewScope(root *url.URL) Scope {
	dir := root.Path
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i+1]
	} else {
		dir = "/"
	}
	return Scope{host: root.Host, dir: dir}
}

// Allows reports whether u falls inside the crawl scope.
func (s Scope) Allows(u *url.URL) bool {
	if u.Host != s.host {
		return false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, s.dir) {
		return false
	}
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") || strings.HasSuffix(lower, "/")
}
