package api

import (
	"net/http"
	"net/url"
	"strings"
)

// RewriteRule maps a request path to another one. It returns false when the
// path does not apply.
type RewriteRule func(path string) (string, bool)

// DefaultRewrites serves the API under /api and the blog style show urls.
var DefaultRewrites = []RewriteRule{
	RewritePrefix("/api/"),
	RewriteBlogShow,
}

// RewritePrefix removes prefix from the path: /api/posts/1 -> /posts/1
func RewritePrefix(prefix string) RewriteRule {
	return func(path string) (string, bool) {
		if !strings.HasPrefix(path, prefix) {
			return path, false
		}
		return "/" + strings.TrimPrefix(path, prefix), true
	}
}

// RewriteBlogShow maps /blog/{resource}/{id}/show to /{resource}/{id}
func RewriteBlogShow(path string) (string, bool) {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) != 4 || parts[0] != "blog" || parts[3] != "show" {
		return path, false
	}
	if parts[1] == "" || parts[2] == "" {
		return path, false
	}
	return "/" + parts[1] + "/" + parts[2], true
}

// Rewrite applies every rule in order before handing the request to next.
// The query string is kept.
func Rewrite(next http.Handler, rules ...RewriteRule) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		path := r.URL.Path
		changed := false
		for _, rule := range rules {
			if rewritten, ok := rule(path); ok {
				path = rewritten
				changed = true
			}
		}

		if !changed {
			next.ServeHTTP(w, r)
			return
		}

		r2 := new(http.Request)
		*r2 = *r
		r2.URL = new(url.URL)
		*r2.URL = *r.URL
		r2.URL.Path = path
		r2.URL.RawPath = ""
		next.ServeHTTP(w, r2)
	})
}
