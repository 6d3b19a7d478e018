package api

import (
	"net/http"
	"strings"
)

// Cors adds CORS and no-cache headers to every response and answers
// preflight requests.
func Cors(next http.Handler, allowedOrigins []string) http.Handler {

	allowAll := false
	origins := map[string]bool{}
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		}
		if o != "" {
			origins[o] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || origins[origin]) {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		} else if allowAll {
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET, HEAD, PUT, PATCH, POST, DELETE")
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				h.Set("Access-Control-Allow-Headers", requested)
			} else {
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		h.Set("Cache-Control", "no-cache")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "-1")

		next.ServeHTTP(w, r)
	})
}

// Handler wraps the box with rewrites and CORS.
func Handler(b http.Handler, allowedOrigins []string) http.Handler {
	return Cors(Rewrite(b, DefaultRewrites...), allowedOrigins)
}
