package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fulldump/biff"
)

func TestRewrite(t *testing.T) {

	cases := map[string]string{
		"/api/posts":               "/posts",
		"/api/posts/1?x=2":         "/posts/1?x=2",
		"/blog/posts/3/show":       "/posts/3",
		"/api/blog/posts/3/show":   "/posts/3",
		"/posts/1":                 "/posts/1",
		"/blog/posts/3":            "/blog/posts/3",
		"/blog/posts/3/show/extra": "/blog/posts/3/show/extra",
		"/apis/posts":              "/apis/posts",
	}

	for from, expected := range cases {
		obtained := ""
		h := Rewrite(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			obtained = r.URL.RequestURI()
		}), DefaultRewrites...)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", from, nil))
		biff.AssertEqual(obtained, expected)
	}
}

func TestCors(t *testing.T) {

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	biff.Alternative("Cors", func(a *biff.A) {

		a.Alternative("Allowed origin", func(a *biff.A) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", "/posts", nil)
			r.Header.Set("Origin", "http://a.com")
			Cors(next, []string{"http://a.com", "http://b.com"}).ServeHTTP(w, r)

			biff.AssertEqual(w.Code, http.StatusTeapot)
			biff.AssertEqual(w.Header().Get("Access-Control-Allow-Origin"), "http://a.com")
			biff.AssertEqual(w.Header().Get("Cache-Control"), "no-cache")
		})

		a.Alternative("Forbidden origin", func(a *biff.A) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", "/posts", nil)
			r.Header.Set("Origin", "http://c.com")
			Cors(next, []string{"http://a.com"}).ServeHTTP(w, r)

			biff.AssertEqual(w.Header().Get("Access-Control-Allow-Origin"), "")
		})

		a.Alternative("Preflight", func(a *biff.A) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("OPTIONS", "/posts", nil)
			r.Header.Set("Origin", "http://a.com")
			r.Header.Set("Access-Control-Request-Headers", "X-Custom")
			Cors(next, []string{"*"}).ServeHTTP(w, r)

			biff.AssertEqual(w.Code, http.StatusNoContent)
			biff.AssertEqual(w.Header().Get("Access-Control-Allow-Headers"), "X-Custom")
		})
	})
}
