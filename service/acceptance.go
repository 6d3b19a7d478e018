package service

import (
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

// AcceptanceDocument is the content of the backing file Acceptance expects
// the server to start with.
var AcceptanceDocument = JSON{
	"posts": []JSON{
		{"id": 1, "title": "json-server", "author": "typicode"},
		{"id": 2, "title": "dbjson", "author": "fulldump"},
	},
	"comments": []JSON{
		{"id": 1, "body": "some comment", "postId": 1},
	},
	"users":   []JSON{},
	"profile": JSON{"name": "typicode"},
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create item", func(a *biff.A) {
		resp := apiRequest("POST", "/posts").
			WithBodyJson(JSON{
				"id":    77,
				"title": "hello",
			}).Do()
		Save(resp, "Create item", `
			The id is always assigned by the server: one more than the highest
			id in the collection.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 3, "title": "hello"})

		a.Alternative("Retrieve created item", func(a *biff.A) {
			resp := apiRequest("GET", "/posts/3").Do()
			Save(resp, "Retrieve item", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 3, "title": "hello"})
		})

		a.Alternative("Delete highest and create again", func(a *biff.A) {
			resp := apiRequest("DELETE", "/posts/3").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			resp = apiRequest("POST", "/posts").
				WithBodyJson(JSON{"title": "again"}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 3, "title": "again"})
		})
	})

	a.Alternative("Create item on empty collection", func(a *biff.A) {
		resp := apiRequest("POST", "/users").
			WithBodyJson(JSON{"name": "Fulanez"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 1, "name": "Fulanez"})
	})

	a.Alternative("Create item without body", func(a *biff.A) {
		resp := apiRequest("POST", "/users").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 1})
	})

	a.Alternative("Create item on unknown collection", func(a *biff.A) {
		resp := apiRequest("POST", "/unknown").
			WithBodyJson(JSON{"name": "Fulanez"}).Do()
		Save(resp, "Create item - collection not found", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Resource unknown not found"})

		resp = apiRequest("GET", "/db").Do()
		biff.AssertEqualJson(resp.BodyJson(), AcceptanceDocument)
	})

	a.Alternative("Create item on a non collection", func(a *biff.A) {
		resp := apiRequest("POST", "/profile").
			WithBodyJson(JSON{"name": "Fulanez"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Resource profile not found"})
	})

	a.Alternative("Create item with malformed body", func(a *biff.A) {
		resp := apiRequest("POST", "/posts").
			WithBodyString(`{"title": `).Do()
		Save(resp, "Create item - malformed body", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("Create item with repeated names", func(a *biff.A) {
		resp := apiRequest("POST", "/users").
			WithBodyString(`{"name": "first", "name": "second"}`).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 1, "name": "second"})
	})

	a.Alternative("Create item with array body", func(a *biff.A) {
		resp := apiRequest("POST", "/posts").
			WithBodyString(`[1,2,3]`).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("Update item", func(a *biff.A) {
		resp := apiRequest("PUT", "/posts/1").
			WithBodyJson(JSON{
				"id":    50,
				"title": "changed",
			}).Do()
		Save(resp, "Update item", `
			Full replacement: fields not present in the body are removed. The
			id in the body is ignored.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 1, "title": "changed"})

		a.Alternative("Retrieve updated item", func(a *biff.A) {
			resp := apiRequest("GET", "/posts/1").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 1, "title": "changed"})
		})
	})

	a.Alternative("Update item not found", func(a *biff.A) {
		resp := apiRequest("PUT", "/posts/9").
			WithBodyJson(JSON{"title": "changed"}).Do()
		Save(resp, "Update item - item not found", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Item with ID 9 not found"})

		resp = apiRequest("GET", "/posts").Do()
		biff.AssertEqualJson(resp.BodyJson(), AcceptanceDocument["posts"])
	})

	a.Alternative("Update item with non numeric id", func(a *biff.A) {
		resp := apiRequest("PUT", "/posts/abc").
			WithBodyJson(JSON{"title": "changed"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Item with ID abc not found"})
	})

	a.Alternative("Update item on unknown collection", func(a *biff.A) {
		resp := apiRequest("PUT", "/unknown/abc").
			WithBodyJson(JSON{"title": "changed"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Resource unknown not found"})
	})

	a.Alternative("Patch item", func(a *biff.A) {
		resp := apiRequest("PATCH", "/posts/2").
			WithBodyJson(JSON{"title": "dbjson 2", "id": 9}).Do()
		Save(resp, "Patch item", `
			Top level fields in the body are merged into the item.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 2, "title": "dbjson 2", "author": "fulldump"})
	})

	a.Alternative("Delete item", func(a *biff.A) {
		resp := apiRequest("DELETE", "/posts/1").Do()
		Save(resp, "Delete item", `
			The removed item is returned inside a list.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), []JSON{
			{"id": 1, "title": "json-server", "author": "typicode"},
		})

		a.Alternative("List after delete", func(a *biff.A) {
			resp := apiRequest("GET", "/posts").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{
				{"id": 2, "title": "dbjson", "author": "fulldump"},
			})
		})

		a.Alternative("Retrieve deleted item", func(a *biff.A) {
			resp := apiRequest("GET", "/posts/1").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Item with ID 1 not found"})
		})
	})

	a.Alternative("Delete item not found", func(a *biff.A) {
		resp := apiRequest("DELETE", "/comments/2").Do()
		Save(resp, "Delete item - item not found", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Item with ID 2 not found"})

		resp = apiRequest("GET", "/comments").Do()
		biff.AssertEqualJson(resp.BodyJson(), AcceptanceDocument["comments"])
	})

	a.Alternative("Delete item on unknown collection", func(a *biff.A) {
		resp := apiRequest("DELETE", "/unknown/1").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Resource unknown not found"})
	})

	a.Alternative("List items", func(a *biff.A) {
		resp := apiRequest("GET", "/posts").Do()
		Save(resp, "List items", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), AcceptanceDocument["posts"])
	})

	a.Alternative("List items with filter", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?author=fulldump").Do()
		Save(resp, "List items - filter", `
			Every query parameter not starting with an underscore filters by
			equality.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), []JSON{
			{"id": 2, "title": "dbjson", "author": "fulldump"},
		})
	})

	a.Alternative("List items with limit", func(a *biff.A) {
		resp := apiRequest("GET", "/posts?_start=1&_limit=1").Do()
		Save(resp, "List items - start and limit", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), []JSON{
			{"id": 2, "title": "dbjson", "author": "fulldump"},
		})
	})

	a.Alternative("Retrieve non collection", func(a *biff.A) {
		resp := apiRequest("GET", "/profile").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"name": "typicode"})
	})

	a.Alternative("List unknown collection", func(a *biff.A) {
		resp := apiRequest("GET", "/unknown").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Resource unknown not found"})
	})

	a.Alternative("Dump database", func(a *biff.A) {
		resp := apiRequest("GET", "/db").Do()
		Save(resp, "Dump database", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), AcceptanceDocument)
	})

	a.Alternative("Rewrite api prefix", func(a *biff.A) {
		resp := apiRequest("GET", "/api/posts/1").Do()
		Save(resp, "Rewrite - api prefix", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 1, "title": "json-server", "author": "typicode"})

		resp = apiRequest("POST", "/api/comments?postId=1").
			WithBodyJson(JSON{"body": "other comment"}).Do()
		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 2, "body": "other comment"})
	})

	a.Alternative("Rewrite blog show", func(a *biff.A) {
		resp := apiRequest("GET", "/blog/posts/2/show").Do()
		Save(resp, "Rewrite - blog show", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"id": 2, "title": "dbjson", "author": "fulldump"})
	})

	a.Alternative("Home page", func(a *biff.A) {
		resp := apiRequest("GET", "/").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertTrue(strings.Contains(resp.BodyString(), "<title>dbjson</title>"))
	})

	a.Alternative("Preflight", func(a *biff.A) {
		resp := apiRequest("OPTIONS", "/posts").
			WithHeader("Origin", "http://example.com").
			WithHeader("Access-Control-Request-Method", "POST").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNoContent)
		biff.AssertEqual(resp.Header.Get("Access-Control-Allow-Origin"), "http://example.com")
	})
}
