package apiresource

import (
	"github.com/fulldump/box"
)

// Build mounts the collection routes below root. Any first path segment is
// taken as a collection name, so fixed routes (like /db) must be registered
// before.
func Build(root *box.R) {

	root.Resource("/db").
		WithActions(
			box.Get(dump),
		).
		WithInterceptors(jsonContentType)

	root.Resource("/{collection}").
		WithActions(
			box.Get(list),
			box.Post(create),
		).
		WithInterceptors(jsonContentType)

	root.Resource("/{collection}/{id}").
		WithActions(
			box.Get(get),
			box.Put(update),
			box.Patch(patch),
			box.Delete(remove),
		).
		WithInterceptors(jsonContentType)
}

var jsonContentType = box.SetResponseHeader("Content-Type", "application/json; charset=utf-8")
