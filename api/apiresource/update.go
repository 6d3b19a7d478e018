package apiresource

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/dbjson/service"
)

// update replaces the whole item, the id always comes from the path.
func update(ctx context.Context, r *http.Request) (service.Item, error) {

	item, err := decodeItem(r.Body)
	if err != nil {
		return nil, err
	}

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collection")
	id := box.GetUrlParameter(ctx, "id")

	return s.UpdateItem(collectionName, id, item)
}
