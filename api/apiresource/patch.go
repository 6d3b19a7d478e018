package apiresource

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/dbjson/service"
)

func patch(ctx context.Context, r *http.Request) (service.Item, error) {

	item, err := decodeItem(r.Body)
	if err != nil {
		return nil, err
	}

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collection")
	id := box.GetUrlParameter(ctx, "id")

	return s.PatchItem(collectionName, id, item)
}
