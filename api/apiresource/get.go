package apiresource

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/dbjson/service"
)

func get(ctx context.Context) (service.Item, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collection")
	id := box.GetUrlParameter(ctx, "id")

	return s.GetItem(collectionName, id)
}
