package apiresource

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/dbjson/service"
)

// remove answers with the removed item wrapped in a list.
func remove(ctx context.Context) ([]service.Item, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collection")
	id := box.GetUrlParameter(ctx, "id")

	removed, err := s.DeleteItem(collectionName, id)
	if err != nil {
		return nil, err
	}

	return []service.Item{removed}, nil
}
