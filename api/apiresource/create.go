package apiresource

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/dbjson/service"
)

func create(ctx context.Context, w http.ResponseWriter, r *http.Request) (service.Item, error) {

	item, err := decodeItem(r.Body)
	if err != nil {
		return nil, err
	}

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collection")
	created, err := s.CreateItem(collectionName, item)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return created, nil
}
