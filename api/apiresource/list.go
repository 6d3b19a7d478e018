package apiresource

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/dbjson/service"
)

func list(ctx context.Context, r *http.Request) (any, error) {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "collection")

	value, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}

	items, isCollection := value.([]service.Item)
	if !isCollection {
		return value, nil
	}

	return traverse(items, r.URL.Query())
}
