package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/dbjson/api/apiresource"
	"github.com/fulldump/dbjson/service"
	"github.com/fulldump/dbjson/statics"
)

func Build(s service.Servicer, staticsDir string) *box.B {

	b := box.NewBox()

	b.WithInterceptors(
		injectServicer(s),
	)

	// Home page, registered before the collections so it wins over an empty
	// collection name
	b.Resource("/").
		WithActions(
			box.Get(statics.ServeStatics(staticsDir)).WithName("serveStatics"),
		)

	apiresource.Build(b.R)

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apiresource.SetServicer(ctx, s))
		}
	}
}
