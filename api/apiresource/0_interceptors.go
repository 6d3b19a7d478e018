package apiresource

import (
	"context"

	"github.com/fulldump/dbjson/service"
)

const ContextServicerKey = "4b6c1e2a-9a1f-11ef-8c35-3f0c2a7d6e51"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer) // TODO: can raise panic :D
}
