package apiresource

import (
	"context"
)

func dump(ctx context.Context) map[string]any {
	return GetServicer(ctx).Dump()
}
