package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type ctxKey int

const farmKey ctxKey = iota

// WithFarm carries the resolved farm on the request context. The
// dispatcher sets it before forwarding into a URL table, so it
// survives the hop between the outer and the inner server.
func WithFarm(ctx context.Context, farm db.Farm) context.Context {
	return context.WithValue(ctx, farmKey, farm)
}

func FarmFrom(c echo.Context) (db.Farm, bool) {
	farm, ok := c.Request().Context().Value(farmKey).(db.Farm)
	return farm, ok
}
