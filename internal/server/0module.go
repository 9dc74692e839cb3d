package server

import (
	"go.uber.org/fx"

	"github.com/owl-eval/backend/internal/server/httpserver"
	"github.com/owl-eval/backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateVersioningEndpoints))
}
