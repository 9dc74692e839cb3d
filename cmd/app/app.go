package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/owl-eval/backend/cmd/app/server"
	"github.com/owl-eval/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "owlbackend",
		Description: "The owl-eval human evaluation platform backend. Built with Go, fiber, bun and go.uber.org/fx. Uses NATS as MQ and Redis as cache synchronization.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
