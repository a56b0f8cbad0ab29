// Command example runs the demo application: a home page, registration,
// login, a dashboard and user pages behind the login gate.
//
//	go run ./example serve --db-dsn=file:demo.db
//	go run ./example migrate --db-driver=postgres --db-dsn=postgres://...
//
// Flags may also come from the environment or a YAML file passed with
// --config.
package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/kroobeet/engine/pkg/config"
)

var (
	version = "dev"
	cli     struct {
		Globals

		Version kong.VersionFlag `help:"Print version and exit."`
		Serve   ServeCmd         `cmd:"" default:"withargs" help:"Run the web server."`
		Migrate MigrateCmd       `cmd:"" help:"Apply database migrations and exit."`
		Check   CheckCmd         `cmd:"" help:"Run readiness checks and exit."`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("engine"),
		kong.Description("Demo application for the engine web runtime."),
		kong.Configuration(config.YAML, "engine.yaml"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&cli.Globals)
	cmd.FatalIfErrorf(err)
}
