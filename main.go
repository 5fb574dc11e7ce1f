package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nicolasgere/appwrite-smoke/lib/config"
	"github.com/nicolasgere/appwrite-smoke/lib/logger"
	"github.com/nicolasgere/appwrite-smoke/lib/probe"
	"github.com/nicolasgere/appwrite-smoke/lib/utils"
)

func main() {
	app := createCliApp()

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func createCliApp() *cli.App {
	return &cli.App{
		Name:  "appwrite-smoke",
		Usage: "Check Appwrite credentials and collection IDs",
		Description: `Reads NEXT_PUBLIC_ENDPOINT, PROJECT_ID, API_KEY, DATABASE_ID and
APPOINTMENT_COLLECTION_ID from .env.local (or .env) and the environment,
then lists the documents of the collection once.

Exit codes:
  0  the collection was listed
  1  a variable is missing or still holds a placeholder
  2  the Appwrite request failed`,
		HideHelpCommand: true,
		Action:          run,
	}
}

func run(c *cli.Context) error {
	logs := logger.New(c.App.ErrWriter, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	printer := utils.NewPrinter(c.App.Writer, c.App.ErrWriter)

	var out probe.Outcome
	cfg, err := config.Load(config.Options{})
	if err != nil {
		out = probe.Aborted(err)
	} else {
		logs.WithField("env_file", cfg.EnvFile).Debug("configuration loaded")
		out = probe.New(logs).Run(c.Context, cfg)
	}

	probe.Report(out, printer)

	if out.ExitCode != probe.ExitOK {
		// The diagnostics are already printed; only the status is left to set.
		return cli.Exit("", out.ExitCode)
	}
	return nil
}
