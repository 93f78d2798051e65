package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/aristotle/internal/config"
)

func main() {
	app := &cli.Command{
		Name:  "aristotle",
		Usage: "Faceted catalog search over a digital repository index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Configuration environment (config/<env>.yaml)",
				Value:   config.GetEnv(),
				Sources: cli.EnvVars("ENV"),
			},
		},
		Commands: []*cli.Command{
			ServeCommand(),
			SearchCommand(),
			BrowseCommand(),
			FacetsCommand(),
			LoadCommand(),
			VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
