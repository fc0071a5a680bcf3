package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	cachecmd "github.com/andrkelb-school/SW-Situation-1-BauMax/internal/cache"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/internal/serve"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/internal/site"
)

func main() {
	app := &cli.App{
		Name:  "baumax",
		Usage: "Loads, caches and renders the BauMax course",
		Flags: commonFlags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the course viewer server",
				Flags:  commonFlags(),
				Action: serve.ServeAction,
			},
			{
				Name:  "render",
				Usage: "Render the course to static HTML files",
				Flags: append(commonFlags(), &cli.StringFlag{
					Name:  "output-dir",
					Usage: "Directory for the rendered pages",
					Value: "site",
				}),
				Action: site.RenderAction,
			},
			{
				Name:  "cache",
				Usage: "Inspect or clear the content cache",
				Flags: append(commonFlags(), &cli.BoolFlag{
					Name:  "clear",
					Usage: "Remove all entries of the current cache version",
				}),
				Action: cachecmd.CacheAction,
			},
		},
		// Bare invocation starts the server, the common case.
		Action: serve.ServeAction,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to the YAML config file",
			Value: "config.yaml",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Content host base URL (empty uses the local assets directory)",
		},
		&cli.StringFlag{
			Name:  "course",
			Usage: "Course id",
		},
		&cli.StringFlag{
			Name:  "listen",
			Usage: "Listen address for the server",
		},
		&cli.StringFlag{
			Name:  "assets-dir",
			Usage: "Local directory with course assets, used when the base URL is empty",
		},
		&cli.StringFlag{
			Name:  "cache-db",
			Usage: "Path of the cache database",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Disable the content cache",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "Log errors only",
		},
	}
}
