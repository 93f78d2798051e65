package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// FacetsCommand creates the facets command
func FacetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "facets",
		Usage: "Print facet counts for the whole index or one collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pid",
				Usage: "Restrict counts to this collection",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the raw JSON result",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := newApp(ctx, c.String("env"))
			if err != nil {
				return err
			}
			defer a.close()

			aggs, err := a.search.Facets(ctx, c.String("pid"))
			if err != nil {
				return fmt.Errorf("aggregating: %w", err)
			}
			if c.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(aggs) //nolint:wrapcheck // stdout
			}
			if aggs.Len() == 0 {
				fmt.Println("No facets")
				return nil
			}
			printFacets(aggs)
			return nil
		},
	}
}
