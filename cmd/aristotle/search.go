package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

var pageFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "offset",
		Usage: "Index of the first hit",
	},
	&cli.IntFlag{
		Name:  "size",
		Usage: "Hits per page (0 = configured default)",
	},
	&cli.BoolFlag{
		Name:  "json",
		Usage: "Print the raw JSON result",
	},
}

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Search query",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "keyword, creator, title, subject, number or facet",
			},
			&cli.StringFlag{
				Name:  "facet",
				Usage: "Facet name for facet mode, e.g. Genres",
			},
			&cli.StringFlag{
				Name:  "val",
				Usage: "Facet value for facet mode",
			},
		}, pageFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := newApp(ctx, c.String("env"))
			if err != nil {
				return err
			}
			defer a.close()

			m, err := mode.Parse(c.String("mode"))
			if err != nil {
				return err //nolint:wrapcheck // domain validation error
			}
			page, err := a.page(c)
			if err != nil {
				return err
			}
			req, err := request.NewSimple(c.String("query"), m, c.String("facet"), c.String("val"), page)
			if err != nil {
				return err //nolint:wrapcheck // domain validation error
			}

			res, err := a.search.SimpleSearch(ctx, req)
			if err != nil {
				return fmt.Errorf("searching: %w", err)
			}
			return printResult(res, c.Bool("json"))
		},
	}
}

func (a *app) page(c *cli.Command) (request.Page, error) {
	size := int(c.Int("size"))
	if size > a.cfg.Search.MaxPageSize {
		size = a.cfg.Search.MaxPageSize
	}
	p, err := request.NewPageWithDefault(int(c.Int("offset")), size, a.cfg.Search.DefaultPageSize)
	if err != nil {
		return request.Page{}, err //nolint:wrapcheck // domain validation error
	}
	return p, nil
}

func printResult(res result.SearchResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res) //nolint:wrapcheck // stdout
	}

	if len(res.Hits) == 0 {
		fmt.Println("No results found")
	}
	for i := range res.Hits {
		h := &res.Hits[i]
		fmt.Printf("%d. %s  [%s]\n", i+1, h.Title(), h.PID())
	}
	fmt.Printf("\nTotal: %d results\n", res.Total)
	printFacets(res.Aggregations)
	return nil
}

func printFacets(aggs result.Aggregations) {
	for _, f := range aggs.Facets() {
		fmt.Printf("\n=== %s ===\n", f.Name)
		for _, b := range f.Buckets {
			fmt.Printf("  %-40s %d\n", b.Key, b.Count)
		}
	}
}
