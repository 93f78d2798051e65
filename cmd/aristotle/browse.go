package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
)

// BrowseCommand creates the browse command
func BrowseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "List the children of a collection with its facet counts",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "pid",
				Usage: "Parent identifier (default: configured root pid)",
			},
		}, pageFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := newApp(ctx, c.String("env"))
			if err != nil {
				return err
			}
			defer a.close()

			pid := c.String("pid")
			if pid == "" {
				pid = a.cfg.Search.RootPID
			}
			page, err := a.page(c)
			if err != nil {
				return err
			}
			req, err := request.NewBrowse(pid, page)
			if err != nil {
				return err //nolint:wrapcheck // domain validation error
			}

			res, err := a.search.Browse(ctx, req)
			if err != nil {
				return fmt.Errorf("browsing %s: %w", pid, err)
			}
			return printResult(res, c.Bool("json"))
		},
	}
}
