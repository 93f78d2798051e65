package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/aristotle/internal/db"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
	searchrepo "github.com/kailas-cloud/aristotle/internal/repository/search"
)

const defaultLoadBatch = 500

// LoadCommand creates the load command
func LoadCommand() *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Bulk-load catalog records into the configured index (local development)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    `JSON array or NDJSON of {"id": ..., "source": {...}} records`,
				Required: true,
			},
			&cli.IntFlag{
				Name:  "batch",
				Usage: "Records per bulk request",
				Value: defaultLoadBatch,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := newApp(ctx, c.String("env"))
			if err != nil {
				return err
			}
			defer a.close()

			f, err := os.Open(c.String("file"))
			if err != nil {
				return fmt.Errorf("opening %s: %w", c.String("file"), err)
			}
			defer f.Close()

			n, err := loadRecords(ctx, a.executor, a.cfg.Backend.Index, f, int(c.Int("batch")), a.logger)
			if err != nil {
				return err
			}
			fmt.Printf("Loaded %d records into %s\n", n, a.cfg.Backend.Index)
			return nil
		},
	}
}

// indexLoader is the subset of the backend the loader needs.
type indexLoader interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Bulk(ctx context.Context, index string, docs []db.Hit) error
}

// loadRecords creates the catalog index when missing and bulk-indexes every
// record read from r. It returns the number of records indexed.
func loadRecords(
	ctx context.Context,
	backend indexLoader,
	index string,
	r io.Reader,
	batchSize int,
	logger *zap.Logger,
) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultLoadBatch
	}

	exists, err := backend.IndexExists(ctx, index)
	if err != nil {
		return 0, fmt.Errorf("checking index: %w", err)
	}
	if !exists {
		def, err := searchrepo.CatalogIndex(index)
		if err != nil {
			return 0, fmt.Errorf("building index definition: %w", err)
		}
		if err := backend.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return 0, fmt.Errorf("creating index: %w", err)
		}
		logger.Info("Created index", zap.String("index", index))
	}

	total := 0
	batch := make([]db.Hit, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := backend.Bulk(ctx, index, batch); err != nil {
			return fmt.Errorf("bulk after %d records: %w", total, err)
		}
		total += len(batch)
		logger.Debug("Indexed batch", zap.Int("size", len(batch)), zap.Int("total", total))
		batch = batch[:0]
		return nil
	}

	err = readRecords(r, func(doc result.Document) error {
		if doc.ID() == "" {
			return fmt.Errorf("record %d has no id", total+len(batch)+1)
		}
		batch = append(batch, db.Hit{ID: doc.ID(), Source: doc.Source()})
		if len(batch) == batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return total, err
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

// readRecords streams documents from a JSON array or from concatenated
// (newline delimited) JSON objects.
func readRecords(r io.Reader, fn func(result.Document) error) error {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading records: %w", err)
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("reading records: %w", err)
		}
	}
	for dec.More() {
		var doc result.Document
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("decoding record: %w", err)
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err //nolint:wrapcheck // caller wraps
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte() //nolint:wrapcheck // cannot fail after ReadByte
	}
}
