package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
	"github.com/kailas-cloud/fedsearch/internal/repository/fixture"
)

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "Import a YAML fixture file into the record store",
		ArgsUsage: "<file.yaml>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("fixture file path is required")
			}
			fixtures, err := fixture.Load(path)
			if err != nil {
				return err
			}

			a, err := bootstrap(ctx, c)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.requireStore(); err != nil {
				return err
			}

			records := fixtures.Records()
			counts := make(map[string]int, len(records))
			total := 0
			for _, kind := range entity.All() {
				raws := records[kind]
				if len(raws) == 0 {
					continue
				}
				assigned := assignIDs(raws)
				n, err := a.records.PutMany(ctx, kind, raws)
				if err != nil {
					return fmt.Errorf("load %s: %w", kind, err)
				}
				a.logger.Info("Loaded records",
					zap.String("type", kind.String()),
					zap.Int("records", n),
					zap.Int("generated_ids", assigned),
				)
				counts[kind.String()] = n
				total += n
			}

			fmt.Fprint(c.Root().Writer, renderCounts(fmt.Sprintf("Loaded %d records", total), counts))
			return nil
		},
	}
}

// assignIDs gives every record without an id a random uuid. Returns how many were assigned.
func assignIDs(raws []record.Raw) int {
	n := 0
	for _, raw := range raws {
		if raw.First("id", "_id") != "" {
			if raw.String("id") == "" {
				raw["id"] = raw.First("_id")
			}
			continue
		}
		raw["id"] = uuid.New().String()
		n++
	}
	return n
}
