package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a federated search and print the results",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "type",
				Usage: "Entity type to search (repeatable, comma-separated)",
			},
			&cli.StringSliceFlag{
				Name:  "filter",
				Usage: "Metadata equality filter key=value (repeatable)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Page size",
				Value: request.DefaultLimit,
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Page start",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "relevance, date or title",
			},
			&cli.FloatFlag{
				Name:  "threshold",
				Usage: "Fuzzy threshold in [0,1] (default from config)",
			},
			&cli.BoolFlag{
				Name:  "facets",
				Usage: "Print facet tables after the results",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			filters, err := parseFilters(c.StringSlice("filter"))
			if err != nil {
				return err
			}

			a, err := bootstrap(ctx, c)
			if err != nil {
				return err
			}
			defer a.Close()

			threshold := a.cfg.Search.Threshold()
			if c.IsSet("threshold") {
				threshold = c.Float("threshold")
			}

			req, err := request.New(request.Params{
				Query:     strings.Join(c.Args().Slice(), " "),
				Types:     c.StringSlice("type"),
				Filters:   filters,
				Limit:     c.Int("limit"),
				Offset:    c.Int("offset"),
				SortBy:    c.String("sort"),
				Threshold: &threshold,
			})
			if err != nil {
				return err
			}

			resp, err := a.search.Search(ctx, &req)
			if err != nil {
				return err
			}
			fmt.Fprint(c.Root().Writer, renderResponse(resp, req.Offset(), c.Bool("facets")))
			return nil
		},
	}
}

func suggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Print title completions for a partial query",
		ArgsUsage: "<partial>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum suggestions (default from config)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := bootstrap(ctx, c)
			if err != nil {
				return err
			}
			defer a.Close()

			suggestions, err := a.search.Suggest(ctx, strings.Join(c.Args().Slice(), " "), c.Int("limit"))
			if err != nil {
				return err
			}
			fmt.Fprint(c.Root().Writer, renderList("Suggestions", suggestions))
			return nil
		},
	}
}

func trendingCommand() *cli.Command {
	return &cli.Command{
		Name:  "trending",
		Usage: "Print the configured trending searches",
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := bootstrap(ctx, c)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprint(c.Root().Writer, renderList("Trending", a.search.Trending()))
			return nil
		},
	}
}

// parseFilters turns key=value pairs into a filter map.
func parseFilters(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: filter %q must be key=value", domain.ErrInvalidRequest, p)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
