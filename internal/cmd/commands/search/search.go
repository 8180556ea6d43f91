// Package search implements the "search" subcommand: full-text query
// against the text index.
package search

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/kadegen/granolasync/internal/cmd/base"
	"github.com/kadegen/granolasync/internal/cmd/runtime"
	"github.com/kadegen/granolasync/internal/config"
)

type Command struct {
	*base.Command

	flagConfig string
	flagTopN   int
}

func (c *Command) Synopsis() string {
	return "Full-text search over rendered documents"
}

func (c *Command) Help() string {
	return `Usage: granolasync search [options] <query terms...>

Runs a full-text query across every document title and body currently
in the text index and prints the top matches.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("search", flag.ExitOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to the granolasync.hcl configuration file")
	f.IntVar(&c.flagTopN, "top", 10, "Maximum number of results to print")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	query := strings.Join(f.Args(), " ")
	if query == "" {
		c.UI.Error("a search query is required")
		return 1
	}

	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	ctx := context.Background()
	engine, err := runtime.Build(ctx, cfg, c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error initializing search: %v", err))
		return 1
	}
	defer func() {
		if engine.TextIndex != nil {
			_ = engine.TextIndex.Close()
		}
	}()

	hits, err := engine.SearchText(query, c.flagTopN)
	if err != nil {
		c.UI.Error(fmt.Sprintf("search failed: %v", err))
		return 1
	}

	for _, hit := range hits {
		c.UI.Output(fmt.Sprintf("%.4f  %s  %s", hit.Score, hit.Title, hit.Path))
	}
	return 0
}
