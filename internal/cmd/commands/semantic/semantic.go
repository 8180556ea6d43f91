// Package semantic implements the "semantic" subcommand: embed a query
// string and retrieve the nearest stored passages by cosine similarity.
package semantic

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
	flagTopK   int
}

func (c *Command) Synopsis() string {
	return "Semantic search over rendered documents"
}

func (c *Command) Help() string {
	return `Usage: granolasync semantic [options] <query terms...>

Embeds the query with the configured embedder and returns the top
matches from the vector store by cosine similarity.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("semantic", flag.ExitOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to the granolasync.hcl configuration file")
	f.IntVar(&c.flagTopK, "top", 10, "Maximum number of results to print")
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
		c.UI.Error(fmt.Sprintf("error initializing semantic search: %v", err))
		return 1
	}
	defer func() {
		if engine.TextIndex != nil {
			_ = engine.TextIndex.Close()
		}
	}()

	hits, err := engine.SearchSemantic(ctx, query, c.flagTopK)
	if err != nil {
		c.UI.Error(fmt.Sprintf("semantic search failed: %v", err))
		return 1
	}

	for _, hit := range hits {
		c.UI.Output(fmt.Sprintf("%.4f  %s  %s", hit.Score, hit.DocID, hit.Path))
	}
	return 0
}
