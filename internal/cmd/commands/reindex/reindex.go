// Package reindex implements the "reindex" subcommand: rebuild the
// text index and vector store from the on-disk rendered-document tree
// without any remote calls, per spec §4.8's documented reindex mode.
package reindex

import (
	"context"
	"flag"
	"fmt"

	"github.com/kadegen/granolasync/internal/cmd/base"
	"github.com/kadegen/granolasync/internal/cmd/runtime"
	"github.com/kadegen/granolasync/internal/config"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "Rebuild the text index and vector store from rendered documents"
}

func (c *Command) Help() string {
	return `Usage: granolasync reindex [options]

Walks the rendered-document tree, reads each file's frontmatter, and
performs the same index/vector upserts sync would, without contacting
the remote document service. Use this after restoring files from
backup or after enabling an index on an existing data directory.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("reindex", flag.ExitOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to the granolasync.hcl configuration file")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
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
		c.UI.Error(fmt.Sprintf("error initializing sync engine: %v", err))
		return 1
	}
	defer func() {
		if engine.TextIndex != nil {
			_ = engine.TextIndex.Close()
		}
	}()

	summary, err := engine.Reindex(ctx)
	if err != nil {
		c.UI.Error(fmt.Sprintf("reindex failed: %v", err))
		return 1
	}

	c.UI.Info(fmt.Sprintf(
		"listed %d, upserted %d, skipped %d",
		summary.Listed, summary.Updated, summary.Skipped,
	))
	return 0
}
