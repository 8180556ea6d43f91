// Package sync implements the "sync" subcommand: run one pass of the
// sync engine against the configured remote document service.
package sync

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
	return "Sync rendered documents from the remote document service"
}

func (c *Command) Help() string {
	return `Usage: granolasync sync [options]

Lists every remote document, creates or updates the corresponding
rendered document for anything new or changed, and upserts the text
index and vector store for each document written.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("sync", flag.ExitOnError))
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

	summary, err := engine.Run(ctx)
	if err != nil {
		c.UI.Error(fmt.Sprintf("sync failed: %v", err))
		return 1
	}

	c.UI.Info(fmt.Sprintf(
		"listed %d, created %d, updated %d, skipped %d",
		summary.Listed, summary.Created, summary.Updated, summary.Skipped,
	))
	return 0
}
