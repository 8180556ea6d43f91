// Package version implements the "version" subcommand.
package version

import (
	"github.com/kadegen/granolasync/internal/cmd/base"
	"github.com/kadegen/granolasync/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the granolasync version"
}

func (c *Command) Help() string {
	return "Usage: granolasync version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Generator())
	return 0
}
