// Package base provides the shared command scaffolding every
// subcommand embeds: a UI, a named logger, and a flag.FlagSet with a
// rendered Help() string.
package base

import (
	"bytes"
	"flag"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is the shared state every subcommand embeds: a UI for
// output and a named logger for diagnostics.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger
}

// FlagSet wraps flag.FlagSet to render a "Flags:" help block alongside
// each subcommand's own Help() text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps fs for use by a subcommand's Flags() method.
func NewFlagSet(fs *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: fs}
}

// Help renders the flag set's usage text as a "\n\nFlags:\n..." block.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	orig := f.FlagSet.Output()
	f.FlagSet.SetOutput(&buf)
	f.FlagSet.PrintDefaults()
	f.FlagSet.SetOutput(orig)

	if buf.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("\n\nFlags:\n\n%s", buf.String())
}
