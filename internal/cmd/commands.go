package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/kadegen/granolasync/internal/cmd/base"
	"github.com/kadegen/granolasync/internal/cmd/commands/reindex"
	"github.com/kadegen/granolasync/internal/cmd/commands/search"
	"github.com/kadegen/granolasync/internal/cmd/commands/semantic"
	"github.com/kadegen/granolasync/internal/cmd/commands/summarize"
	syncCmd "github.com/kadegen/granolasync/internal/cmd/commands/sync"
	versionCmd "github.com/kadegen/granolasync/internal/cmd/commands/version"
)

// Commands is the full subcommand table, built once by initCommands.
var Commands map[string]cli.CommandFactory

// initCommands populates Commands, handing every subcommand the
// shared base.Command (UI + a component-named logger).
func initCommands(log hclog.Logger, ui cli.Ui) {
	Commands = map[string]cli.CommandFactory{
		"sync": func() (cli.Command, error) {
			return &syncCmd.Command{Command: &base.Command{UI: ui, Log: log.Named("sync")}}, nil
		},
		"reindex": func() (cli.Command, error) {
			return &reindex.Command{Command: &base.Command{UI: ui, Log: log.Named("reindex")}}, nil
		},
		"search": func() (cli.Command, error) {
			return &search.Command{Command: &base.Command{UI: ui, Log: log.Named("search")}}, nil
		},
		"semantic": func() (cli.Command, error) {
			return &semantic.Command{Command: &base.Command{UI: ui, Log: log.Named("semantic")}}, nil
		},
		"summarize": func() (cli.Command, error) {
			return &summarize.Command{Command: &base.Command{UI: ui, Log: log.Named("summarize")}}, nil
		},
		"version": func() (cli.Command, error) {
			return &versionCmd.Command{Command: &base.Command{UI: ui, Log: log.Named("version")}}, nil
		},
	}
}
