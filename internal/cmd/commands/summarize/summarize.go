// Package summarize implements the "summarize" subcommand: generate a
// structured summary for one already-synced document. Never invoked
// implicitly by sync, so a summarization failure can never alter
// stored sync state (spec §6.3).
package summarize

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/kadegen/granolasync/internal/cmd/base"
	"github.com/kadegen/granolasync/internal/config"
	"github.com/kadegen/granolasync/pkg/frontmatter"
	"github.com/kadegen/granolasync/pkg/paths"
	"github.com/kadegen/granolasync/pkg/summarize"
	"github.com/kadegen/granolasync/pkg/summarize/mock"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "Summarize one rendered document by doc_id"
}

func (c *Command) Help() string {
	return `Usage: granolasync summarize [options] <doc_id>

Locates the rendered document with the given doc_id, chunks its body
if needed, and prints a structured summary (key topics, action items,
decisions, follow-ups). A summarization failure affects only this
command; it never touches the synced data directory.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("summarize", flag.ExitOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to the granolasync.hcl configuration file")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("exactly one doc_id argument is required")
		return 1
	}
	docID := f.Arg(0)

	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	p, err := resolvePaths(cfg)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error resolving data directory: %v", err))
		return 1
	}

	fs := afero.NewOsFs()
	body, title, err := findRenderedBody(fs, p, docID)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error locating document %s: %v", docID, err))
		return 1
	}

	provider := selectProvider(cfg)
	summary, err := provider.Summarize(context.Background(), body, summarize.Options{
		Model:      cfg.Summarizer.Model,
		ChunkChars: cfg.Summarizer.ChunkChars,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("summarization failed: %v", err))
		return 1
	}

	c.UI.Output(fmt.Sprintf("Summary of %q (%s)\n", title, docID))
	printSection(c, "Key Topics", summary.KeyTopics)
	printSection(c, "Action Items", summary.ActionItems)
	printSection(c, "Decisions", summary.Decisions)
	printSection(c, "Follow-ups", summary.FollowUps)
	return 0
}

func printSection(c *Command, name string, items []string) {
	c.UI.Output(name + ":")
	for _, item := range items {
		c.UI.Output("  - " + item)
	}
}

func resolvePaths(cfg config.Config) (paths.Paths, error) {
	if cfg.Paths.DataDir != "" {
		return paths.New(cfg.Paths.DataDir), nil
	}
	return paths.Default()
}

// selectProvider returns the configured summarizer. Only a
// deterministic mock ships today; the Provider interface is what any
// future LLM-backed implementation plugs into.
func selectProvider(_ config.Config) summarize.Provider {
	return mock.New()
}

// findRenderedBody walks the rendered tree for the file whose
// frontmatter doc_id matches docID, returning its body and title.
func findRenderedBody(fs afero.Fs, p paths.Paths, docID string) (body, title string, err error) {
	entries, err := afero.ReadDir(fs, p.Rendered)
	if err != nil {
		return "", "", err
	}

	for _, info := range entries {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".md") {
			continue
		}
		path := filepath.Join(p.Rendered, info.Name())
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return "", "", err
		}
		fm, docBody, err := frontmatter.Read(data)
		if err != nil || fm == nil {
			continue
		}
		if fm.DocID == docID {
			return docBody, fm.Title, nil
		}
	}

	return "", "", os.ErrNotExist
}
