// Package runtime builds a syncengine.Engine (and its collaborators)
// from a resolved config.Config, the one piece of wiring every
// subcommand needs and none of them should duplicate.
package runtime

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/internal/config"
	"github.com/kadegen/granolasync/internal/version"
	"github.com/kadegen/granolasync/pkg/embed"
	"github.com/kadegen/granolasync/pkg/embed/bedrock"
	"github.com/kadegen/granolasync/pkg/embed/mock"
	"github.com/kadegen/granolasync/pkg/embed/ollama"
	"github.com/kadegen/granolasync/pkg/paths"
	"github.com/kadegen/granolasync/pkg/remote"
	"github.com/kadegen/granolasync/pkg/syncengine"
	"github.com/kadegen/granolasync/pkg/textindex"
	"github.com/kadegen/granolasync/pkg/vectorstore"
)

// Build resolves Paths, opens the text index and vector store, builds
// the configured embedder, and constructs a ready-to-run Engine.
// Callers are responsible for closing the returned Index via
// Engine.TextIndex.Close() once done.
func Build(ctx context.Context, cfg config.Config, logger hclog.Logger) (*syncengine.Engine, error) {
	p, err := resolvePaths(cfg)
	if err != nil {
		return nil, err
	}
	fs := afero.NewOsFs()
	if err := paths.EnsureDirs(fs, p); err != nil {
		return nil, apperr.Wrap(apperr.KindFilesystem, "ensure data directories", err)
	}

	textIndex, err := textindex.OpenOrCreate(p.IndexText, logger)
	if err != nil {
		return nil, err
	}

	embedder, err := buildEmbedder(ctx, cfg.Embedder)
	if err != nil {
		return nil, err
	}

	vectors, err := vectorstore.Open(fs, p.IndexVectors, embedder.Dim())
	if err != nil {
		return nil, err
	}

	token, err := cfg.ResolveToken()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindAuth, "resolve remote token", err)
	}
	client := remote.New(cfg.Remote.BaseURL, token)
	minDelay, maxDelay := cfg.Throttle.ThrottleDurations()
	client.SetThrottle(minDelay, maxDelay)

	return syncengine.New(syncengine.Engine{
		Remote:    client,
		Paths:     p,
		FS:        fs,
		TextIndex: textIndex,
		Vectors:   vectors,
		Embedder:  embedder,
		Generator: version.Generator(),
		Logger:    logger,
	}), nil
}

func resolvePaths(cfg config.Config) (paths.Paths, error) {
	if cfg.Paths.DataDir != "" {
		return paths.New(cfg.Paths.DataDir), nil
	}
	return paths.Default()
}

func buildEmbedder(ctx context.Context, cfg config.EmbedderConfig) (embed.Embedder, error) {
	switch cfg.Provider {
	case "", "mock":
		return mock.New(cfg.Dimensions), nil
	case "ollama":
		return ollama.New(ollama.Config{BaseURL: cfg.OllamaURL, Model: cfg.Model, Dim: cfg.Dimensions}), nil
	case "bedrock":
		bedrockCfg := bedrock.DefaultConfig()
		if cfg.Region != "" {
			bedrockCfg.Region = cfg.Region
		}
		if cfg.Model != "" {
			bedrockCfg.EmbeddingModel = cfg.Model
		}
		if cfg.Dimensions != 0 {
			bedrockCfg.Dimensions = cfg.Dimensions
		}
		return bedrock.New(ctx, bedrockCfg)
	default:
		return nil, apperr.New(apperr.KindEmbedding, fmt.Sprintf("unknown embedder provider %q", cfg.Provider))
	}
}
