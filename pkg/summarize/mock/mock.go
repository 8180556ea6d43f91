// Package mock is a deterministic summarize.Provider used by tests and
// by runs with no chat-completion backend configured, grounded in
// pkg/ai/mock.Provider.Summarize's deterministic-output approach.
package mock

import (
	"context"
	"strings"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/pkg/summarize"
)

// Provider returns the same fixed summary for any non-blank input, so
// tests can assert on structure without depending on real model output.
type Provider struct{}

// New creates a mock summarizer.
func New() *Provider { return &Provider{} }

func (p *Provider) Summarize(_ context.Context, text string, opts summarize.Options) (*summarize.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.New(apperr.KindSummarization, "document has no content to summarize")
	}

	// Chunking runs on the same code path a real model-backed provider
	// would use; its result does not affect the returned summary.
	_ = summarize.Chunk(text, opts.ChunkChars)

	return &summarize.Summary{
		KeyTopics:   []string{"Topic A", "Topic B"},
		ActionItems: []string{"Follow up with the team"},
		Decisions:   []string{"Proceed with the proposed plan"},
		FollowUps:   []string{"Schedule a check-in next week"},
	}, nil
}
