package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadegen/granolasync/pkg/summarize"
)

func TestSummarizeReturnsAllFourSections(t *testing.T) {
	p := New()
	summary, err := p.Summarize(context.Background(), "This meeting covered the roadmap.", summarize.Options{Model: "mock"})
	require.NoError(t, err)
	assert.NotEmpty(t, summary.KeyTopics)
	assert.NotEmpty(t, summary.ActionItems)
	assert.NotEmpty(t, summary.Decisions)
	assert.NotEmpty(t, summary.FollowUps)
}

func TestSummarizeRejectsEmptyDocument(t *testing.T) {
	p := New()
	_, err := p.Summarize(context.Background(), "   ", summarize.Options{})
	assert.Error(t, err)
}
