// Package summarize is the optional summarizer collaborator: given a
// rendered document and a configured model identifier, produce a
// structured summary with "Key Topics", "Action Items", "Decisions",
// and "Follow-ups" sections. Grounded on
// pkg/indexer/pipeline/steps/llm_summary.go (chunking-by-size,
// options shape) and pkg/ai/mock/provider.go (deterministic mock).
package summarize

import (
	"context"
	"strings"
)

// Summary is the structured output of a summarization call.
type Summary struct {
	KeyTopics   []string
	ActionItems []string
	Decisions   []string
	FollowUps   []string
}

// Options configures a summarization call.
type Options struct {
	Model       string
	ChunkChars  int // character window for chunking long transcripts; 0 means "no chunking"
}

// Provider is the summarizer collaborator contract. A failure is
// fatal for the single document being summarized and never alters
// any stored state — callers must not persist a partial Summary.
type Provider interface {
	Summarize(ctx context.Context, text string, opts Options) (*Summary, error)
}

// Chunk splits text into windows of at most size characters, breaking
// on paragraph boundaries where possible so a chunk never splits an
// utterance mid-sentence unless a single paragraph itself exceeds
// size.
func Chunk(text string, size int) []string {
	if size <= 0 || len(text) <= size {
		return []string{text}
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current strings.Builder

	for _, p := range paragraphs {
		if current.Len() > 0 && current.Len()+len(p)+2 > size {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
