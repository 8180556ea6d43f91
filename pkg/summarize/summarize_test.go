package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkNoWindowReturnsWhole(t *testing.T) {
	chunks := Chunk("hello world", 0)
	assert.Equal(t, []string{"hello world"}, chunks)
}

func TestChunkSplitsOnParagraphBoundaries(t *testing.T) {
	text := strings.Join([]string{"first paragraph", "second paragraph", "third paragraph"}, "\n\n")
	chunks := Chunk(text, 20)
	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 40) // generous bound; single paragraphs may slightly exceed size
	}
}

func TestChunkShortTextIsSingleChunk(t *testing.T) {
	chunks := Chunk("short", 1000)
	assert.Equal(t, []string{"short"}, chunks)
}
