package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSegmentsShapeFreshCreate(t *testing.T) {
	meta := DocumentMetadata{
		DocumentSummary: DocumentSummary{
			DocID:     "d1",
			Title:     "Weekly Sync",
			CreatedAt: "2025-10-28T15:04:05Z",
		},
	}
	payload := map[string]interface{}{
		"segments": []interface{}{
			map[string]interface{}{"speaker": "Alice", "start": 12.5, "text": "Hello"},
		},
	}
	raw, err := DecodeRawTranscript(payload)
	require.NoError(t, err)

	rendered, err := Convert(meta, raw, "granolasync 1.0.0")
	require.NoError(t, err)

	assert.Equal(t, "d1", rendered.Frontmatter.DocID)
	assert.Contains(t, rendered.Body, "# Weekly Sync")
	assert.Contains(t, rendered.Body, "**Alice (00:00:12):** Hello")
}

func TestConvertMonologuesShape(t *testing.T) {
	meta := DocumentMetadata{DocumentSummary: DocumentSummary{DocID: "d2", CreatedAt: "2025-10-28T00:00:00Z"}}
	payload := map[string]interface{}{
		"monologues": []interface{}{
			map[string]interface{}{
				"speaker": "Bob",
				"start":   "00:01:02.500",
				"blocks": []interface{}{
					map[string]interface{}{"text": "First point."},
					map[string]interface{}{"text": "Second point."},
				},
			},
		},
	}
	raw, err := DecodeRawTranscript(payload)
	require.NoError(t, err)

	rendered, err := Convert(meta, raw, "granolasync 1.0.0")
	require.NoError(t, err)

	assert.Contains(t, rendered.Body, "**Bob (00:01:02):** First point.")
	assert.Contains(t, rendered.Body, "**Bob (00:01:02):** Second point.")
}

func TestConvertEmptyTranscriptPlaceholder(t *testing.T) {
	meta := DocumentMetadata{DocumentSummary: DocumentSummary{DocID: "d3", CreatedAt: "2025-10-28T00:00:00Z"}}
	raw, err := DecodeRawTranscript(map[string]interface{}{})
	require.NoError(t, err)

	rendered, err := Convert(meta, raw, "granolasync 1.0.0")
	require.NoError(t, err)
	assert.Contains(t, rendered.Body, noTranscriptLine)
}

func TestConvertMissingSpeakerDefaultsToSpeaker(t *testing.T) {
	meta := DocumentMetadata{DocumentSummary: DocumentSummary{DocID: "d4", CreatedAt: "2025-10-28T00:00:00Z"}}
	payload := map[string]interface{}{
		"segments": []interface{}{
			map[string]interface{}{"start": 0, "text": "Anonymous remark"},
		},
	}
	raw, err := DecodeRawTranscript(payload)
	require.NoError(t, err)

	rendered, err := Convert(meta, raw, "granolasync 1.0.0")
	require.NoError(t, err)
	assert.Contains(t, rendered.Body, "**Speaker (00:00:00):** Anonymous remark")
}

func TestConvertIsDeterministic(t *testing.T) {
	meta := DocumentMetadata{DocumentSummary: DocumentSummary{DocID: "d5", Title: "Standup", CreatedAt: "2025-10-28T00:00:00Z"}}
	payload := map[string]interface{}{
		"segments": []interface{}{
			map[string]interface{}{"speaker": "Alice", "start": 5.0, "text": "Hi"},
		},
	}
	raw, err := DecodeRawTranscript(payload)
	require.NoError(t, err)

	first, err := Convert(meta, raw, "granolasync 1.0.0")
	require.NoError(t, err)
	second, err := Convert(meta, raw, "granolasync 1.0.0")
	require.NoError(t, err)

	assert.Equal(t, first.Body, second.Body)
}

func TestNormalizeUnparseableTimestampOmitsIt(t *testing.T) {
	utterances := Normalize(RawTranscript{
		Segments: []RawSegment{{Speaker: "Alice", Start: true, Text: "weird start value"}},
	})
	require.Len(t, utterances, 1)
	assert.Equal(t, "", utterances[0].TimestampHHMMSS)
}
