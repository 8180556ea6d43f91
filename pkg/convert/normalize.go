package convert

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// defaultSpeaker is substituted when a segment or monologue omits a
// speaker name.
const defaultSpeaker = "Speaker"

var hhmmssSubseconds = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(\.\d+)?$`)

// Normalize projects a RawTranscript's polymorphic shape to a flat
// ordered sequence of Utterance. For the segments shape, each segment
// yields one utterance directly. For the monologues shape, each block
// within a monologue yields one utterance carrying that monologue's
// speaker and start timestamp.
func Normalize(rt RawTranscript) []Utterance {
	if len(rt.Segments) > 0 {
		out := make([]Utterance, 0, len(rt.Segments))
		for _, seg := range rt.Segments {
			out = append(out, Utterance{
				Speaker:         speakerOrDefault(seg.Speaker),
				TimestampHHMMSS: normalizeTimestamp(seg.Start),
				Text:            seg.Text,
			})
		}
		return out
	}

	out := make([]Utterance, 0)
	for _, mono := range rt.Monologues {
		ts := normalizeTimestamp(mono.Start)
		speaker := speakerOrDefault(mono.Speaker)
		for _, block := range mono.Blocks {
			out = append(out, Utterance{
				Speaker:         speaker,
				TimestampHHMMSS: ts,
				Text:            block.Text,
			})
		}
	}
	return out
}

func speakerOrDefault(speaker string) string {
	if speaker == "" {
		return defaultSpeaker
	}
	return speaker
}

// normalizeTimestamp handles the two documented start shapes: numeric
// seconds (floored to an integer, formatted HH:MM:SS) and an
// "HH:MM:SS[.sss]" string (subseconds dropped). A string holding a
// plain decimal number is read as seconds. Anything else yields an
// empty string, meaning the timestamp is omitted from the rendered
// utterance.
func normalizeTimestamp(start interface{}) string {
	switch v := start.(type) {
	case float64:
		return formatSeconds(v)
	case float32:
		return formatSeconds(float64(v))
	case int:
		return formatSeconds(float64(v))
	case int64:
		return formatSeconds(float64(v))
	case string:
		if m := hhmmssSubseconds.FindStringSubmatch(v); m != nil {
			return fmt.Sprintf("%s:%s:%s", m[1], m[2], m[3])
		}
		if seconds, err := strconv.ParseFloat(v, 64); err == nil {
			return formatSeconds(seconds)
		}
		return ""
	default:
		return ""
	}
}

func formatSeconds(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ""
	}
	total := int(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
