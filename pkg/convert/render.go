package convert

import (
	"fmt"
	"strings"
)

const noTranscriptLine = "_No transcript content available._"

// renderBody builds the rendered-document body: a title heading, one
// metadata line, and one paragraph per utterance (or the documented
// placeholder line when there are none).
func renderBody(meta DocumentMetadata, utterances []Utterance, createdAtDate string) string {
	var b strings.Builder

	title := meta.Title
	if title == "" {
		title = "Untitled Meeting"
	}
	fmt.Fprintf(&b, "# %s\n", title)
	fmt.Fprintf(&b, "%s\n\n", metadataLine(meta, createdAtDate))

	if len(utterances) == 0 {
		b.WriteString(noTranscriptLine)
		b.WriteString("\n")
		return b.String()
	}

	paragraphs := make([]string, 0, len(utterances))
	for _, u := range utterances {
		paragraphs = append(paragraphs, utteranceParagraph(u))
	}
	b.WriteString(strings.Join(paragraphs, "\n\n"))
	b.WriteString("\n")
	return b.String()
}

func utteranceParagraph(u Utterance) string {
	if u.TimestampHHMMSS == "" {
		return fmt.Sprintf("**%s:** %s", u.Speaker, u.Text)
	}
	return fmt.Sprintf("**%s (%s):** %s", u.Speaker, u.TimestampHHMMSS, u.Text)
}

// metadataLine builds "_Date: ... · Duration: ...m · Participants: ...._",
// omitting any segment whose source field is absent.
func metadataLine(meta DocumentMetadata, createdAtDate string) string {
	parts := []string{"Date: " + createdAtDate}

	if meta.DurationSeconds != nil {
		parts = append(parts, fmt.Sprintf("Duration: %dm", *meta.DurationSeconds/60))
	}
	if len(meta.Participants) > 0 {
		parts = append(parts, "Participants: "+strings.Join(meta.Participants, ", "))
	}

	return "_" + strings.Join(parts, " · ") + "_"
}
