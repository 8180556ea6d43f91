// Package frontmatter reads and writes the structured YAML header at the
// start of every rendered document. It is the only reader that inspects
// a rendered document's header; the converter (pkg/convert) is the only
// writer of new documents, though this package owns serialization.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kadegen/granolasync/internal/apperr"
)

const delimiter = "---"

// Frontmatter is the structured header embedded in every rendered
// document. Field order on serialization follows the documented
// rendered-document file format.
type Frontmatter struct {
	DocID           string    `yaml:"doc_id"`
	Source          string    `yaml:"source"`
	CreatedAt       time.Time `yaml:"created_at"`
	RemoteUpdatedAt time.Time `yaml:"remote_updated_at,omitempty"`
	Title           string    `yaml:"title,omitempty"`
	Participants    []string  `yaml:"participants,omitempty"`
	DurationSeconds int       `yaml:"duration_seconds,omitempty"`
	Labels          []string  `yaml:"labels,omitempty"`
	Generator       string    `yaml:"generator"`
}

// FreshnessTimestamp returns RemoteUpdatedAt when set, else CreatedAt —
// the "remote_updated_at or created_at" rule used by the sync engine's
// action decision.
func (f Frontmatter) FreshnessTimestamp() time.Time {
	if !f.RemoteUpdatedAt.IsZero() {
		return f.RemoteUpdatedAt
	}
	return f.CreatedAt
}

// Read parses the frontmatter block from the start of data. It returns
// (nil, "", nil) when data does not begin with the delimiter line —
// "frontmatter absent" is not an error. A first line of "---" with no
// matching closing delimiter is a parse error.
func Read(data []byte) (*Frontmatter, string, error) {
	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != delimiter {
		return nil, "", nil
	}

	closeIdx := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == delimiter {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 {
		return nil, "", apperr.New(apperr.KindParse, fmt.Sprintf("frontmatter: unterminated header, no closing %q line", delimiter))
	}

	header := strings.Join(lines[1:closeIdx], "\n")
	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, "", apperr.Wrap(apperr.KindParse, "frontmatter: decode header", err)
	}

	body := strings.Join(lines[closeIdx+1:], "\n")
	body = strings.TrimPrefix(body, "\n")

	return &fm, body, nil
}

// Write serializes fm and body into the persisted rendered-document
// form: "---\n" + frontmatter_yaml + "---\n\n" + body.
func Write(fm Frontmatter, body string) []byte {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	_ = enc.Encode(fm)
	_ = enc.Close()

	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(body)
	return buf.Bytes()
}
