package paths

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
	"github.com/iancoleman/strcase"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// diacriticFolder strips combining marks after NFD decomposition, the
// standard Go idiom for ASCII-folding accented text ("café" -> "cafe").
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug produces a URL-safe, lowercase ASCII projection of title: emoji
// and diacritics are stripped, remaining runs of non [a-z0-9] characters
// collapse to a single hyphen, and leading/trailing hyphens are trimmed.
// An empty result (including an empty input title) becomes "untitled".
// Slug is idempotent: Slug(Slug(x)) == Slug(x).
func Slug(title string) string {
	s := gomoji.RemoveEmojis(title)

	folded, _, err := transform.String(diacriticFolder, s)
	if err == nil {
		s = folded
	}

	s = strcase.ToKebab(s)
	s = strings.ToLower(s)
	s = nonSlugRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return "untitled"
	}
	return s
}
