// Package version holds the build-time version string used in the CLI's
// "-version" output and as the rendered-document frontmatter generator tag.
package version

// Version is overridden at build time via -ldflags.
var Version = "dev"

// Name is the tool name used in frontmatter's generator field and in
// error-message prefixes.
const Name = "granolasync"

// Generator returns the "<tool-name> version" string written to every
// rendered document's frontmatter generator field.
func Generator() string {
	return Name + " " + Version
}
