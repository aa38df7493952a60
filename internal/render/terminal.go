// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"regexp"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

var (
	leadingSpaceANSI  = regexp.MustCompile(`^(?:\x1b\[[0-9;]*m|\s)*`)
	trailingSpaceANSI = regexp.MustCompile(`(?:\x1b\[[0-9;]*m|\s)*$`)
)

// Terminal renders Markdown for a terminal of the given width. If glamour
// fails the Markdown is returned unchanged.
func Terminal(markdown string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"), // avoid OSC background queries
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := md.Render(markdown)
	if err != nil {
		return markdown
	}
	out = leadingSpaceANSI.ReplaceAllString(out, "")
	return trailingSpaceANSI.ReplaceAllString(out, "")
}
