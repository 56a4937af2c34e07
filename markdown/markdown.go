// Package markdown renders a research report's markdown to ANSI-styled
// terminal output using goldmark for parsing and lipgloss for styling.
package markdown

import "github.com/courtside/scout"

// Render parses markdown source and returns ANSI-styled terminal
// output. Paragraphs and list items are word-wrapped to width; code
// blocks keep their lines intact. A non-positive width falls back to
// 80 columns.
func Render(source string, width int, theme scout.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}
