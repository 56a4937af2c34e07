package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtside/scout"
	"github.com/courtside/scout/markdown"
)

func TestRender(t *testing.T) {
	t.Parallel()

	theme := scout.DefaultTheme()

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("", 80, theme)
		assert.Equal(t, "", result)
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("hello world", 80, theme)
		assert.Contains(t, result, "hello world")
	})

	t.Run("heading", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("# Scouting Report", 80, theme)
		assert.Contains(t, result, "Scouting Report")
	})

	t.Run("bold text", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("**bold**", 80, theme)
		assert.Contains(t, result, "bold")
	})

	t.Run("italic text", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("*italic*", 80, theme)
		assert.Contains(t, result, "italic")
	})

	t.Run("inline code", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("`code`", 80, theme)
		assert.Contains(t, result, "code")
	})

	t.Run("fenced code block preserves content without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```\neFG% = (FGM + 0.5 * 3PM) / FGA\n```"
		result := markdown.Render(src, 20, theme)
		assert.Contains(t, result, "eFG% = (FGM + 0.5 * 3PM) / FGA")
	})

	t.Run("fenced code block shows language label", func(t *testing.T) {
		t.Parallel()
		src := "```sql\nselect player from roster\n```"
		result := markdown.Render(src, 80, theme)
		assert.Contains(t, result, "sql")
		assert.Contains(t, result, "select player from roster")
	})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		src := "- one\n- two\n- three"
		result := markdown.Render(src, 80, theme)
		assert.Contains(t, result, "one")
		assert.Contains(t, result, "two")
		assert.Contains(t, result, "three")
	})

	t.Run("ordered list", func(t *testing.T) {
		t.Parallel()
		src := "1. first\n2. second"
		result := markdown.Render(src, 80, theme)
		assert.Contains(t, result, "1. first")
		assert.Contains(t, result, "2. second")
	})

	t.Run("link shows text and URL", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("[stats](https://example.com)", 80, theme)
		assert.Contains(t, result, "stats")
		assert.Contains(t, result, "example.com")
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := "word1 word2 word3 word4 word5 word6 word7 word8 word9 word10 word11 word12"
		result := markdown.Render(long, 30, theme)
		assert.Contains(t, result, "word1")
		assert.Contains(t, result, "word12")
		lines := strings.Split(result, "\n")
		assert.Greater(t, len(lines), 1)
	})

	t.Run("non-positive width falls back to 80 columns", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("word ", 40)
		result := markdown.Render(long, 0, theme)
		for _, line := range strings.Split(result, "\n") {
			assert.LessOrEqual(t, len(line), 80)
		}
		assert.Greater(t, len(strings.Split(result, "\n")), 1)
	})

	t.Run("multiple paragraphs separated by blank lines", func(t *testing.T) {
		t.Parallel()
		src := "first paragraph\n\nsecond paragraph"
		result := markdown.Render(src, 80, theme)
		assert.Contains(t, result, "first paragraph")
		assert.Contains(t, result, "second paragraph")
	})

	t.Run("blockquote gets a gutter", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("> quoted insight", 80, theme)
		assert.Contains(t, result, "quoted insight")
		assert.Contains(t, strings.Split(result, "\n")[0], ">")
	})

	t.Run("thematic break", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("above\n\n---\n\nbelow", 80, theme)
		assert.Contains(t, result, "---")
	})

	t.Run("nested list", func(t *testing.T) {
		t.Parallel()
		src := "- outer\n  - inner one\n  - inner two"
		result := markdown.Render(src, 80, theme)
		assert.Contains(t, result, "outer")
		assert.Contains(t, result, "inner one")
		assert.Contains(t, result, "inner two")
	})

	t.Run("list item continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		src := "- this is a very long list item that should wrap and have continuation lines properly indented"
		result := markdown.Render(src, 30, theme)
		lines := strings.Split(result, "\n")
		assert.True(t, strings.HasPrefix(lines[0], "- "))
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				assert.True(t, strings.HasPrefix(line, "  "), "continuation line should be indented: %q", line)
			}
		}
	})
}
