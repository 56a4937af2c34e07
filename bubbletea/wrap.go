package bubbletea

import (
	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// fitLine fits s into width terminal cells, truncating with an
// ellipsis when it overflows. Width is measured in grapheme cells, not
// bytes, so wide characters count double.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	return rw.Truncate(s, width, "…")
}
