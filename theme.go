package scout

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the
// app automatically matches any color scheme.
type Theme struct {
	Topic      int // submitted topic accent
	Step       int // intermediate step text
	Suggestion int // follow-up suggestion footer
	Error      int // error messages
	Success    int // completion indicators
	Muted      int // status bar, placeholders
	Accent     int // headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Topic:      4,
		Step:       8,
		Suggestion: 6,
		Error:      1,
		Success:    2,
		Muted:      8,
		Accent:     5,
	}
}
