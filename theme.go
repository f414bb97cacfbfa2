package vigil

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg   int // User message accent
	Reasoning int // Classified reasoning text
	Alert     int // Errors, out-of-range vitals
	Good      int // In-range vitals, success indicators
	Muted     int // Status bar, placeholders
	CodeBg    int // Code block background
	Accent    int // Headings, links, vital labels
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Reasoning: 8,
		Alert:     1,
		Good:      2,
		Muted:     8,
		CodeBg:    0,
		Accent:    5,
	}
}
