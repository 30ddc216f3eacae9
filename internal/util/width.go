package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is used when a non-positive tab width is given.
const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces, aligning to tab stops
// measured in monospace columns.
func ExpandTabs(text string, tabWidth int) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		switch ru {
		case '\t':
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		case '\n':
			builder.WriteRune(ru)
			column = 0
			continue
		}
		builder.WriteRune(ru)
		column += RuneWidth(ru)
	}
	return builder.String()
}

// RuneWidth is the monospace column width of ru, at least 1.
func RuneWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 1 {
		return 1
	}
	return w
}

// DisplayWidth reports the monospace column width of text.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += RuneWidth(ru)
	}
	return width
}

// PadRight pads text with spaces up to width columns.
func PadRight(text string, width int) string {
	if w := DisplayWidth(text); w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}

// Truncate shortens text to at most width columns, appending tail when cut.
func Truncate(text string, width int, tail string) string {
	return runewidth.Truncate(text, width, tail)
}

// VisibleText returns text with control characters replaced by their
// escaped form, for single-line debug output.
func VisibleText(text string) string {
	r := strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`)
	return r.Replace(text)
}
