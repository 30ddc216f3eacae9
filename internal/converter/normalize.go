package converter

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize converts line endings to "\n" and composes the text to NFC so
// that combining sequences occupy the same bytes as their precomposed form.
func Normalize(markdown string) string {
	return norm.NFC.String(newlineReplacer.Replace(markdown))
}
