package ogtext

import (
	"github.com/riverfjs/ogtext-go/internal/converter"
	"github.com/riverfjs/ogtext-go/internal/parser"
)

// Convert turns markdown into a TextArea. Inline and block formatting
// become segment styles; unformatted text is pushed without a style.
//
// The only error is a wrapped ErrInvalidFontBytes when the configured
// CodeFont cannot be decoded.
func Convert(markdown string, opts ...Option) (*TextArea, error) {
	options := applyOptions(opts...)
	if options.Normalize {
		markdown = converter.Normalize(markdown)
	}
	return parser.Parse(markdown, options.Config)
}
