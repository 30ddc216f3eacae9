// Package ogtext builds styled lines of text out of pieces and renders them
// onto images such as social preview cards.
package ogtext

import (
	"github.com/riverfjs/ogtext-go/internal/textarea"
	"github.com/riverfjs/ogtext-go/internal/typeface"
	"github.com/riverfjs/ogtext-go/internal/types"
)

// Exported type aliases
type (
	TextArea      = textarea.TextArea
	Segment       = textarea.Segment
	Range         = textarea.Range
	Font          = typeface.Font
	Style         = types.Style
	Symbol        = types.Symbol
	RenderConfig  = types.RenderConfig
	Align         = types.Align
	VerticalAlign = types.VerticalAlign
)

const (
	AlignLeft   = types.AlignLeft
	AlignCenter = types.AlignCenter
	AlignRight  = types.AlignRight

	AlignTop    = types.AlignTop
	AlignMiddle = types.AlignMiddle
	AlignBottom = types.AlignBottom
)

// ErrInvalidFontBytes is returned by TextArea.Push and ParseFont when font
// bytes cannot be decoded. Test for it with errors.Is.
var ErrInvalidFontBytes = typeface.ErrInvalidFontBytes

// NewTextArea returns an empty TextArea.
func NewTextArea() *TextArea {
	return textarea.New()
}

// ParseFont decodes TrueType or OpenType font bytes.
func ParseFont(data []byte) (*Font, error) {
	return typeface.Parse(data)
}

// DefaultStyle returns the default body text style.
func DefaultStyle() Style {
	return types.DefaultStyle()
}
