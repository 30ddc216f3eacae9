package converter

import "github.com/riverfjs/ogtext-go/internal/types"

// StyleScope tracks an open inline or block style.
type StyleScope struct {
	Kind  string // "bold", "italic", "heading", "link", ...
	Apply func(*types.Style)
}

// compose folds the open scopes, outermost first, into one style.
// ok is false when no scope is open.
func compose(scopes []StyleScope) (style types.Style, ok bool) {
	if len(scopes) == 0 {
		return types.Style{}, false
	}
	for _, s := range scopes {
		s.Apply(&style)
	}
	return style, true
}

func overlay(src types.Style) func(*types.Style) {
	return func(dst *types.Style) {
		if src.Fg != nil {
			dst.Fg = src.Fg
		}
		if src.Bg != nil {
			dst.Bg = src.Bg
		}
		if src.Scale != 0 {
			dst.Scale = src.Scale
		}
		if src.FontSize != 0 {
			dst.FontSize = src.FontSize
		}
		dst.Bold = dst.Bold || src.Bold
		dst.Italic = dst.Italic || src.Italic
		dst.Code = dst.Code || src.Code
		dst.Block = dst.Block || src.Block
		dst.Link = dst.Link || src.Link
		dst.Underline = dst.Underline || src.Underline
		dst.Strikethrough = dst.Strikethrough || src.Strikethrough
	}
}
