package types

import "image/color"

// Style defines the visual attributes of a segment of text.
// Nil colors and zero sizes mean "inherit from the enclosing style".
type Style struct {
	Fg color.Color
	Bg color.Color

	Bold          bool
	Italic        bool
	Code          bool // monospace face
	Block         bool // full-width code block
	Link          bool
	Underline     bool
	Strikethrough bool

	// Scale multiplies the base font size (H1=2.0, H2=1.5, ...).
	Scale float64
	// FontSize overrides the base font size in points when > 0.
	FontSize float64
}

// DefaultStyle returns the default body text style.
func DefaultStyle() Style {
	return Style{Fg: color.Black, Scale: 1.0}
}

// Merge returns other with nil colors and zero sizes replaced by the
// corresponding fields of s. Flags are taken from other as-is.
func (s Style) Merge(other Style) Style {
	if other.Fg == nil {
		other.Fg = s.Fg
	}
	if other.Bg == nil {
		other.Bg = s.Bg
	}
	if other.Scale == 0 {
		other.Scale = s.Scale
	}
	if other.FontSize == 0 {
		other.FontSize = s.FontSize
	}
	return other
}

// LinkBlue is the standard color for hyperlinks.
var LinkBlue = color.RGBA{R: 0, G: 0, B: 238, A: 255}

// CodeBg is the light gray background of code spans and blocks.
var CodeBg = color.RGBA{R: 230, G: 230, B: 230, A: 255}

// QuoteFg is the foreground color of blockquotes.
var QuoteFg = color.RGBA{R: 96, G: 96, B: 96, A: 255}

var (
	StyleH1     = Style{Bold: true, Scale: 2.0}
	StyleH2     = Style{Bold: true, Scale: 1.5}
	StyleH3     = Style{Bold: true, Scale: 1.25}
	StyleH4     = Style{Bold: true, Scale: 1.1}
	StyleH5     = Style{Italic: true, Scale: 1.0}
	StyleH6     = Style{Italic: true, Scale: 1.0}
	StyleBold   = Style{Bold: true}
	StyleItalic = Style{Italic: true}
	StyleCode   = Style{Code: true, Bg: CodeBg}
	StyleLink   = Style{Link: true, Underline: true, Fg: LinkBlue}
)

// HeadingStyle returns the style of a markdown heading level.
func HeadingStyle(level int) Style {
	switch level {
	case 1:
		return StyleH1
	case 2:
		return StyleH2
	case 3:
		return StyleH3
	case 4:
		return StyleH4
	case 5:
		return StyleH5
	case 6:
		return StyleH6
	}
	return StyleBold
}

// Symbol defines the text inserted for markdown elements that have no
// textual content of their own.
type Symbol struct {
	Bullet          string
	Quote           string
	Image           string
	Rule            string
	TaskCompleted   string
	TaskUncompleted string
}

// DefaultSymbol returns the default symbols.
func DefaultSymbol() *Symbol {
	return &Symbol{
		Bullet:          "•",
		Quote:           "│ ",
		Image:           "▣",
		Rule:            "————————",
		TaskCompleted:   "[x]",
		TaskUncompleted: "[ ]",
	}
}

// Align is the horizontal alignment of lines inside the canvas.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// VerticalAlign is the vertical placement of the text block.
type VerticalAlign int

const (
	AlignTop VerticalAlign = iota
	AlignMiddle
	AlignBottom
)

// RenderConfig controls conversion and rendering.
type RenderConfig struct {
	MarkdownSymbol *Symbol

	// Canvas size and inner padding in pixels.
	Width   int
	Height  int
	Padding int

	FontSize   float64 // points
	DPI        float64
	LineHeight float64 // multiple of the face height
	TabWidth   int
	MaxLines   int // 0 means unlimited

	Foreground color.Color
	Background color.Color

	Align         Align
	VerticalAlign VerticalAlign

	// CodeFont, when set, is embedded into every code segment.
	CodeFont []byte
}

// DefaultRenderConfig returns a 1200x630 social card configuration.
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		MarkdownSymbol: DefaultSymbol(),
		Width:          1200,
		Height:         630,
		Padding:        64,
		FontSize:       32,
		DPI:            72,
		LineHeight:     1.2,
		TabWidth:       4,
		Foreground:     color.Black,
		Background:     color.White,
		Align:          AlignLeft,
		VerticalAlign:  AlignMiddle,
	}
}

// BaseStyle is the style unstyled segments inherit.
func (c *RenderConfig) BaseStyle() Style {
	base := DefaultStyle()
	if c.Foreground != nil {
		base.Fg = c.Foreground
	}
	base.FontSize = c.FontSize
	return base
}
