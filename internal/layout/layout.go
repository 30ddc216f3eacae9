// Package layout breaks the text of a TextArea into measured lines of
// uniformly styled runs.
package layout

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/riverfjs/ogtext-go/internal/textarea"
	"github.com/riverfjs/ogtext-go/internal/typeface"
	"github.com/riverfjs/ogtext-go/internal/types"
	"github.com/riverfjs/ogtext-go/internal/util"
)

// Run is a piece of a line drawn with one style and face.
type Run struct {
	Range   textarea.Range // bytes of the TextArea string
	Text    string         // text to draw, tabs expanded, newlines removed
	Style   types.Style    // resolved style
	Face    font.Face
	Width   fixed.Int26_6
	Segment *textarea.Segment // owning segment, nil when none was found
}

// Line is one visual line.
type Line struct {
	Runs []Run
	// Width excludes trailing whitespace.
	Width   fixed.Int26_6
	Ascent  fixed.Int26_6
	Descent fixed.Int26_6
	// Height is the line advance including the line height factor.
	Height fixed.Int26_6
}

// Layout is the result of Build.
type Layout struct {
	Lines []Line
	// Truncated is the number of lines dropped because of MaxLines.
	Truncated int
}

// Width returns the widest line width in pixels, rounded up.
func (l *Layout) Width() int {
	var w fixed.Int26_6
	for _, line := range l.Lines {
		if line.Width > w {
			w = line.Width
		}
	}
	return w.Ceil()
}

// Height returns the total height in pixels, rounded up.
func (l *Layout) Height() int {
	var h fixed.Int26_6
	for _, line := range l.Lines {
		h += line.Height
	}
	return h.Ceil()
}

// lineTerminators are the mandatory break characters of UAX #14 that end
// a line segment.
const lineTerminators = "\r\n\v\f\u0085\u2028\u2029"

type faceKey struct {
	font *typeface.Font
	size float64
}

type builder struct {
	area   *textarea.TextArea
	config *types.RenderConfig
	family *typeface.Family
	base   types.Style
	faces  map[faceKey]font.Face
}

// Build lays out the text of area in lines no wider than maxWidth pixels.
// A non-positive maxWidth disables wrapping.
func Build(area *textarea.TextArea, config *types.RenderConfig, maxWidth int) (*Layout, error) {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	family, err := typeface.DefaultFamily()
	if err != nil {
		return nil, err
	}
	b := &builder{
		area:   area,
		config: config,
		family: family,
		base:   config.BaseStyle(),
		faces:  make(map[faceKey]font.Face),
	}
	return b.build(fixed.I(maxWidth))
}

// token is a piece of text between two line break opportunities that lies
// inside a single segment.
type token struct {
	run   Run
	space fixed.Int26_6 // width of trailing whitespace
}

func (b *builder) build(maxWidth fixed.Int26_6) (*Layout, error) {
	full := b.area.String()
	bounds := b.area.Boundaries()

	out := &Layout{}
	var line Line
	flush := func() {
		line.Runs = trimTrailing(line.Runs)
		out.Lines = append(out.Lines, b.finish(line))
		line = Line{}
	}

	offset := 0
	state := -1
	rest := full
	for len(rest) > 0 {
		var segment string
		var mustBreak bool
		segment, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)

		pieces, err := b.pieces(segment, offset, bounds)
		if err != nil {
			return nil, err
		}
		offset += len(segment)

		var width, space fixed.Int26_6
		for _, p := range pieces {
			width += p.run.Width
		}
		if len(pieces) > 0 {
			space = pieces[len(pieces)-1].space
		}

		// trailing whitespace may hang past the right edge
		if maxWidth > 0 && len(line.Runs) > 0 && line.Width+width-space > maxWidth {
			flush()
		}
		for _, p := range pieces {
			line.Runs = append(line.Runs, p.run)
		}
		line.Width += width

		// the end of the text is a mandatory break too
		if mustBreak && len(rest) > 0 {
			flush()
		}
	}
	if len(line.Runs) > 0 || len(out.Lines) == 0 {
		flush()
	}

	if limit := b.config.MaxLines; limit > 0 && len(out.Lines) > limit {
		out.Truncated = len(out.Lines) - limit
		out.Lines = out.Lines[:limit]
	}
	return out, nil
}

// pieces cuts the line segment starting at offset at segment boundaries,
// looks up the owning segment of each piece and measures it.
func (b *builder) pieces(segment string, offset int, bounds []int) ([]token, error) {
	var out []token
	start := offset
	end := offset + len(segment)
	for start < end {
		cut := end
		for _, bound := range bounds {
			if bound > start && bound < cut {
				cut = bound
				break
			}
		}
		r := textarea.Range{Start: start, End: cut}
		text := segment[start-offset : cut-offset]
		run, space, err := b.measure(r, text)
		if err != nil {
			return nil, err
		}
		out = append(out, token{run: run, space: space})
		start = cut
	}
	return out, nil
}

func (b *builder) measure(r textarea.Range, text string) (Run, fixed.Int26_6, error) {
	seg := b.area.SegmentAt(r)
	style := b.base
	var f *typeface.Font
	if seg != nil {
		if s, ok := seg.Style(); ok {
			style = b.base.Merge(s)
		}
		f = seg.Font()
	}
	if f == nil {
		f = b.family.Pick(style)
	}
	face, err := b.face(f, b.size(style))
	if err != nil {
		return Run{}, 0, err
	}

	visible := util.ExpandTabs(strings.TrimRight(text, lineTerminators), b.config.TabWidth)
	width := font.MeasureString(face, visible)
	trimmed := strings.TrimRight(visible, " \t")
	space := width - font.MeasureString(face, trimmed)

	return Run{
		Range:   r,
		Text:    visible,
		Style:   style,
		Face:    face,
		Width:   width,
		Segment: seg,
	}, space, nil
}

func (b *builder) size(style types.Style) float64 {
	size := style.FontSize
	if size <= 0 {
		size = b.config.FontSize
	}
	if style.Scale > 0 {
		size *= style.Scale
	}
	return size
}

func (b *builder) face(f *typeface.Font, size float64) (font.Face, error) {
	key := faceKey{font: f, size: size}
	if face, ok := b.faces[key]; ok {
		return face, nil
	}
	dpi := b.config.DPI
	if dpi <= 0 {
		dpi = 72
	}
	face, err := f.NewFace(size, dpi)
	if err != nil {
		return nil, errors.Wrap(err, "layout")
	}
	b.faces[key] = face
	return face, nil
}

// finish computes the vertical metrics of a line. Empty lines take the
// metrics of the base face.
func (b *builder) finish(line Line) Line {
	line.Width = 0
	for _, r := range line.Runs {
		line.Width += r.Width
	}
	if n := len(line.Runs); n > 0 {
		last := line.Runs[n-1]
		line.Width -= last.Width - font.MeasureString(last.Face, strings.TrimRight(last.Text, " \t"))
	}

	faces := make([]font.Face, 0, len(line.Runs))
	for _, r := range line.Runs {
		faces = append(faces, r.Face)
	}
	if len(faces) == 0 {
		if face, err := b.face(b.family.Pick(b.base), b.size(b.base)); err == nil {
			faces = append(faces, face)
		}
	}

	var height fixed.Int26_6
	for _, face := range faces {
		m := face.Metrics()
		if m.Ascent > line.Ascent {
			line.Ascent = m.Ascent
		}
		if m.Descent > line.Descent {
			line.Descent = m.Descent
		}
		if m.Height > height {
			height = m.Height
		}
	}
	factor := b.config.LineHeight
	if factor <= 0 {
		factor = 1
	}
	line.Height = fixed.Int26_6(float64(height) * factor)
	return line
}

// trimTrailing drops runs that hold nothing to draw at the end of a line.
func trimTrailing(runs []Run) []Run {
	for len(runs) > 0 && strings.TrimSpace(runs[len(runs)-1].Text) == "" && runs[len(runs)-1].Style.Bg == nil {
		runs = runs[:len(runs)-1]
	}
	return runs
}
