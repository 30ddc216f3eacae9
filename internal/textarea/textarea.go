// Package textarea holds a line of text built from styled pieces while
// exposing it as one string addressed by byte offsets.
package textarea

import (
	"fmt"
	"io"
	"strings"

	"github.com/riverfjs/ogtext-go/internal/typeface"
	"github.com/riverfjs/ogtext-go/internal/types"
	"github.com/riverfjs/ogtext-go/internal/util"
)

// Range is a half-open byte interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range covers no bytes.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Contains reports whether other lies entirely inside r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Segment is one appended piece of text. A Segment never changes after it
// has been appended.
type Segment struct {
	text  string
	style *types.Style
	font  *typeface.Font
	rng   Range
}

// Text returns the text of the segment.
func (s *Segment) Text() string {
	return s.text
}

// Style returns the segment style. ok is false for segments that inherit
// the style of the whole text area.
func (s *Segment) Style() (style types.Style, ok bool) {
	if s.style == nil {
		return types.Style{}, false
	}
	return *s.style, true
}

// Font returns the embedded font, or nil when the default font applies.
func (s *Segment) Font() *typeface.Font {
	return s.font
}

// Range returns the byte range of the segment within TextArea.String().
func (s *Segment) Range() Range {
	return s.rng
}

// TextArea is an append-only sequence of segments. The ranges of its
// segments are contiguous, start at 0 and follow insertion order.
//
// A TextArea is owned by one goroutine while it is built; once complete
// it may be read concurrently.
type TextArea struct {
	segments []Segment
}

// New creates an empty TextArea.
func New() *TextArea {
	return &TextArea{
		segments: make([]Segment, 0),
	}
}

// ByteLen returns the byte length of the concatenated text.
func (ta *TextArea) ByteLen() int {
	if len(ta.segments) == 0 {
		return 0
	}
	return ta.segments[len(ta.segments)-1].rng.End
}

// Len returns the number of segments.
func (ta *TextArea) Len() int {
	return len(ta.segments)
}

// Push appends text with style. A non-nil fontData is decoded into the
// segment's font; if decoding fails the error wraps
// typeface.ErrInvalidFontBytes and nothing is appended.
func (ta *TextArea) Push(text string, style types.Style, fontData []byte) error {
	var f *typeface.Font
	if fontData != nil {
		var err error
		f, err = typeface.Parse(fontData)
		if err != nil {
			return err
		}
	}
	ta.append(text, &style, f)
	return nil
}

// PushFont appends text with style and an already decoded font, which may
// be shared by many segments. A nil f leaves the segment's font unset.
func (ta *TextArea) PushFont(text string, style types.Style, f *typeface.Font) {
	ta.append(text, &style, f)
}

// PushText appends text without style. It takes the style of the whole
// text area at render time.
func (ta *TextArea) PushText(text string) {
	ta.append(text, nil, nil)
}

func (ta *TextArea) append(text string, style *types.Style, f *typeface.Font) {
	start := ta.ByteLen()
	ta.segments = append(ta.segments, Segment{
		text:  strings.Clone(text),
		style: style,
		font:  f,
		rng:   Range{Start: start, End: start + len(text)},
	})
}

// String returns the text of all segments concatenated in order.
func (ta *TextArea) String() string {
	if len(ta.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(ta.ByteLen())
	for i := range ta.segments {
		b.WriteString(ta.segments[i].text)
	}
	return b.String()
}

// SegmentAt returns the first segment whose range contains r, or nil if r
// crosses a segment boundary, lies out of bounds, or the area is empty.
func (ta *TextArea) SegmentAt(r Range) *Segment {
	for i := range ta.segments {
		if ta.segments[i].rng.Contains(r) {
			return &ta.segments[i]
		}
	}
	return nil
}

// Segments returns a copy of the segments in insertion order.
func (ta *TextArea) Segments() []Segment {
	out := make([]Segment, len(ta.segments))
	copy(out, ta.segments)
	return out
}

// Boundaries returns the distinct segment start offsets followed by the
// end offset of the text. An empty area yields [0].
func (ta *TextArea) Boundaries() []int {
	out := make([]int, 0, len(ta.segments)+1)
	for i := range ta.segments {
		start := ta.segments[i].rng.Start
		if len(out) > 0 && out[len(out)-1] == start {
			continue
		}
		out = append(out, start)
	}
	if end := ta.ByteLen(); len(out) == 0 || out[len(out)-1] != end {
		out = append(out, end)
	}
	return out
}

const dumpTextWidth = 40

// Dump writes one line per segment: index, range, style, font and text.
func (ta *TextArea) Dump(w io.Writer) error {
	for i := range ta.segments {
		s := &ta.segments[i]
		style := "-"
		if s.style != nil {
			style = "styled"
		}
		fontName := "-"
		if s.font != nil {
			fontName = s.font.Name()
			if fontName == "" {
				fontName = "embedded"
			}
		}
		text := util.Truncate(util.VisibleText(s.text), dumpTextWidth, "…")
		_, err := fmt.Fprintf(w, "%3d %-12s %-6s %s %q\n",
			i, s.rng.String(), style, util.PadRight(util.Truncate(fontName, 16, "…"), 16), text)
		if err != nil {
			return err
		}
	}
	return nil
}
