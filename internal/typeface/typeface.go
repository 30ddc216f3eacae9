// Package typeface decodes raw font bytes into fonts usable for measuring
// and drawing text.
package typeface

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/riverfjs/ogtext-go/internal/types"
)

// ErrInvalidFontBytes is returned when raw bytes cannot be decoded into a font.
var ErrInvalidFontBytes = errors.New("invalid font bytes")

// Font is a decoded TrueType or OpenType font. It is immutable.
type Font struct {
	sfnt *opentype.Font
	name string
	size int
}

// Parse decodes data into a Font. Empty or malformed input yields an error
// wrapping ErrInvalidFontBytes. The Font reads glyph tables lazily from a
// private copy of data, so the caller may reuse data afterwards.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInvalidFontBytes, "empty font data")
	}
	data = bytes.Clone(data)
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFontBytes, "opentype: %v", err)
	}

	var buf sfnt.Buffer
	name, err := f.Name(&buf, sfnt.NameIDFull)
	if err != nil {
		name = ""
	}
	return &Font{sfnt: f, name: name, size: len(data)}, nil
}

// Name returns the full font name, or "" when the font has none.
func (f *Font) Name() string {
	return f.name
}

// Size returns the size of the encoded font in bytes.
func (f *Font) Size() int {
	return f.size
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.sfnt.NumGlyphs()
}

// NewFace returns a face of the font at size points and dpi.
func (f *Font) NewFace(size, dpi float64) (font.Face, error) {
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "face %q at %vpt", f.name, size)
	}
	return face, nil
}

// Family groups the fonts picked from for unstyled or style-only segments.
type Family struct {
	Regular    *Font
	Bold       *Font
	Italic     *Font
	BoldItalic *Font
	Mono       *Font
}

// Pick returns the family member matching style. Missing members fall
// back to Regular.
func (fam *Family) Pick(style types.Style) *Font {
	var f *Font
	switch {
	case style.Code:
		f = fam.Mono
	case style.Bold && style.Italic:
		f = fam.BoldItalic
	case style.Bold:
		f = fam.Bold
	case style.Italic:
		f = fam.Italic
	}
	if f == nil {
		return fam.Regular
	}
	return f
}

var (
	defaultFamily     *Family
	defaultFamilyErr  error
	defaultFamilyOnce sync.Once
)

// DefaultFamily returns the Go font family, parsed once.
func DefaultFamily() (*Family, error) {
	defaultFamilyOnce.Do(func() {
		fam := &Family{}
		for _, m := range []struct {
			dst  **Font
			data []byte
		}{
			{&fam.Regular, goregular.TTF},
			{&fam.Bold, gobold.TTF},
			{&fam.Italic, goitalic.TTF},
			{&fam.BoldItalic, gobolditalic.TTF},
			{&fam.Mono, gomono.TTF},
		} {
			f, err := Parse(m.data)
			if err != nil {
				defaultFamilyErr = errors.Wrap(err, "default family")
				return
			}
			*m.dst = f
		}
		defaultFamily = fam
	})
	return defaultFamily, defaultFamilyErr
}
