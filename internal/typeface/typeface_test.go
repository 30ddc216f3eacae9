package typeface

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/riverfjs/ogtext-go/internal/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{name: "go regular", data: goregular.TTF},
		{name: "go mono", data: gomono.TTF},
		{name: "nil", data: nil, wantErr: true},
		{name: "empty", data: []byte{}, wantErr: true},
		{name: "garbage", data: []byte("definitely not a font"), wantErr: true},
		{name: "truncated", data: goregular.TTF[:64], wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFontBytes) {
					t.Fatalf("Parse() error = %v, want ErrInvalidFontBytes", err)
				}
				if f != nil {
					t.Errorf("Parse() font = %v, want nil", f)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if f.NumGlyphs() == 0 {
				t.Error("NumGlyphs() = 0")
			}
			if f.Size() != len(tt.data) {
				t.Errorf("Size() = %d, want %d", f.Size(), len(tt.data))
			}
		})
	}
}

func TestFontName(t *testing.T) {
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(f.Name(), "Go") {
		t.Errorf("Name() = %q, want a Go font name", f.Name())
	}
}

func TestNewFace(t *testing.T) {
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	small, err := f.NewFace(12, 72)
	if err != nil {
		t.Fatal(err)
	}
	large, err := f.NewFace(48, 72)
	if err != nil {
		t.Fatal(err)
	}
	if small.Metrics().Height >= large.Metrics().Height {
		t.Errorf("12pt height %v should be below 48pt height %v",
			small.Metrics().Height, large.Metrics().Height)
	}
}

func TestParseCopiesInput(t *testing.T) {
	data := bytes.Clone(goregular.TTF)
	f, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	want := f.NumGlyphs()
	for i := range data {
		data[i] = 0
	}

	if got := f.NumGlyphs(); got != want {
		t.Errorf("NumGlyphs() = %d, want %d", got, want)
	}
	face, err := f.NewFace(24, 72)
	if err != nil {
		t.Fatalf("NewFace() after zeroing input error = %v", err)
	}
	defer face.Close()
	if adv, ok := face.GlyphAdvance('M'); !ok || adv <= 0 {
		t.Errorf("GlyphAdvance('M') = %v, %v", adv, ok)
	}
}

func TestDefaultFamilyPick(t *testing.T) {
	fam, err := DefaultFamily()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		style types.Style
		want  *Font
	}{
		{"plain", types.Style{}, fam.Regular},
		{"bold", types.Style{Bold: true}, fam.Bold},
		{"italic", types.Style{Italic: true}, fam.Italic},
		{"bold italic", types.Style{Bold: true, Italic: true}, fam.BoldItalic},
		{"code wins over bold", types.Style{Code: true, Bold: true}, fam.Mono},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fam.Pick(tt.style); got != tt.want {
				t.Errorf("Pick() = %q, want %q", got.Name(), tt.want.Name())
			}
		})
	}

	again, _ := DefaultFamily()
	if again != fam {
		t.Error("DefaultFamily() should be parsed once")
	}
}

func TestPickFallsBackToRegular(t *testing.T) {
	regular, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	fam := &Family{Regular: regular}
	if got := fam.Pick(types.Style{Bold: true, Code: true}); got != regular {
		t.Errorf("Pick() = %v, want Regular", got)
	}
}
