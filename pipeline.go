package ogtext

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/riverfjs/ogtext-go/internal/layout"
	"github.com/riverfjs/ogtext-go/internal/render"
)

// Render lays out area inside the padded canvas of the configuration and
// draws it.
//
// Steps:
//  1. the text of area is broken into lines fitting the canvas width
//  2. every run of a line takes the style and font of its segment;
//     segments without them use the configuration defaults
//  3. lines are drawn over the background color and image
func Render(ctx context.Context, area *TextArea, opts ...Option) (*image.RGBA, error) {
	options := applyOptions(opts...)
	config := options.Config

	l, err := layout.Build(area, config, render.ContentRect(config).Dx())
	if err != nil {
		return nil, errors.Wrap(err, "layout")
	}
	if l.Truncated > 0 {
		Logger.Printf("dropped %d lines over the limit of %d", l.Truncated, config.MaxLines)
	}
	if h := l.Height(); h > render.ContentRect(config).Dy() {
		Logger.Printf("text height %dpx overflows the %dpx content box", h, render.ContentRect(config).Dy())
	}

	img, err := render.Draw(ctx, l, config, options.BackgroundImage)
	if err != nil {
		return nil, errors.Wrap(err, "render")
	}
	return img, nil
}

// RenderMarkdown converts markdown and renders the result.
func RenderMarkdown(ctx context.Context, markdown string, opts ...Option) (*image.RGBA, error) {
	area, err := Convert(markdown, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "convert")
	}
	return Render(ctx, area, opts...)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errors.Wrap(err, "encode png")
	}
	b := img.Bounds()
	Logger.Printf("encoded %dx%d png (%s)", b.Dx(), b.Dy(), humanize.Bytes(uint64(buf.Len())))
	_, err := buf.WriteTo(w)
	return errors.Wrap(err, "write png")
}
