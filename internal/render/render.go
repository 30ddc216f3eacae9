// Package render draws a layout onto an RGBA canvas.
package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/riverfjs/ogtext-go/internal/layout"
	"github.com/riverfjs/ogtext-go/internal/types"
)

// ErrCanvasSize is returned for non-positive canvas dimensions.
var ErrCanvasSize = errors.New("canvas size must be positive")

// ContentRect returns the padded area text is laid out in.
func ContentRect(config *types.RenderConfig) image.Rectangle {
	r := image.Rect(0, 0, config.Width, config.Height)
	inner := r.Inset(config.Padding)
	if inner.Empty() {
		return r
	}
	return inner
}

// Draw renders l onto a new canvas sized by config. background, when not
// nil, is scaled over the background color to fill the canvas.
func Draw(ctx context.Context, l *layout.Layout, config *types.RenderConfig, background image.Image) (*image.RGBA, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, errors.Wrapf(ErrCanvasSize, "%dx%d", config.Width, config.Height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))

	bg := config.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if background != nil {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), background, background.Bounds(), xdraw.Over, nil)
	}

	box := ContentRect(config)
	y := fixed.I(box.Min.Y)
	switch config.VerticalAlign {
	case types.AlignMiddle:
		y += (fixed.I(box.Dy()) - fixed.I(l.Height())) / 2
	case types.AlignBottom:
		y += fixed.I(box.Dy()) - fixed.I(l.Height())
	}

	for _, line := range l.Lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x := fixed.I(box.Min.X)
		switch config.Align {
		case types.AlignCenter:
			x += (fixed.I(box.Dx()) - line.Width) / 2
		case types.AlignRight:
			x += fixed.I(box.Dx()) - line.Width
		}
		// center the glyph box inside the line advance
		baseline := y + (line.Height-line.Ascent-line.Descent)/2 + line.Ascent
		drawLine(dst, line, x, baseline, box)
		y += line.Height
	}
	return dst, nil
}

func drawLine(dst *image.RGBA, line layout.Line, x, baseline fixed.Int26_6, box image.Rectangle) {
	for _, run := range line.Runs {
		m := run.Face.Metrics()
		if run.Style.Bg != nil {
			r := image.Rect(x.Floor(), (baseline - line.Ascent).Floor(), (x + run.Width).Ceil(), (baseline + line.Descent).Ceil())
			if run.Style.Block {
				r.Min.X, r.Max.X = box.Min.X, box.Max.X
			}
			draw.Draw(dst, r, image.NewUniform(run.Style.Bg), image.Point{}, draw.Over)
		}

		fg := run.Style.Fg
		if fg == nil {
			fg = color.Black
		}
		src := image.NewUniform(fg)
		d := &font.Drawer{
			Dst:  dst,
			Src:  src,
			Face: run.Face,
			Dot:  fixed.Point26_6{X: x, Y: baseline},
		}
		d.DrawString(run.Text)

		thickness := m.Height / 16
		if thickness < fixed.I(1) {
			thickness = fixed.I(1)
		}
		if run.Style.Underline {
			top := baseline + m.Descent/3
			hline(dst, src, x, x+run.Width, top, thickness)
		}
		if run.Style.Strikethrough {
			top := baseline - m.Ascent/3
			hline(dst, src, x, x+run.Width, top, thickness)
		}
		x += run.Width
	}
}

func hline(dst *image.RGBA, src image.Image, x0, x1, top, thickness fixed.Int26_6) {
	r := image.Rect(x0.Floor(), top.Floor(), x1.Ceil(), (top + thickness).Ceil())
	draw.Draw(dst, r, src, image.Point{}, draw.Over)
}
