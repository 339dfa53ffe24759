package level

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// Canvas is a Drawer that paints tiles on to an in memory image
type Canvas struct {
	dc *gg.Context
}

// NewCanvas returns a transparent canvas of w x h pixels
func NewCanvas(w, h int) *Canvas {
	return &Canvas{dc: gg.NewContext(w, h)}
}

// DrawTile implements Drawer
func (c *Canvas) DrawTile(atlas image.Image, src image.Rectangle, at image.Point, tint color.NRGBA) {
	c.dc.DrawImage(tinted(atlas, src, tint), at.X, at.Y)
}

// Image returns what has been drawn so far
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// tinted copies `src` out of `atlas` to a new image at the origin with
// every pixel multiplied by `tint`.
func tinted(atlas image.Image, src image.Rectangle, tint color.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(out, out.Bounds(), atlas, src.Min, draw.Src)

	if tint == (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		return out
	}

	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = uint8(uint16(out.Pix[i+0]) * uint16(tint.R) / 255)
		out.Pix[i+1] = uint8(uint16(out.Pix[i+1]) * uint16(tint.G) / 255)
		out.Pix[i+2] = uint8(uint16(out.Pix[i+2]) * uint16(tint.B) / 255)
		out.Pix[i+3] = uint8(uint16(out.Pix[i+3]) * uint16(tint.A) / 255)
	}
	return out
}

// Render draws the level to a new image according to `cfg` (nil for the
// default config).
func Render(l *Level, cfg *Config) (image.Image, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	size := l.PixelSize()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("level has no area to render (%dx%d px)", size.X, size.Y)
	}

	c := NewCanvas(size.X, size.Y)
	if cfg.Background != "" {
		c.dc.SetHexColor(cfg.Background)
		c.dc.Clear()
	}

	for i, layer := range l.Layers {
		if !cfg.drawLayer(i) {
			continue
		}
		for _, t := range layer.Tiles {
			c.DrawTile(l.Atlas.Image, t.Src, t.Pos, t.Tint)
		}
	}

	if cfg.DrawObjects {
		c.drawObjects(l, cfg.ObjectColor)
	}

	var out image.Image = c.Image()
	if cfg.Scale > 0 && cfg.Scale != 1 {
		out = resize.Resize(
			uint(float64(size.X)*cfg.Scale),
			uint(float64(size.Y)*cfg.Scale),
			out,
			resize.NearestNeighbor,
		)
	}

	return out, nil
}

// drawObjects draws object tiles then outlines each object; 0x0 objects get
// a dot & objects with one zero side get a line.
func (c *Canvas) drawObjects(l *Level, hex string) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for _, o := range l.Objects {
		if o.HasVisual() {
			c.DrawTile(l.Atlas.Image, o.Visual, image.Pt(o.Rect.Left, o.Rect.Top), white)
		}
	}

	c.dc.SetHexColor(hex)
	c.dc.SetLineWidth(1)
	for _, o := range l.Objects {
		r := o.Rect
		if r.Width == 0 && r.Height == 0 {
			c.dc.DrawPoint(float64(r.Left), float64(r.Top), 2)
			c.dc.Fill()
			continue
		}
		if r.Width == 0 || r.Height == 0 {
			c.dc.DrawLine(
				float64(r.Left)+0.5, float64(r.Top)+0.5,
				float64(r.Left+r.Width)+0.5, float64(r.Top+r.Height)+0.5,
			)
			c.dc.Stroke()
			continue
		}
		c.dc.DrawRectangle(float64(r.Left)+0.5, float64(r.Top)+0.5, float64(r.Width)-1, float64(r.Height)-1)
		c.dc.Stroke()
	}
}
