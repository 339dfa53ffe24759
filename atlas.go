package level

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	// decoders we accept for tileset images
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ColorKey is the background colour tileset images are drawn with. Pixels
// of exactly this colour are made fully transparent when an atlas is loaded.
var ColorKey = color.RGBA{R: 109, G: 159, B: 185, A: 255}

// Atlas is a decoded tileset image cut into equal tile sized sub-rectangles.
// Rects are numbered row-major; Rects[i] holds the tile with GID
// FirstTileID + i.
type Atlas struct {
	Image   *image.NRGBA
	Columns int
	Rows    int
	Rects   []image.Rectangle
}

// decodeAtlas reads an image in any registered format & returns it as NRGBA
// with the colour key applied.
func decodeAtlas(r io.Reader) (*image.NRGBA, error) {
	in, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	b := in.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), in, b.Min, draw.Src)

	applyColorKey(out, ColorKey)
	return out, nil
}

// applyColorKey zeroes every pixel matching the RGB of `key` (alpha of the
// pixel is ignored when matching).
func applyColorKey(img *image.NRGBA, key color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			p := img.Pix[i : i+4 : i+4]
			if p[0] == key.R && p[1] == key.G && p[2] == key.B {
				p[0], p[1], p[2], p[3] = 0, 0, 0, 0
			}
		}
	}
}

// newAtlas cuts `img` into tileW x tileH sub-rectangles. Partial tiles on the
// right / bottom edge are dropped.
func newAtlas(img *image.NRGBA, tileW, tileH int) (*Atlas, error) {
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("invalid tile size %dx%d", tileW, tileH)
	}

	b := img.Bounds()
	cols := b.Dx() / tileW
	rows := b.Dy() / tileH
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("image %dx%d is smaller than one %dx%d tile", b.Dx(), b.Dy(), tileW, tileH)
	}

	rects := make([]image.Rectangle, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			at := image.Pt(b.Min.X+x*tileW, b.Min.Y+y*tileH)
			rects = append(rects, image.Rectangle{Min: at, Max: at.Add(image.Pt(tileW, tileH))})
		}
	}

	return &Atlas{Image: img, Columns: cols, Rows: rows, Rects: rects}, nil
}

// Len is the number of sub-rectangles
func (a *Atlas) Len() int {
	return len(a.Rects)
}

// Rect returns sub-rectangle `i` or false if `i` is out of range.
func (a *Atlas) Rect(i int) (image.Rectangle, bool) {
	if i < 0 || i >= len(a.Rects) {
		return image.Rectangle{}, false
	}
	return a.Rects[i], true
}

// Tile returns a copy of the pixels of sub-rectangle `i`, moved to the
// origin.
func (a *Atlas) Tile(i int) (image.Image, error) {
	r, ok := a.Rect(i)
	if !ok {
		return nil, fmt.Errorf("%w: tile %d outside [0,%d)", ErrRange, i, len(a.Rects))
	}
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), a.Image, r.Min, draw.Src)
	return out, nil
}
