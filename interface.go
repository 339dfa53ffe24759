package level

import (
	"image"
	"image/color"
)

// Drawer represents something that can draw placed tiles
type Drawer interface {
	// DrawTile draws the `src` sub-rectangle of `atlas` with it's top left
	// corner at pixel `at`. `tint` is multiplied over the tile pixels; levels
	// only ever set it's alpha.
	DrawTile(atlas image.Image, src image.Rectangle, at image.Point, tint color.NRGBA)
}
