package level

import (
	"image"
	"image/color"
	"math"

	"go.uber.org/zap"
)

// opacityToAlpha converts a 0-1 opacity to 0-255, truncating (0.5 -> 127).
// NaN is treated like a missing opacity.
func opacityToAlpha(opacity float64) uint8 {
	if math.IsNaN(opacity) {
		return 255
	}
	if opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 255
	}
	return uint8(255 * opacity)
}

// buildLayers reads every <layer> of `root` in document order.
// `l` must already have it's size & atlas set.
func buildLayers(name string, root *node, l *Level) ([]*Layer, error) {
	layers := []*Layer{}

	for _, ln := range root.all(tagLayer) {
		layer, err := buildLayer(name, ln, l)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}

	return layers, nil
}

// buildLayer places the tiles of a single <layer>.
// TMX (without encoding) doesn't store tile coords, each <tile> is the next
// cell in a raster scan of the map (left -> right, top -> bottom).
func buildLayer(name string, ln *node, l *Level) (*Layer, error) {
	layer := &Layer{
		Name:    ln.attrString("name", ""),
		Opacity: opacityToAlpha(ln.attrFloat("opacity", 1)),
		Tiles:   []PlacedTile{},
	}

	data := ln.first(tagData)
	if data == nil {
		return nil, structureError(name, "layer missing data")
	}

	tiles := data.all(tagTile)
	if len(tiles) > 0 && (l.Width <= 0 || l.Height <= 0) {
		return nil, structureError(name, "map width and height must be positive")
	}

	tint := color.NRGBA{R: 255, G: 255, B: 255, A: layer.Opacity}

	x, y := 0, 0
	for _, tn := range tiles {
		gid := tn.attrInt("gid", 0)

		if gid != 0 {
			index := gid - l.FirstTileID
			if index >= 0 {
				src, ok := l.Atlas.Rect(index)
				if !ok {
					return nil, rangeError(
						name, "layer %q tile (%d,%d) gid %d outside tileset of %d tiles",
						layer.Name, x, y, gid, l.Atlas.Len(),
					)
				}
				layer.Tiles = append(layer.Tiles, PlacedTile{
					Index: index,
					Src:   src,
					Pos:   image.Pt(x*l.TileWidth, y*l.TileHeight),
					Tint:  tint,
				})
			}
		}

		x++
		if x >= l.Width {
			x = 0
			y++
			if y >= l.Height {
				y = 0
			}
		}
	}

	if len(tiles) != l.Width*l.Height {
		logger.Warn(
			"layer tile count doesn't match map size",
			zap.String("map", name),
			zap.String("layer", layer.Name),
			zap.Int("tiles", len(tiles)),
			zap.Int("expected", l.Width*l.Height),
		)
	}

	return layer, nil
}

// buildObjects reads every <object> of every <objectgroup> into one flat list
func buildObjects(name string, root *node, l *Level) ([]*Object, error) {
	objects := []*Object{}

	groups := root.all(tagObjectGroup)
	if len(groups) == 0 {
		logger.Warn("no object groups found", zap.String("map", name))
		return objects, nil
	}

	for _, g := range groups {
		for _, on := range g.all(tagObject) {
			o, err := buildObject(name, on, l)
			if err != nil {
				return nil, err
			}
			objects = append(objects, o)
		}
	}

	return objects, nil
}

// buildObject works out an objects size & tile.
// An explicit width wins over the tile size; a gid alone sizes the object
// to the tile; neither leaves a 0x0 marker.
func buildObject(name string, on *node, l *Level) (*Object, error) {
	props, err := newPropertiesFromNode(name, on.first(tagProperties))
	if err != nil {
		return nil, err
	}

	o := &Object{
		Name: on.attrString("name", ""),
		Type: on.attrString("type", ""),
		Rect: Rect{
			Left: on.attrInt("x", 0),
			Top:  on.attrInt("y", 0),
		},
		Properties: props,
		TileIndex:  -1,
	}

	if on.has("gid") {
		gid := on.attrInt("gid", 0)
		index := gid - l.FirstTileID
		src, ok := l.Atlas.Rect(index)
		if !ok {
			return nil, rangeError(
				name, "object %q gid %d outside tileset of %d tiles",
				o.Name, gid, l.Atlas.Len(),
			)
		}
		o.TileIndex = index
		o.Visual = src
	}

	switch {
	case on.has("width"):
		o.Rect.Width = on.attrInt("width", 0)
		o.Rect.Height = on.attrInt("height", 0)
	case o.HasVisual():
		o.Rect.Width = o.Visual.Dx()
		o.Rect.Height = o.Visual.Dy()
	}

	return o, nil
}
