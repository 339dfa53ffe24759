/* file holds the loaded level model, how to load one & read-only helpers.
 */
package level

import (
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
)

// Level is a TMX map loaded into memory, ready to be drawn.
// It is built once by Load / LoadFS and should be treated as read only.
type Level struct {
	Width      int // in tiles
	Height     int // in tiles
	TileWidth  int // in pixels
	TileHeight int // in pixels

	// FirstTileID is the tileset 'firstgid'; GID - FirstTileID indexes Atlas.Rects
	FirstTileID int

	Atlas   *Atlas
	Layers  []*Layer
	Objects []*Object
}

// Layer is a sparse set of tiles drawn with one opacity.
type Layer struct {
	Name    string
	Opacity uint8 // 0 (invisible) -> 255 (opaque)
	Tiles   []PlacedTile
}

// PlacedTile is an atlas tile drawn somewhere on the map
type PlacedTile struct {
	Index int             // index into Atlas.Rects
	Src   image.Rectangle // the atlas sub-rectangle
	Pos   image.Point     // top left, in pixels
	Tint  color.NRGBA     // white, alpha set to the layer opacity
}

// Rect is an object's bounds in pixels
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Rectangle returns `r` as an image.Rectangle
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
}

// Object is a named marker from an objectgroup (spawn point, trigger ..)
type Object struct {
	Name       string
	Type       string
	Rect       Rect
	Properties *Properties

	// TileIndex is the atlas tile drawn for this object, -1 if none.
	// Visual is it's sub-rectangle (or the zero rectangle).
	TileIndex int
	Visual    image.Rectangle
}

// HasVisual returns if the object references an atlas tile
func (o *Object) HasVisual() bool {
	return o.TileIndex >= 0
}

// Load a level from the TMX file at `fname`.
// A leading ~ is expanded to the users home dir.
func Load(fname string) (*Level, error) {
	expanded, err := homedir.Expand(fname)
	if err != nil {
		return nil, fileError(fname, err)
	}

	dir := filepath.Dir(expanded)
	return loadLevel(os.DirFS(dir), filepath.Base(expanded), dir)
}

// LoadFS loads a level from `name` within `fsys`. Relative tileset image
// paths are resolved against the directory of `name` and must stay inside
// `fsys`.
func LoadFS(fsys fs.FS, name string) (*Level, error) {
	return loadLevel(fsys, name, "")
}

// loadLevel reads `name` from `fsys`. If `diskDir` is set it is the real
// directory `fsys` is rooted at, used for images outside of `fsys`.
func loadLevel(fsys fs.FS, name, diskDir string) (*Level, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fileError(name, err)
	}
	defer f.Close()

	root, err := decodeTree(f)
	if err != nil {
		return nil, fileError(name, err)
	}
	if root.XMLName.Local != tagMap {
		return nil, structureError(name, "missing map element")
	}

	l := &Level{
		Width:      root.attrInt("width", 0),
		Height:     root.attrInt("height", 0),
		TileWidth:  root.attrInt("tilewidth", 0),
		TileHeight: root.attrInt("tileheight", 0),
	}
	if l.TileWidth <= 0 || l.TileHeight <= 0 {
		return nil, structureError(name, "tilewidth and tileheight must be positive")
	}

	tilesets := root.all(tagTileset)
	if len(tilesets) == 0 {
		return nil, structureError(name, "missing tileset")
	}
	if len(tilesets) > 1 {
		logger.Warn("only the first tileset is used", zap.String("map", name), zap.Int("tilesets", len(tilesets)))
	}
	ts := tilesets[0]
	l.FirstTileID = ts.attrInt("firstgid", 0)

	img := ts.first(tagImage)
	if img == nil || img.attrString("source", "") == "" {
		return nil, structureError(name, "missing tileset image")
	}

	l.Atlas, err = loadAtlas(fsys, diskDir, name, img.attrString("source", ""), l.TileWidth, l.TileHeight)
	if err != nil {
		return nil, err
	}

	l.Layers, err = buildLayers(name, root, l)
	if err != nil {
		return nil, err
	}

	l.Objects, err = buildObjects(name, root, l)
	if err != nil {
		return nil, err
	}

	logger.Debug(
		"loaded level",
		zap.String("map", name),
		zap.Int("width", l.Width),
		zap.Int("height", l.Height),
		zap.Int("tiles", l.Atlas.Len()),
		zap.Int("layers", len(l.Layers)),
		zap.Int("objects", len(l.Objects)),
	)
	return l, nil
}

// openImage opens tileset image `src` referenced from map `name`.
// Absolute paths & relative paths that climb out of `fsys` (../tiles.png)
// are read from disk when we know where `fsys` lives.
func openImage(fsys fs.FS, diskDir, name, src string) (fs.File, string, error) {
	if filepath.IsAbs(src) {
		f, err := os.Open(src)
		return f, src, err
	}

	rel := path.Clean(path.Join(path.Dir(name), filepath.ToSlash(src)))
	if fs.ValidPath(rel) {
		f, err := fsys.Open(rel)
		return f, rel, err
	}

	if diskDir == "" {
		return nil, rel, fmt.Errorf("image path %s leaves the map filesystem", rel)
	}
	full := filepath.Join(diskDir, filepath.FromSlash(rel))
	f, err := os.Open(full)
	return f, full, err
}

// loadAtlas opens the tileset image `src` (referenced from map `name`),
// applies the colour key & cuts it into tiles.
func loadAtlas(fsys fs.FS, diskDir, name, src string, tileW, tileH int) (*Atlas, error) {
	f, src, err := openImage(fsys, diskDir, name, src)
	if err != nil {
		return nil, fileError(src, err)
	}
	defer f.Close()

	img, err := decodeAtlas(f)
	if err != nil {
		return nil, assetError(src, err)
	}

	a, err := newAtlas(img, tileW, tileH)
	if err != nil {
		return nil, assetError(src, err)
	}

	logger.Debug("loaded tileset image", zap.String("image", src), zap.Int("columns", a.Columns), zap.Int("rows", a.Rows))
	return a, nil
}

// TileSize returns the width / height of a tile in pixels
func (l *Level) TileSize() image.Point {
	return image.Pt(l.TileWidth, l.TileHeight)
}

// PixelSize returns the size of the whole map in pixels
func (l *Level) PixelSize() image.Point {
	return image.Pt(l.Width*l.TileWidth, l.Height*l.TileHeight)
}

// Object returns the first object (in document order) called `name`.
func (l *Level) Object(name string) (*Object, bool) {
	for _, o := range l.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// ObjectsNamed returns all objects called `name` in document order
func (l *Level) ObjectsNamed(name string) []*Object {
	found := []*Object{}
	for _, o := range l.Objects {
		if o.Name == name {
			found = append(found, o)
		}
	}
	return found
}

// ObjectsOfType returns all objects with the given type in document order
func (l *Level) ObjectsOfType(typ string) []*Object {
	found := []*Object{}
	for _, o := range l.Objects {
		if o.Type == typ {
			found = append(found, o)
		}
	}
	return found
}

// Draw hands every placed tile to `d`, layer by layer in declaration order.
func (l *Level) Draw(d Drawer) {
	for _, layer := range l.Layers {
		for _, t := range layer.Tiles {
			d.DrawTile(l.Atlas.Image, t.Src, t.Pos, t.Tint)
		}
	}
}
