package level

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

// tile colours used by the test atlases, by index
var palette = []color.NRGBA{
	{R: 255, A: 255},
	{G: 255, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 255, A: 255},
	{R: 255, B: 255, A: 255},
	{G: 255, B: 255, A: 255},
}

// atlasPNG encodes a cols x rows tile atlas where every tile is filled
// with palette[index].
func atlasPNG(t *testing.T, cols, rows, tw, th int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, cols*tw, rows*th))
	for y := 0; y < rows*th; y++ {
		for x := 0; x < cols*tw; x++ {
			i := (y/th)*cols + x/tw
			img.SetNRGBA(x, y, palette[i%len(palette)])
		}
	}
	return encodePNG(t, img)
}

func encodePNG(t *testing.T, img image.Image) []byte {
	buf := bytes.Buffer{}
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// tmxDoc builds a map with one tileset (tiles.png) wrapped around `body`.
func tmxDoc(w, h, tw, th, firstgid int, body ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.0" orientation="orthogonal" width="%d" height="%d" tilewidth="%d" tileheight="%d">
 <tileset firstgid="%d" name="tiles" tilewidth="%d" tileheight="%d">
  <image source="tiles.png"/>
 </tileset>
%s
</map>`, w, h, tw, th, firstgid, tw, th, strings.Join(body, "\n"))
}

// layerDoc builds a <layer> from gids, -1 writes a <tile/> with no gid
func layerDoc(attrs string, gids ...int) string {
	tiles := []string{}
	for _, g := range gids {
		if g < 0 {
			tiles = append(tiles, `<tile/>`)
			continue
		}
		tiles = append(tiles, fmt.Sprintf(`<tile gid="%d"/>`, g))
	}
	return fmt.Sprintf("<layer %s>\n<data>\n%s\n</data>\n</layer>", attrs, strings.Join(tiles, "\n"))
}

func objectGroupDoc(objects ...string) string {
	return fmt.Sprintf("<objectgroup name=\"objects\">\n%s\n</objectgroup>", strings.Join(objects, "\n"))
}

// levelFS returns a filesystem holding maps/level.tmx & maps/tiles.png
func levelFS(t *testing.T, doc string, atlas []byte) fstest.MapFS {
	return fstest.MapFS{
		"maps/level.tmx": &fstest.MapFile{Data: []byte(doc)},
		"maps/tiles.png": &fstest.MapFile{Data: atlas},
	}
}

// mustLoad loads `doc` with a cols x rows atlas of tw x th tiles
func mustLoad(t *testing.T, doc string, cols, rows, tw, th int) *Level {
	l, err := LoadFS(levelFS(t, doc, atlasPNG(t, cols, rows, tw, th)), "maps/level.tmx")
	require.NoError(t, err)
	require.NotNil(t, l)
	return l
}

// drawCall is one DrawTile call seen by recorder
type drawCall struct {
	src  image.Rectangle
	at   image.Point
	tint color.NRGBA
}

type recorder struct {
	calls []drawCall
}

func (r *recorder) DrawTile(atlas image.Image, src image.Rectangle, at image.Point, tint color.NRGBA) {
	r.calls = append(r.calls, drawCall{src: src, at: at, tint: tint})
}
