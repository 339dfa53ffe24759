package level

import (
	"image"
	"testing"

	"github.com/lafriks/go-tiled"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compatDoc = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.2" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="8" tileheight="8">
 <tileset firstgid="1" name="tiles" tilewidth="8" tileheight="8" tilecount="6" columns="3">
  <image source="tiles.png" width="24" height="16"/>
 </tileset>
 <layer id="1" name="ground" width="4" height="3">
  <data>
   <tile gid="1"/><tile gid="2"/><tile gid="3"/><tile gid="4"/>
   <tile/><tile gid="5"/><tile/><tile gid="6"/>
   <tile gid="6"/><tile/><tile/><tile gid="1"/>
  </data>
 </layer>
 <layer id="2" name="top" width="4" height="3" opacity="0.5">
  <data>
   <tile/><tile/><tile/><tile/>
   <tile/><tile/><tile gid="2"/><tile/>
   <tile/><tile/><tile/><tile/>
  </data>
 </layer>
 <objectgroup id="3" name="objects">
  <object id="1" name="spawn" x="8" y="16"/>
  <object id="2" name="exit" x="24" y="8"/>
 </objectgroup>
</map>`

// TestCompatGoTiled checks tile placement agrees with another TMX reader
func TestCompatGoTiled(t *testing.T) {
	fsys := levelFS(t, compatDoc, atlasPNG(t, 3, 2, 8, 8))

	ours, err := LoadFS(fsys, "maps/level.tmx")
	require.NoError(t, err)

	theirs, err := tiled.LoadFile("maps/level.tmx", tiled.WithFileSystem(fsys))
	require.NoError(t, err)

	require.Equal(t, len(theirs.Layers), len(ours.Layers))
	for li, layer := range theirs.Layers {
		expect := []PlacedTile{}
		for i, tile := range layer.Tiles {
			if tile.IsNil() {
				continue
			}
			idx := int(tile.ID)
			src, ok := ours.Atlas.Rect(idx)
			require.True(t, ok)
			expect = append(expect, PlacedTile{
				Index: idx,
				Src:   src,
				Pos:   image.Pt((i%theirs.Width)*theirs.TileWidth, (i/theirs.Width)*theirs.TileHeight),
				Tint:  ours.Layers[li].Tiles[0].Tint,
			})
		}
		assert.Equal(t, layer.Name, ours.Layers[li].Name)
		assert.Equal(t, expect, ours.Layers[li].Tiles, layer.Name)
	}

	objects := []*tiled.Object{}
	for _, g := range theirs.ObjectGroups {
		objects = append(objects, g.Objects...)
	}
	require.Equal(t, len(objects), len(ours.Objects))
	for i, o := range objects {
		assert.Equal(t, o.Name, ours.Objects[i].Name)
		assert.Equal(t, int(o.X), ours.Objects[i].Rect.Left)
		assert.Equal(t, int(o.Y), ours.Objects[i].Rect.Top)
	}
}
