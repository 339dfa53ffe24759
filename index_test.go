package level

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestIndex(t *testing.T) *Index {
	idx, err := OpenIndex(filepath.Join(t.TempDir(), "levels.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndexPut(t *testing.T) {
	doc := tmxDoc(2, 2, 16, 16, 1,
		layerDoc("", 1, 0, 2, 1),
		layerDoc(`opacity="0.5"`, 0, 0, 0, 2),
		objectGroupDoc(
			`<object name="door" type="exit" x="1" y="2">
			  <properties><property name="to" value="cave"/><property name="locked" value="no"/></properties>
			 </object>`,
			`<object name="gem" x="3" y="4" gid="2"/>`,
			`<object name="door" x="5" y="6" width="7" height="8"/>`,
		),
	)
	l := mustLoad(t, doc, 2, 1, 16, 16)
	idx := openTestIndex(t)

	id, err := idx.Put("maps/level.tmx", l)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	lvl, err := idx.Level(id)
	require.NoError(t, err)
	assert.Equal(t, "maps/level.tmx", lvl.Source)
	assert.Equal(t, 2, lvl.Width)
	assert.Equal(t, 16, lvl.TileHeight)
	assert.Equal(t, 1, lvl.FirstGID)

	n, err := idx.TileCount(id)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	all, err := idx.Objects(id)
	require.NoError(t, err)
	require.Equal(t, 3, len(all))
	assert.Equal(t, "door", all[0].Name)
	assert.Equal(t, "gem", all[1].Name)
	assert.Equal(t, Rect{Left: 3, Top: 4, Width: 16, Height: 16}, all[1].Rect)
	assert.Equal(t, 1, all[1].TileIndex)
	assert.Equal(t, image.Rect(16, 0, 32, 16), all[1].Visual)

	doors, err := idx.ObjectsNamed(id, "door")
	require.NoError(t, err)
	require.Equal(t, 2, len(doors))
	assert.Equal(t, "exit", doors[0].Type)
	assert.Equal(t, map[string]string{"to": "cave", "locked": "no"}, doors[0].Properties.Map())
	assert.False(t, doors[1].HasVisual())
	assert.Equal(t, 0, doors[1].Properties.Len())
	assert.Equal(t, Rect{Left: 5, Top: 6, Width: 7, Height: 8}, doors[1].Rect)

	none, err := idx.ObjectsNamed(id, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, len(none))
}

func TestIndexLevels(t *testing.T) {
	l := mustLoad(t, tmxDoc(1, 1, 16, 16, 1), 1, 1, 16, 16)
	idx := openTestIndex(t)

	a, err := idx.Put("a.tmx", l)
	require.NoError(t, err)
	b, err := idx.Put("b.tmx", l)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	levels, err := idx.Levels()
	require.NoError(t, err)
	require.Equal(t, 2, len(levels))
	assert.Equal(t, a, levels[0].ID)
	assert.Equal(t, b, levels[1].ID)

	_, err = idx.Level("missing")
	assert.Error(t, err)
}
