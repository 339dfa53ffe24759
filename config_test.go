package level

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, ioutil.WriteFile(fname, []byte("scale: 3\nbackground: \"#101010\"\nlayers: [0, 2]\n"), 0644))

	cfg, err := LoadConfig(fname)

	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Scale)
	assert.Equal(t, "#101010", cfg.Background)
	assert.Equal(t, []int{0, 2}, cfg.Layers)

	// untouched settings keep defaults
	assert.False(t, cfg.DrawObjects)
	assert.Equal(t, "#ff0000", cfg.ObjectColor)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	fname := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, ioutil.WriteFile(fname, []byte("scale: [nope"), 0644))
	_, err = LoadConfig(fname)
	assert.Error(t, err)
}

func TestConfigDrawLayer(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.drawLayer(0))
	assert.True(t, cfg.drawLayer(9))

	cfg.Layers = []int{1}
	assert.False(t, cfg.drawLayer(0))
	assert.True(t, cfg.drawLayer(1))
}
