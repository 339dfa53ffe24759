package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voidshard/level"
)

const desc = `Prints a YAML summary of a .tmx level: size, tileset, layers & objects.

Objects can be filtered by name (--name) or type (--type).`

var cli struct {
	Map string `arg help:"input .tmx map" env:"LEVEL_MAP"`

	Name string `short:"n" help:"only list objects with this name"`
	Type string `short:"t" help:"only list objects with this type"`

	Verbose bool `short:"v" help:"log while loading" env:"LEVEL_VERBOSE"`
}

type layerInfo struct {
	Name    string `yaml:"name"`
	Opacity uint8  `yaml:"opacity"`
	Tiles   int    `yaml:"tiles"`
}

type objectInfo struct {
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type,omitempty"`
	X          int               `yaml:"x"`
	Y          int               `yaml:"y"`
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	Tile       *int              `yaml:"tile,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

type summary struct {
	Map        string       `yaml:"map"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	TileWidth  int          `yaml:"tilewidth"`
	TileHeight int          `yaml:"tileheight"`
	FirstGID   int          `yaml:"firstgid"`
	Columns    int          `yaml:"columns"`
	Rows       int          `yaml:"rows"`
	Layers     []layerInfo  `yaml:"layers"`
	Objects    []objectInfo `yaml:"objects"`
}

// selectObjects applies the --name / --type filters
func selectObjects(l *level.Level) []*level.Object {
	switch {
	case cli.Name == "" && cli.Type == "":
		return l.Objects
	case cli.Type == "":
		return l.ObjectsNamed(cli.Name)
	case cli.Name == "":
		return l.ObjectsOfType(cli.Type)
	}

	named := map[*level.Object]bool{}
	for _, o := range l.ObjectsNamed(cli.Name) {
		named[o] = true
	}
	found := []*level.Object{}
	for _, o := range l.ObjectsOfType(cli.Type) {
		if named[o] {
			found = append(found, o)
		}
	}
	return found
}

func main() {
	godotenv.Load()
	kong.Parse(&cli, kong.Name("level-info"), kong.Description(desc))

	logger, err := zap.NewProduction()
	if cli.Verbose {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	level.SetLogger(logger)

	l, err := level.Load(cli.Map)
	if err != nil {
		logger.Fatal("failed to load level", zap.String("map", cli.Map), zap.Error(err))
	}

	s := summary{
		Map:        cli.Map,
		Width:      l.Width,
		Height:     l.Height,
		TileWidth:  l.TileWidth,
		TileHeight: l.TileHeight,
		FirstGID:   l.FirstTileID,
		Columns:    l.Atlas.Columns,
		Rows:       l.Atlas.Rows,
		Layers:     []layerInfo{},
		Objects:    []objectInfo{},
	}
	for _, layer := range l.Layers {
		s.Layers = append(s.Layers, layerInfo{Name: layer.Name, Opacity: layer.Opacity, Tiles: len(layer.Tiles)})
	}
	for _, o := range selectObjects(l) {
		info := objectInfo{
			Name:       o.Name,
			Type:       o.Type,
			X:          o.Rect.Left,
			Y:          o.Rect.Top,
			Width:      o.Rect.Width,
			Height:     o.Rect.Height,
			Properties: o.Properties.Map(),
		}
		if o.HasVisual() {
			tile := o.TileIndex
			info.Tile = &tile
		}
		s.Objects = append(s.Objects, info)
	}

	out, err := yaml.Marshal(s)
	if err != nil {
		logger.Fatal("failed to encode summary", zap.Error(err))
	}
	fmt.Fprint(os.Stdout, string(out))
}
