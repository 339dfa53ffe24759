package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"github.com/voidshard/level"
)

const desc = `Loads .tmx levels & writes their tiles, objects & properties to a sqlite index.

Other tools can then query objects (spawn points, triggers ..) without parsing TMX or decoding images.`

var cli struct {
	Index string   `short:"d" default:"levels.sqlite" help:"sqlite index file (created if missing)" env:"LEVEL_INDEX"`
	Maps  []string `arg optional help:"input .tmx maps"`

	List bool `help:"list indexed levels instead of adding any"`

	Verbose bool `short:"v" help:"log while loading" env:"LEVEL_VERBOSE"`
}

func main() {
	godotenv.Load()
	kong.Parse(&cli, kong.Name("level-index"), kong.Description(desc))

	logger, err := zap.NewProduction()
	if cli.Verbose {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	level.SetLogger(logger)

	fname, err := homedir.Expand(cli.Index)
	if err != nil {
		logger.Fatal("bad index path", zap.String("index", cli.Index), zap.Error(err))
	}

	idx, err := level.OpenIndex(fname)
	if err != nil {
		logger.Fatal("failed to open index", zap.String("index", fname), zap.Error(err))
	}
	defer idx.Close()

	if cli.List {
		levels, err := idx.Levels()
		if err != nil {
			logger.Fatal("failed to list levels", zap.Error(err))
		}
		for _, l := range levels {
			fmt.Printf("%s\t%s\t%dx%d\t%s\n", l.ID, l.Source, l.Width, l.Height, l.Created)
		}
		return
	}

	for _, m := range cli.Maps {
		l, err := level.Load(m)
		if err != nil {
			logger.Error("failed to load level", zap.String("map", m), zap.Error(err))
			continue
		}

		id, err := idx.Put(m, l)
		if err != nil {
			logger.Fatal("failed to index level", zap.String("map", m), zap.Error(err))
		}
		logger.Info("indexed level", zap.String("map", m), zap.String("id", id), zap.Int("objects", len(l.Objects)))
	}
}
