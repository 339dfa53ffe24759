package main

import (
	"bytes"
	"fmt"
	"image/png"
	"io/ioutil"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"github.com/voidshard/level"
)

const desc = `Renders a .tmx level (all layers, in order) to a png.

Render settings can be read from a YAML file (--config) & overridden with flags.`

var cli struct {
	Map    string `arg help:"input .tmx map" env:"LEVEL_MAP"`
	Output string `short:"o" help:"where to write the png. Defaults to input + .png. Overwrites output file if it exists."`

	Config string `short:"c" help:"YAML render config" env:"LEVEL_RENDER_CONFIG"`

	Scale      float64 `short:"s" help:"scale the output by this (overrides config)"`
	Background string  `short:"b" help:"hex background colour (overrides config)"`
	Objects    bool    `help:"draw object outlines & tiles"`
	Layers     []int   `short:"l" help:"only draw these layers (by index)"`

	Verbose bool `short:"v" help:"log while loading" env:"LEVEL_VERBOSE"`
}

// renderConfig loads --config (if given) & applies flag overrides
func renderConfig() (*level.Config, error) {
	cfg := level.DefaultConfig()
	if cli.Config != "" {
		var err error
		cfg, err = level.LoadConfig(cli.Config)
		if err != nil {
			return nil, err
		}
	}

	if cli.Scale > 0 {
		cfg.Scale = cli.Scale
	}
	if cli.Background != "" {
		cfg.Background = cli.Background
	}
	if cli.Objects {
		cfg.DrawObjects = true
	}
	if len(cli.Layers) > 0 {
		cfg.Layers = cli.Layers
	}
	return cfg, nil
}

// savePng to disk
func savePng(fpath string, l *level.Level, cfg *level.Config) error {
	img, err := level.Render(l, cfg)
	if err != nil {
		return err
	}

	buff := new(bytes.Buffer)
	err = png.Encode(buff, img)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, buff.Bytes(), 0644)
}

func main() {
	godotenv.Load()
	kong.Parse(&cli, kong.Name("level-render"), kong.Description(desc))

	logger, err := zap.NewProduction()
	if cli.Verbose {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	level.SetLogger(logger)

	if cli.Output == "" {
		cli.Output = fmt.Sprintf("%s.png", strings.TrimSuffix(cli.Map, ".tmx"))
	}
	output, err := homedir.Expand(cli.Output)
	if err != nil {
		logger.Fatal("bad output path", zap.String("output", cli.Output), zap.Error(err))
	}

	cfg, err := renderConfig()
	if err != nil {
		logger.Fatal("failed to read config", zap.String("config", cli.Config), zap.Error(err))
	}

	l, err := level.Load(cli.Map)
	if err != nil {
		logger.Fatal("failed to load level", zap.String("map", cli.Map), zap.Error(err))
	}

	if err := savePng(output, l, cfg); err != nil {
		logger.Fatal("failed to render level", zap.String("output", output), zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "wrote %s\n", output)
}
