package main

import (
	"image"
	"image/color"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voidshard/level"
)

const desc = `Opens a window showing a .tmx level. Arrow keys scroll, escape quits.`

var cli struct {
	Map string `arg help:"input .tmx map" env:"LEVEL_MAP"`

	Width   int  `default:"640" help:"window width in px"`
	Height  int  `default:"480" help:"window height in px"`
	Speed   int  `default:"4" help:"scroll speed in px per tick"`
	Objects bool `help:"outline objects"`

	Verbose bool `short:"v" help:"log while loading" env:"LEVEL_VERBOSE"`
}

// screenDrawer draws level tiles on to the ebiten screen, offset by the camera
type screenDrawer struct {
	screen *ebiten.Image
	atlas  *ebiten.Image
	camera image.Point
}

// DrawTile implements level.Drawer. The level atlas is uploaded once so we
// ignore the image passed in.
func (d *screenDrawer) DrawTile(_ image.Image, src image.Rectangle, at image.Point, tint color.NRGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(at.X-d.camera.X), float64(at.Y-d.camera.Y))
	op.ColorScale.ScaleWithColor(tint)
	d.screen.DrawImage(d.atlas.SubImage(src).(*ebiten.Image), op)
}

type viewer struct {
	level  *level.Level
	atlas  *ebiten.Image
	camera image.Point
}

func (v *viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.camera.X -= cli.Speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.camera.X += cli.Speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.camera.Y -= cli.Speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.camera.Y += cli.Speed
	}

	// keep the camera on the map
	size := v.level.PixelSize()
	v.camera.X = clamp(v.camera.X, 0, size.X-cli.Width)
	v.camera.Y = clamp(v.camera.Y, 0, size.Y-cli.Height)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.level.Draw(&screenDrawer{screen: screen, atlas: v.atlas, camera: v.camera})

	if !cli.Objects {
		return
	}
	red := color.NRGBA{R: 255, A: 255}
	for _, o := range v.level.Objects {
		x := float32(o.Rect.Left - v.camera.X)
		y := float32(o.Rect.Top - v.camera.Y)
		w, h := float32(o.Rect.Width), float32(o.Rect.Height)
		if w == 0 && h == 0 {
			w, h = 2, 2
		}
		vector.StrokeRect(screen, x, y, w, h, 1, red, false)
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cli.Width, cli.Height
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func main() {
	godotenv.Load()
	kong.Parse(&cli, kong.Name("level-view"), kong.Description(desc))

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

	ebiten.SetWindowSize(cli.Width, cli.Height)
	ebiten.SetWindowTitle(cli.Map)

	v := &viewer{level: l, atlas: ebiten.NewImageFromImage(l.Atlas.Image)}
	if err := ebiten.RunGame(v); err != nil {
		logger.Fatal("viewer stopped", zap.Error(err))
	}
}
