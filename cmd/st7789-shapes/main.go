// Command st7789-shapes renders a few geometric test patterns, exercising
// the full image path: compose off-screen, resample if needed, stream.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"periph.io/x/host/v3"

	"github.com/jetsonhacks/st7789"
	"github.com/jetsonhacks/st7789/draw"
	"github.com/jetsonhacks/st7789/internal/wiring"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "st7789-shapes:", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "wiring configuration YAML file")
	presetFlag := flag.String("preset", "", "wiring preset (jetson, waveshare, adafruit)")
	rotateFlag := flag.Int("rotation", 0, "display rotation in degrees")
	holdFlag := flag.Duration("hold", 3*time.Second, "time to hold each pattern")
	flag.Parse()

	cfg := wiring.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = wiring.Load(*configFlag); err != nil {
			return err
		}
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg.Apply(wiring.Overrides{
		Preset:   *presetFlag,
		Rotation: *rotateFlag,
		Set:      set,
	})

	if _, err := host.Init(); err != nil {
		return err
	}
	spiConfig, config, err := cfg.Resolve()
	if err != nil {
		return err
	}

	d, err := st7789.Open(spiConfig, config)
	if err != nil {
		return err
	}
	defer d.Close()
	fmt.Printf("using display: %s\n", d)

	patterns := []struct {
		name string
		draw func(*image.RGBA)
	}{
		{"grid", grid},
		{"circles", circles},
		{"diagonals", diagonals},
	}
	for _, p := range patterns {
		fmt.Println("pattern:", p.name)
		canvas := image.NewRGBA(d.Bounds())
		p.draw(canvas)
		if err := d.Display(canvas); err != nil {
			return err
		}
		time.Sleep(*holdFlag)
	}
	return d.Clear()
}

func grid(canvas *image.RGBA) {
	var (
		b     = canvas.Bounds()
		white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		gray  = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	)
	for x := 0; x < b.Dx(); x += 20 {
		draw.VerticalLine(canvas, x, 0, b.Dy(), gray)
	}
	for y := 0; y < b.Dy(); y += 20 {
		draw.HorizontalLine(canvas, 0, y, b.Dx(), gray)
	}
	draw.Rectangle(canvas, b, white)
}

func circles(canvas *image.RGBA) {
	var (
		b      = canvas.Bounds()
		center = image.Point{X: b.Dx() / 2, Y: b.Dy() / 2}
	)
	draw.Disc(canvas, center, 16, color.RGBA{R: 255, A: 255})
	for r := 32; r < b.Dx()/2; r += 16 {
		c := color.RGBA{
			R: uint8(255 - r),
			G: uint8(r),
			B: 128,
			A: 255,
		}
		draw.Circle(canvas, center, r, c)
	}
}

func diagonals(canvas *image.RGBA) {
	var (
		b      = canvas.Bounds()
		yellow = color.RGBA{R: 255, G: 255, A: 255}
		cyan   = color.RGBA{G: 255, B: 255, A: 255}
	)
	for x := 0; x < b.Dx(); x += 16 {
		draw.Line(canvas, image.Point{X: x}, image.Point{X: b.Dx() - 1 - x, Y: b.Dy() - 1}, yellow)
	}
	draw.Box(canvas, image.Rect(b.Dx()/4, b.Dy()/4, 3*b.Dx()/4, 3*b.Dy()/4), color.RGBA{B: 96, A: 255})
	draw.Rectangle(canvas, image.Rect(b.Dx()/4, b.Dy()/4, 3*b.Dx()/4, 3*b.Dy()/4), cyan)
}
