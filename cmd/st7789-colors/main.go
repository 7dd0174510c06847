// Command st7789-colors cycles the display through primary and secondary
// colors, useful as a first smoke test of the wiring.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"periph.io/x/host/v3"

	"github.com/jetsonhacks/st7789"
	"github.com/jetsonhacks/st7789/internal/wiring"
)

var colors = []struct {
	name string
	c    color.RGBA
}{
	{"red", color.RGBA{R: 255, A: 255}},
	{"green", color.RGBA{G: 255, A: 255}},
	{"blue", color.RGBA{B: 255, A: 255}},
	{"yellow", color.RGBA{R: 255, G: 255, A: 255}},
	{"cyan", color.RGBA{G: 255, B: 255, A: 255}},
	{"magenta", color.RGBA{R: 255, B: 255, A: 255}},
	{"white", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	{"black", color.RGBA{A: 255}},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "st7789-colors:", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "wiring configuration YAML file")
	presetFlag := flag.String("preset", "", "wiring preset (jetson, waveshare, adafruit)")
	rotateFlag := flag.Int("rotation", 0, "display rotation in degrees")
	dcFlag := flag.String("dc", "", "data/command GPIO pin override")
	resetFlag := flag.String("reset", "", "reset GPIO pin override")
	busFlag := flag.Int("bus", 0, "SPI bus")
	deviceFlag := flag.Int("device", 0, "SPI device (chip select)")
	speedFlag := flag.Uint("speed", 0, "SPI clock rate in Hz")
	holdFlag := flag.Duration("hold", time.Second, "time to hold each color")
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
		DC:       *dcFlag,
		Reset:    *resetFlag,
		Bus:      *busFlag,
		Device:   *deviceFlag,
		SpeedHz:  uint32(*speedFlag),
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
	fmt.Printf("using display: %s at rotation %s\n", d, d.Rotation())

	for _, c := range colors {
		fmt.Println("fill:", c.name)
		if err := d.Fill(c.c); err != nil {
			return err
		}
		time.Sleep(*holdFlag)
	}
	return d.Clear()
}
