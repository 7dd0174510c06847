// Package wiring resolves demo wiring configuration: a named pin preset,
// an optional YAML file, and flag overrides collapse into the SPI and
// display configuration the driver consumes.
package wiring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/jetsonhacks/st7789"
)

// Config describes how a display is wired and oriented. Zero values are
// filled in from the selected preset by Normalize.
type Config struct {
	// Preset is the wiring preset name. Defaults to "jetson".
	Preset string `yaml:"preset"`

	// Bus is the SPI bus number.
	Bus int `yaml:"bus"`

	// Device is the chip select number on the bus.
	Device int `yaml:"device"`

	// DC is the data/command GPIO pin name.
	DC string `yaml:"dc"`

	// Reset is the reset GPIO pin name.
	Reset string `yaml:"reset"`

	// SpeedHz is the SPI clock rate in Hz.
	SpeedHz uint32 `yaml:"speed_hz"`

	// Rotation is the display rotation in degrees: 0, 90, 180 or 270.
	Rotation int `yaml:"rotation"`

	// Width and Height are the panel dimensions at 0° rotation.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the default wiring, the Jetson preset.
func Default() *Config {
	return &Config{Preset: "jetson"}
}

// Load reads a wiring configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("wiring: %s: %w", path, err)
	}
	return &cfg, nil
}

// Overrides are explicit command-line values layered on top of a loaded
// config. Set marks the flag names the user actually provided; fields
// without a mark leave the config alone, so an explicit zero (say,
// forcing rotation back to 0° over a config file) still takes effect.
type Overrides struct {
	Preset   string
	DC       string
	Reset    string
	Bus      int
	Device   int
	SpeedHz  uint32
	Rotation int

	Set map[string]bool
}

// Apply copies the explicitly provided overrides into the config.
func (c *Config) Apply(o Overrides) {
	if o.Set["preset"] {
		c.Preset = o.Preset
	}
	if o.Set["dc"] {
		c.DC = o.DC
	}
	if o.Set["reset"] {
		c.Reset = o.Reset
	}
	if o.Set["bus"] {
		c.Bus = o.Bus
	}
	if o.Set["device"] {
		c.Device = o.Device
	}
	if o.Set["speed"] {
		c.SpeedHz = o.SpeedHz
	}
	if o.Set["rotation"] {
		c.Rotation = o.Rotation
	}
}

// Normalize fills unset fields from the selected preset and the driver
// defaults.
func (c *Config) Normalize() error {
	if c.Preset == "" {
		c.Preset = "jetson"
	}
	preset, err := st7789.Preset(c.Preset)
	if err != nil {
		return err
	}
	if c.DC == "" {
		c.DC = preset.DC
	}
	if c.Reset == "" {
		c.Reset = preset.Reset
	}
	if c.Bus == 0 {
		c.Bus = preset.Bus
	}
	if c.Device == 0 {
		c.Device = preset.Device
	}
	if c.SpeedHz == 0 {
		c.SpeedHz = st7789.DefaultSPIConfig.SpeedHz
	}
	return nil
}

// Resolve normalizes the config and resolves pin names into the driver's
// configuration. The periph.io host must be initialized first.
func (c *Config) Resolve() (*st7789.SPIConfig, *st7789.Config, error) {
	if err := c.Normalize(); err != nil {
		return nil, nil, err
	}
	rotation, err := st7789.RotationFromDegrees(c.Rotation)
	if err != nil {
		return nil, nil, err
	}

	dc := gpioreg.ByName(c.DC)
	if dc == nil {
		return nil, nil, fmt.Errorf("wiring: data/command pin %q not found", c.DC)
	}
	reset := gpioreg.ByName(c.Reset)
	if reset == nil {
		return nil, nil, fmt.Errorf("wiring: reset pin %q not found", c.Reset)
	}

	spiConfig := &st7789.SPIConfig{
		Bus:     c.Bus,
		Device:  c.Device,
		SpeedHz: c.SpeedHz,
		DC:      dc,
		Reset:   reset,
	}
	config := &st7789.Config{
		Width:    c.Width,
		Height:   c.Height,
		Rotation: rotation,
	}
	return spiConfig, config, nil
}
