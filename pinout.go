package st7789

import (
	"fmt"
	"strings"
)

// PinPreset is a named wiring configuration for a display module. Pin
// fields are GPIO names resolvable with periph.io's gpioreg.ByName.
type PinPreset struct {
	// Name of the preset.
	Name string

	// DC is the data/command select pin.
	DC string

	// Reset pin.
	Reset string

	// Backlight pin, empty when the module ties the backlight to 3.3V.
	Backlight string

	// Bus is the SPI bus number.
	Bus int

	// Device is the chip select number on the bus.
	Device int

	// Description of the wiring.
	Description string
}

// presets, in definition order. The Jetson preset comes first as the
// recommended default for Jetson hardware.
var presets = []PinPreset{
	{
		Name:        "jetson",
		DC:          "29", // header pin 29, soc_gpio32_pq5
		Reset:       "31", // header pin 31, soc_gpio33_pq6
		Bus:         0,
		Device:      0,
		Description: "Default pinout for Jetson Orin/Xavier (header pins 29, 31 - requires device tree overlay)",
	},
	{
		Name:        "waveshare",
		DC:          "GPIO25",
		Reset:       "GPIO27",
		Backlight:   "GPIO18",
		Bus:         0,
		Device:      0,
		Description: "Waveshare 2inch LCD Module (ST7789V) - Raspberry Pi compatible pinout",
	},
	{
		Name:        "adafruit",
		DC:          "GPIO25",
		Reset:       "GPIO24",
		Bus:         0,
		Device:      0,
		Description: "Adafruit 2.0\" 320x240 IPS TFT (ST7789) - Raspberry Pi compatible pinout",
	},
}

// Preset returns the named wiring preset. Lookup is case insensitive.
func Preset(name string) (PinPreset, error) {
	lower := strings.ToLower(name)
	for _, p := range presets {
		if p.Name == lower {
			return p, nil
		}
	}
	return PinPreset{}, &ValidationError{
		Reason: fmt.Sprintf("unknown preset %q, available presets: %s", name, strings.Join(Presets(), ", ")),
	}
}

// Presets lists the available preset names in definition order.
func Presets() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}
