package st7789

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/gpio"

	"github.com/jetsonhacks/st7789/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("ST7789_DEBUG") != ""
}

// settle waits out a mandatory hardware settle time. The delays in the
// bring-up sequence are datasheet timing, not retries, and must not be
// shortened on real silicon.
var settle = time.Sleep

// Native panel raster.
const (
	DefaultWidth  = 240
	DefaultHeight = 320
)

// Registers (from st7789.pdf).
const (
	st7789NOP     = 0x00
	st7789SWRESET = 0x01 // Software Reset
	st7789SLPIN   = 0x10
	st7789SLPOUT  = 0x11 // Sleep Out
	st7789NORON   = 0x13 // Normal Display Mode On
	st7789INVOFF  = 0x20
	st7789INVON   = 0x21 // Display Inversion On
	st7789DISPOFF = 0x28 // Display Off
	st7789DISPON  = 0x29 // Display On
	st7789CASET   = 0x2A // Column Address Set
	st7789RASET   = 0x2B // Row Address Set
	st7789RAMWR   = 0x2C // Memory Write
	st7789MADCTL  = 0x36 // Memory Data Access Control
	st7789COLMOD  = 0x3A // Interface Pixel Format
)

// Memory Data Access Control (MADCTL) bit fields.
const (
	_                           byte = 1 << iota // D0: reserved
	_                                            // D1: reserved
	st7789DisplayDataLatchOrder                  // D2: MH
	st7789RGBOrder                               // D3: RGB
	st7789LineAddressOrder                       // D4: ML
	st7789PageColumnOrder                        // D5: MV
	st7789ColumnAddressOrder                     // D6: MX
	st7789PageAddressOrder                       // D7: MY
)

// Config is the display configuration.
type Config struct {
	// Width of the panel in pixels at 0° rotation.
	Width int

	// Height of the panel in pixels at 0° rotation.
	Height int

	// Rotation of the display. 90° and 270° swap the logical width and
	// height of the handle.
	Rotation Rotation
}

func (c *Config) validate() error {
	if c.Rotation > Rotate270 {
		return &ValidationError{Reason: fmt.Sprintf("invalid rotation %d", c.Rotation)}
	}
	return nil
}

// Dev is an open ST7789 display session.
//
// The handle is single-owner; see the package documentation for the
// concurrency contract.
type Dev struct {
	c        Conn
	width    int // logical width, after rotation
	height   int // logical height, after rotation
	rotation Rotation
	closed   bool
}

// New initializes the panel over an existing connection. The connection is
// owned by the returned Dev; if the bring-up sequence fails it is closed
// before the error is returned. A ValidationError leaves the connection
// untouched and unowned.
func New(c Conn, config *Config) (*Dev, error) {
	if config == nil {
		config = new(Config)
	}
	cfg := *config
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}

	d := &Dev{c: c, rotation: cfg.Rotation}
	if cfg.Rotation.swapsAxes() {
		d.width, d.height = cfg.Height, cfg.Width
	} else {
		d.width, d.height = cfg.Width, cfg.Height
	}

	if err := d.init(); err != nil {
		_ = c.Close()
		return nil, &InitError{Cause: err}
	}
	return d, nil
}

// Open opens the SPI bus and control pins described by spiConfig and
// initializes the panel. On any failure everything already acquired is
// released before the error is returned.
func Open(spiConfig *SPIConfig, config *Config) (*Dev, error) {
	if config != nil {
		if err := config.validate(); err != nil {
			return nil, err
		}
	}
	c, err := OpenSPI(spiConfig)
	if err != nil {
		return nil, &InitError{Cause: err}
	}
	return New(c, config)
}

// WithDisplay opens a display, runs fn, and guarantees teardown on every
// exit path, including a panic inside fn.
func WithDisplay(spiConfig *SPIConfig, config *Config, fn func(*Dev) error) error {
	d, err := Open(spiConfig, config)
	if err != nil {
		return err
	}
	defer d.Close()
	return fn(d)
}

func (d *Dev) String() string {
	return fmt.Sprintf("ST7789 %dx%d", d.width, d.height)
}

// Bounds is the logical display bounding box, accounting for rotation.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Rotation is the rotation the display was configured with.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

// ColorModel is the packed color model of the panel.
func (d *Dev) ColorModel() color.Model {
	return pixel.CRGB16Model
}

func (d *Dev) commands(commands [][]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *Dev) init() (err error) {
	// Hardware reset pulse, hold times per datasheet.
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	settle(10 * time.Millisecond)
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	settle(10 * time.Millisecond)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	settle(120 * time.Millisecond)

	if err = d.c.Command(st7789SWRESET); err != nil { // Software Reset
		return
	}
	settle(150 * time.Millisecond)

	if err = d.c.Command(st7789SLPOUT); err != nil { // Sleep Out
		return
	}
	settle(500 * time.Millisecond)

	if debug {
		log.Printf("st7789: madctl %s -> %#02x", d.rotation, d.rotation.madctl())
	}
	if err = d.commands([][]byte{
		{st7789COLMOD, 0x05},                // Interface Pixel Format: 16-bit/pixel (RGB 5-6-5-bit input)
		{st7789MADCTL, d.rotation.madctl()}, // Memory Data Access Control
		{st7789INVON},                       // Display Inversion On
		{st7789NORON},                       // Normal Display Mode On
	}); err != nil {
		return
	}
	settle(10 * time.Millisecond)

	if err = d.c.Command(st7789DISPON); err != nil { // Display On
		return
	}
	settle(120 * time.Millisecond)

	return
}

// setWindow sets the addressing window and opens the RAM write. Every pixel
// payload must be preceded by this; the panel otherwise keeps whatever
// window an earlier transaction left behind.
func (d *Dev) setWindow(x0, y0, x1, y1 int) error {
	return d.commands([][]byte{
		{st7789CASET, byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}, // Column address
		{st7789RASET, byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}, // Row address
		{st7789RAMWR}, // Write to RAM
	})
}

// Fill sets every pixel on the panel to the given color.
func (d *Dev) Fill(c color.Color) error {
	if d.closed {
		return ErrClosed
	}

	v := pixel.CRGB16Model.Convert(c).(pixel.CRGB16).V
	frame := bytes.Repeat([]byte{byte(v >> 8), byte(v)}, d.width*d.height)

	if err := d.setWindow(0, 0, d.width-1, d.height-1); err != nil {
		return &TransportError{Op: "fill", Cause: err}
	}
	if err := d.c.Data(frame...); err != nil {
		return &TransportError{Op: "fill", Cause: err}
	}
	return nil
}

// Clear blanks the panel to black.
func (d *Dev) Clear() error {
	return d.Fill(color.Black)
}

// Display draws an image across the full panel. Images whose bounds differ
// from the logical display size are resampled to fit first.
func (d *Dev) Display(img image.Image) error {
	if d.closed {
		return ErrClosed
	}

	if b := img.Bounds(); b.Dx() != d.width || b.Dy() != d.height {
		resized := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
		xdraw.CatmullRom.Scale(resized, resized.Bounds(), img, b, xdraw.Src, nil)
		img = resized
	}
	frame := pixel.EncodeImage(img)

	if err := d.setWindow(0, 0, d.width-1, d.height-1); err != nil {
		return &TransportError{Op: "display", Cause: err}
	}
	if err := d.c.Data(frame...); err != nil {
		return &TransportError{Op: "display", Cause: err}
	}
	return nil
}

// Close turns the display off and releases the bus and control pins. It is
// idempotent and best effort: failures on the way down are logged in debug
// mode but never returned.
func (d *Dev) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if err := d.c.Command(st7789DISPOFF); err != nil && debug {
		log.Printf("st7789: display off failed: %v", err)
	}
	if err := d.c.Close(); err != nil && debug {
		log.Printf("st7789: close failed: %v", err)
	}
	return nil
}
