package st7789

import (
	"errors"
	"fmt"
	"log"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Conn errors.
var (
	ErrResetPin = errors.New("st7789: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("st7789: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with the panel.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// SPIConfig describes the SPI bus wiring.
type SPIConfig struct {
	// Bus is the SPI bus number (the N in /dev/spidevN.M).
	Bus int

	// Device is the chip select number on the bus (the M in /dev/spidevN.M).
	Device int

	// SpeedHz is the SPI clock rate in Hz.
	SpeedHz uint32

	// BatchSize caps the number of bytes per bus write. Zero selects the
	// transport's own limit, or 4096 when the transport reports none.
	BatchSize int

	// Reset pin.
	Reset gpio.PinOut

	// DC is the data/command select pin.
	DC gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:     0,
	Device:  0,
	SpeedHz: 125_000_000,
}

const defaultBatchSize = 4096

type spiConn struct {
	port      spi.PortCloser
	bus       spi.Conn
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	batchSize int
	closed    bool
}

// OpenSPI opens the configured spidev device and claims the control pins.
// On failure everything already acquired is released again.
func OpenSPI(config *SPIConfig) (Conn, error) {
	cfg := DefaultSPIConfig
	if config != nil {
		cfg = *config
	}

	if cfg.Reset == nil || cfg.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if cfg.DC == nil || cfg.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if cfg.SpeedHz == 0 {
		cfg.SpeedHz = DefaultSPIConfig.SpeedHz
	}

	port, err := spireg.Open(fmt.Sprintf("SPI%d.%d", cfg.Bus, cfg.Device))
	if err != nil {
		return nil, err
	}

	bus, err := port.Connect(physic.Frequency(cfg.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	// Drive both control lines to a known level before any traffic.
	if err = cfg.DC.Out(gpio.Low); err != nil {
		_ = port.Close()
		return nil, err
	}
	if err = cfg.Reset.Out(gpio.High); err != nil {
		_ = port.Close()
		return nil, err
	}

	// The write batch size is determined once here, not re-probed per
	// call. Pixel words are 2 bytes, so the batch size must stay even to
	// keep word ordering intact across chunk boundaries.
	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = defaultBatchSize
		if limits, ok := bus.(conn.Limits); ok {
			if max := limits.MaxTxSize(); max > 0 && max < batchSize {
				batchSize = max
			}
		}
	}
	batchSize &^= 1
	if batchSize < 2 {
		_ = port.Close()
		return nil, fmt.Errorf("st7789: invalid SPI batch size %d", cfg.BatchSize)
	}

	return &spiConn{
		port:      port,
		bus:       bus,
		reset:     cfg.Reset,
		dc:        cfg.DC,
		dcLevel:   gpio.Low,
		batchSize: batchSize,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.port.Close()
	if herr := c.dc.Halt(); err == nil {
		err = herr
	}
	if herr := c.reset.Halt(); err == nil {
		err = herr
	}
	return err
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

// updateDC asserts the data/command line, skipping the pin write when the
// level is already current.
func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
	}
	return nil
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateDC(gpio.Low); err != nil {
		return
	}
	if err = c.bus.Tx([]byte{cmnd}, nil); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.High); err != nil {
			return
		}
		if err = c.writeChunked(data); err != nil {
			return
		}
	}
	return
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.High); err != nil {
		return
	}
	return c.writeChunked(data)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) <= c.batchSize {
		return c.bus.Tx(data, nil)
	}

	if debug {
		log.Printf("st7789: write %d bytes of data in %d chunks", len(data), (len(data)+c.batchSize-1)/c.batchSize)
	}
	for buffer := data; len(buffer) > 0; {
		n := len(buffer)
		if n > c.batchSize {
			n = c.batchSize
		}
		if err = c.bus.Tx(buffer[:n], nil); err != nil {
			return
		}
		buffer = buffer[n:]
	}
	return
}
