package st7789

import (
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

type fakePin struct {
	name   string
	levels []gpio.Level
	halted bool
}

func (p *fakePin) String() string   { return p.name }
func (p *fakePin) Halt() error      { p.halted = true; return nil }
func (p *fakePin) Name() string     { return p.name }
func (p *fakePin) Number() int      { return 0 }
func (p *fakePin) Function() string { return "Out" }

func (p *fakePin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	return nil
}

func (p *fakePin) PWM(d gpio.Duty, f physic.Frequency) error { return nil }

type fakeSPIBus struct {
	writes [][]byte
}

func (f *fakeSPIBus) String() string { return "fakespi" }

func (f *fakeSPIBus) Tx(w, r []byte) error {
	f.writes = append(f.writes, append([]byte(nil), w...))
	return nil
}

func (f *fakeSPIBus) TxPackets(p []spi.Packet) error { return nil }

func (f *fakeSPIBus) Duplex() conn.Duplex { return conn.Half }

type fakePort struct {
	closed int
}

func (f *fakePort) String() string { return "fakeport" }

func (f *fakePort) Connect(freq physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	return &fakeSPIBus{}, nil
}

func (f *fakePort) LimitSpeed(freq physic.Frequency) error { return nil }

func (f *fakePort) Close() error {
	f.closed++
	return nil
}

func newFakeSPIConn(batchSize int) (*spiConn, *fakeSPIBus, *fakePin, *fakePin, *fakePort) {
	bus := &fakeSPIBus{}
	dc := &fakePin{name: "dc"}
	reset := &fakePin{name: "reset"}
	port := &fakePort{}
	c := &spiConn{
		port:      port,
		bus:       bus,
		reset:     reset,
		dc:        dc,
		dcLevel:   gpio.Low,
		batchSize: batchSize,
	}
	return c, bus, dc, reset, port
}

func TestSPICommandLineDiscipline(t *testing.T) {
	c, bus, dc, _, _ := newFakeSPIConn(defaultBatchSize)

	if err := c.Command(st7789CASET, 0x00, 0x00, 0x00, 0xEF); err != nil {
		t.Fatal(err)
	}

	// The DC line starts cached low, so the command byte needs no pin
	// write; the argument bytes raise it once.
	if len(dc.levels) != 1 || dc.levels[0] != gpio.High {
		t.Errorf("expected one DC transition to high, got %v", dc.levels)
	}
	if len(bus.writes) != 2 {
		t.Fatalf("expected 2 bus writes, got %d", len(bus.writes))
	}
	if len(bus.writes[0]) != 1 || bus.writes[0][0] != st7789CASET {
		t.Errorf("expected the command byte on its own, got %v", bus.writes[0])
	}
	if len(bus.writes[1]) != 4 {
		t.Errorf("expected the argument bytes as one batch, got %v", bus.writes[1])
	}
}

func TestSPIDCLevelCached(t *testing.T) {
	c, _, dc, _, _ := newFakeSPIConn(defaultBatchSize)

	if err := c.Data(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.Data(3, 4); err != nil {
		t.Fatal(err)
	}
	if len(dc.levels) != 1 {
		t.Errorf("expected a single DC pin write across consecutive data batches, got %v", dc.levels)
	}

	if err := c.Command(st7789NOP); err != nil {
		t.Fatal(err)
	}
	if len(dc.levels) != 2 || dc.levels[1] != gpio.Low {
		t.Errorf("expected the command to drop DC low again, got %v", dc.levels)
	}
}

func TestSPIDataChunking(t *testing.T) {
	c, bus, _, _, _ := newFakeSPIConn(8)

	data := make([]byte, 20)
	if err := c.Data(data...); err != nil {
		t.Fatal(err)
	}

	want := []int{8, 8, 4}
	if len(bus.writes) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(bus.writes))
	}
	for i, n := range want {
		if len(bus.writes[i]) != n {
			t.Errorf("chunk %d: expected %d bytes, got %d", i, n, len(bus.writes[i]))
		}
		if len(bus.writes[i])%2 != 0 && i != len(want)-1 {
			t.Errorf("chunk %d: odd chunk would split a pixel word", i)
		}
	}
}

func TestSPICloseIdempotent(t *testing.T) {
	c, _, dc, reset, port := newFakeSPIConn(defaultBatchSize)

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if port.closed != 1 {
		t.Errorf("expected the port to be closed once, closed %d times", port.closed)
	}
	if !dc.halted || !reset.halted {
		t.Error("expected both control pins to be released")
	}
}

func TestOpenSPIConfigNotMutated(t *testing.T) {
	config := &SPIConfig{DC: &fakePin{name: "dc"}, Reset: &fakePin{name: "reset"}}
	if c, err := OpenSPI(config); err == nil {
		c.Close()
	}
	if config.SpeedHz != 0 {
		t.Errorf("expected the caller's config to stay untouched, SpeedHz became %d", config.SpeedHz)
	}
}

func TestOpenSPIMissingPins(t *testing.T) {
	if _, err := OpenSPI(&SPIConfig{DC: &fakePin{name: "dc"}}); err != ErrResetPin {
		t.Errorf("expected ErrResetPin, got %v", err)
	}
	if _, err := OpenSPI(&SPIConfig{Reset: &fakePin{name: "reset"}}); err != ErrDCPin {
		t.Errorf("expected ErrDCPin, got %v", err)
	}
}
