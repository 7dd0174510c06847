// Package st7789 drives ST7789-based LCD panels over SPI.
//
// The driver targets hosts with a Linux spidev interface (Jetson boards,
// Raspberry Pi and similar) and talks to the panel through periph.io. A
// typical session opens the display, draws, and closes it again:
//
//	dc := gpioreg.ByName("GPIO25")
//	rst := gpioreg.ByName("GPIO27")
//	d, err := st7789.Open(&st7789.SPIConfig{DC: dc, Reset: rst}, &st7789.Config{
//		Rotation: st7789.Rotate90,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer d.Close()
//	_ = d.Fill(color.RGBA{R: 0xff, A: 0xff})
//
// A Dev is a single-owner handle: the data/command line level is shared
// hardware state, so concurrent calls on the same handle are undefined.
// Callers that need concurrency must serialize access themselves.
package st7789
