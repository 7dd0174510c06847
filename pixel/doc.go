// Package pixel implements the RGB565 color packing used by the panel.
//
// The packed color type is compatible with Go's native [color.Color], and
// the frame encoders produce the big-endian byte stream the controller
// expects after a RAM write command.
package pixel
