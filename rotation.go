package st7789

import "fmt"

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// swapsAxes reports whether the rotation exchanges rows and columns, which
// swaps the logical width and height relative to the panel raster.
func (r Rotation) swapsAxes() bool {
	return r == Rotate90 || r == Rotate270
}

// madctl returns the Memory Data Access Control register value for the
// rotation.
func (r Rotation) madctl() byte {
	switch r {
	case Rotate90:
		return st7789ColumnAddressOrder | st7789PageColumnOrder // 0x60
	case Rotate180:
		return st7789ColumnAddressOrder | st7789PageAddressOrder // 0xC0
	case Rotate270:
		return st7789PageAddressOrder | st7789PageColumnOrder // 0xA0
	default:
		return 0x00
	}
}

// RotationFromDegrees converts a rotation angle in degrees to a Rotation.
// Only 0, 90, 180 and 270 are supported.
func RotationFromDegrees(deg int) (Rotation, error) {
	switch deg {
	case 0:
		return NoRotation, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	default:
		return 0, &ValidationError{Reason: fmt.Sprintf("rotation must be 0, 90, 180 or 270, got %d", deg)}
	}
}
