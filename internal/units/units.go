// Package units provides shared constants and derivation rules for the
// physical units carried by PIV vector files.
package units

import "strings"

// Unit constants as they appear in .vec headers.
const (
	Millimeter      = "mm"
	Meter           = "m"
	Pixel           = "pixel"
	MetersPerSecond = "m/s"
	PixelsPerFrame  = "pixel/dt"
	Second          = "s"
	// FrameInterval is the symbolic time unit used when displacement is
	// measured in pixels and no physical time base exists.
	FrameInterval = "dt"
)

// Defaults applied when a header carries no usable unit information.
const (
	DefaultLength   = Millimeter
	DefaultVelocity = MetersPerSecond
	DefaultTime     = Second
)

// Triple bundles the three unit strings a vector field carries.
type Triple struct {
	Length   string
	Velocity string
	Time     string
}

// DefaultTriple returns the fallback unit set {mm, m/s, s}.
func DefaultTriple() Triple {
	return Triple{Length: DefaultLength, Velocity: DefaultVelocity, Time: DefaultTime}
}

// DeriveTime derives the time unit from a velocity unit. Pixel velocities
// have no physical time base and map to the symbolic FrameInterval unit;
// otherwise the time unit is the denominator of the velocity unit.
// Returns "" when the velocity unit has no denominator.
func DeriveTime(velocity string) string {
	if velocity == Pixel {
		return FrameInterval
	}
	parts := strings.SplitN(velocity, "/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// ConvertVelocity converts a velocity value in meters per second to the
// target unit. Unknown targets return the value unchanged.
func ConvertVelocity(v float64, target string) float64 {
	switch target {
	case "mm/s":
		return v * 1000
	case "cm/s":
		return v * 100
	case MetersPerSecond:
		return v
	default:
		return v
	}
}

// ConvertLength converts a length value in millimeters to the target unit.
// Unknown targets return the value unchanged.
func ConvertLength(v float64, target string) float64 {
	switch target {
	case Meter:
		return v / 1000
	case Millimeter:
		return v
	default:
		return v
	}
}
