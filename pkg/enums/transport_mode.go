package enums

import "fmt"

// TransportMode describes how a horse travelled during a movement.
type TransportMode string

const (
	TransportModeUnknown TransportMode = "unknown"
	TransportModeVan     TransportMode = "van"
	TransportModeTruck   TransportMode = "truck"
	TransportModeOnFoot  TransportMode = "on_foot"
	TransportModeOther   TransportMode = "other"
)

var validTransportModes = []TransportMode{
	TransportModeUnknown,
	TransportModeVan,
	TransportModeTruck,
	TransportModeOnFoot,
	TransportModeOther,
}

// String implements fmt.Stringer.
func (m TransportMode) String() string {
	return string(m)
}

// IsValid reports whether the value matches the canonical transport mode enum.
func (m TransportMode) IsValid() bool {
	for _, candidate := range validTransportModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseTransportMode converts the raw string to TransportMode.
func ParseTransportMode(value string) (TransportMode, error) {
	for _, candidate := range validTransportModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transport mode %q", value)
}
