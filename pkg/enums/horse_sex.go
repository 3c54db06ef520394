package enums

import "fmt"

// HorseSex describes the allowed values for the `sex` column in horses.
type HorseSex string

const (
	HorseSexMare     HorseSex = "mare"
	HorseSexGelding  HorseSex = "gelding"
	HorseSexStallion HorseSex = "stallion"
	HorseSexUnknown  HorseSex = "unknown"
)

var validHorseSexes = []HorseSex{
	HorseSexMare,
	HorseSexGelding,
	HorseSexStallion,
	HorseSexUnknown,
}

// String implements fmt.Stringer.
func (h HorseSex) String() string {
	return string(h)
}

// IsValid reports whether the value matches the canonical horse sex enum.
func (h HorseSex) IsValid() bool {
	for _, candidate := range validHorseSexes {
		if candidate == h {
			return true
		}
	}
	return false
}

// ParseHorseSex converts the raw string to HorseSex.
func ParseHorseSex(value string) (HorseSex, error) {
	for _, candidate := range validHorseSexes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid horse sex %q", value)
}
