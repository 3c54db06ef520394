package enums

import "fmt"

// ProfessionKind is the closed list of trades in the professional directory.
type ProfessionKind string

const (
	ProfessionKindCoach           ProfessionKind = "coach"
	ProfessionKindVeterinarian    ProfessionKind = "veterinarian"
	ProfessionKindFarrier         ProfessionKind = "farrier"
	ProfessionKindOsteopath       ProfessionKind = "osteopath"
	ProfessionKindDentist         ProfessionKind = "dentist"
	ProfessionKindSaddleFitter    ProfessionKind = "saddle_fitter"
	ProfessionKindPhysiotherapist ProfessionKind = "physiotherapist"
	ProfessionKindShiatsu         ProfessionKind = "shiatsu"
	ProfessionKindOther           ProfessionKind = "other"
)

var validProfessionKinds = []ProfessionKind{
	ProfessionKindCoach,
	ProfessionKindVeterinarian,
	ProfessionKindFarrier,
	ProfessionKindOsteopath,
	ProfessionKindDentist,
	ProfessionKindSaddleFitter,
	ProfessionKindPhysiotherapist,
	ProfessionKindShiatsu,
	ProfessionKindOther,
}

// String implements fmt.Stringer.
func (p ProfessionKind) String() string {
	return string(p)
}

// IsValid reports whether the value matches the canonical profession kind enum.
func (p ProfessionKind) IsValid() bool {
	for _, candidate := range validProfessionKinds {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProfessionKind converts the raw string to ProfessionKind.
func ParseProfessionKind(value string) (ProfessionKind, error) {
	for _, candidate := range validProfessionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid profession kind %q", value)
}
