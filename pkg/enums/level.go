package enums

import "fmt"

// Level is the academic-year tag attached to every document.
type Level string

const (
	LevelL1 Level = "L1"
	LevelL2 Level = "L2"
	LevelL3 Level = "L3"
	LevelM1 Level = "M1"
	LevelM2 Level = "M2"
)

var validLevels = []Level{
	LevelL1,
	LevelL2,
	LevelL3,
	LevelM1,
	LevelM2,
}

// Levels returns the full closed enumeration.
func Levels() []Level {
	return append([]Level(nil), validLevels...)
}

// String returns the literal string for the level.
func (l Level) String() string {
	return string(l)
}

// IsValid reports whether the level is known.
func (l Level) IsValid() bool {
	for _, candidate := range validLevels {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLevel converts raw input into a Level.
func ParseLevel(value string) (Level, error) {
	for _, candidate := range validLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid level %q", value)
}
