package booking

import (
	"math"
	"strings"
)

// DurationUnit tags the unit a raw duration value was received in.
type DurationUnit string

const (
	UnitMinutes      DurationUnit = "min"
	UnitMilliseconds DurationUnit = "ms"
)

// Values above this are treated as milliseconds when no unit was recorded.
const legacyMillisecondsThreshold = 10000

const DefaultDurationMinutes = 30

// NormalizeMinutes converts value, expressed in unit, to whole minutes.
func NormalizeMinutes(value int64, unit DurationUnit) int {
	if value <= 0 {
		return 0
	}
	switch unit {
	case UnitMilliseconds:
		return int(math.Round(float64(value) / 60000))
	default:
		return int(value)
	}
}

// ParseDurationUnit accepts the unit spellings found in stored records.
func ParseDurationUnit(s string) (DurationUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min", "mins", "minute", "minutes":
		return UnitMinutes, true
	case "ms", "millis", "milliseconds":
		return UnitMilliseconds, true
	}
	return "", false
}

// InferDurationUnit is only for records persisted without a unit tag.
func InferDurationUnit(value int64) DurationUnit {
	if value > legacyMillisecondsThreshold {
		return UnitMilliseconds
	}
	return UnitMinutes
}
