package vitals

import "sort"

// tempFilter calibrates and smooths the temperature channel. Raw
// readings are scaled, implausibly low readings clamp to room
// temperature, and once a full window accumulates a trimmed mean
// replaces the instantaneous value.
type tempFilter struct {
	readings []float64
}

func newTempFilter() *tempFilter {
	return &tempFilter{readings: make([]float64, 0, tempWindow)}
}

// observe feeds one raw reading (tenths of a degree) and returns the
// filtered temperature in degrees Celsius.
func (f *tempFilter) observe(raw int) float64 {
	value := float64(raw) / 10.0 * tempScale

	// A reading far below room temperature means the probe is off the
	// patient; hold at room temperature rather than report it.
	if value < roomTemperature-10.0 {
		value = roomTemperature
	}

	f.readings = append(f.readings, value)
	if len(f.readings) > tempWindow {
		f.readings = f.readings[1:]
	}

	if len(f.readings) < tempWindow {
		return value
	}

	sorted := make([]float64, len(f.readings))
	copy(sorted, f.readings)
	sort.Float64s(sorted)
	trimmed := sorted[tempTrim : len(sorted)-tempTrim]

	var sum float64
	for _, t := range trimmed {
		sum += t
	}
	avg := sum / float64(len(trimmed))

	f.readings = f.readings[:0]

	if avg > maxTemperature {
		return maxTemperature
	}
	return avg
}

// validSpO2 rejects readings the sensor reports while it has no finger
// contact.
func validSpO2(raw int) int {
	if raw < 1 {
		return 0
	}
	return raw
}
