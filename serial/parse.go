package serial

import (
	"strconv"
	"strings"

	"vigil"
)

// parseLine decodes one board line. The ECG, SpO2 and temperature fields
// are required; blood pressure fields are optional because older board
// firmware does not send them. Garbled fields and unknown keys are
// skipped; the line is rejected only when a required field is missing.
func parseLine(line string) (vigil.VitalSigns, bool) {
	var vs vigil.VitalSigns
	var haveECG, haveSpO2, haveTemp bool

	for _, part := range strings.Split(line, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		switch strings.TrimSpace(key) {
		case "A":
			vs.ECG, haveECG = n, true
		case "B":
			vs.SpO2, haveSpO2 = n, true
		case "C":
			vs.Temp, haveTemp = n, true
		case "D":
			vs.Systolic = n
		case "E":
			vs.Diastolic = n
		}
	}

	if !haveECG || !haveSpO2 || !haveTemp {
		return vigil.VitalSigns{}, false
	}
	return vs, true
}
