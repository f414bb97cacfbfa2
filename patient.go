package vigil

import "time"

// PatientInfo is the single patient record attached to the monitor.
type PatientInfo struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Gender           string    `json:"gender"`
	Age              int       `json:"age"`
	Height           float64   `json:"height"`
	Weight           float64   `json:"weight"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergency_contact"`
	BloodType        string    `json:"blood_type"`
	Allergies        []string  `json:"allergies"`
	MedicalHistory   []string  `json:"medical_history"`
	LastCheckup      string    `json:"last_checkup"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultPatient returns the placeholder record shown before any
// patient details have been saved.
func DefaultPatient() PatientInfo {
	now := time.Now().UTC()
	return PatientInfo{
		Name:      "unset",
		Gender:    "unknown",
		BloodType: "unknown",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
