// Package patient persists the monitor's patient record as a JSON file
// in the data directory.
package patient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vigil"
)

const fileName = "patient_info.json"

// Store reads and writes the single patient record.
type Store struct {
	path string
}

// NewStore creates a Store rooted at dataDir, creating the directory if
// needed.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("patient: create data dir: %w", err)
	}
	return &Store{path: filepath.Join(dataDir, fileName)}, nil
}

// Load returns the stored record, or the default placeholder when no
// record has been saved yet.
func (s *Store) Load() (vigil.PatientInfo, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return vigil.DefaultPatient(), nil
	}
	if err != nil {
		return vigil.PatientInfo{}, fmt.Errorf("patient: read record: %w", err)
	}

	var info vigil.PatientInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return vigil.PatientInfo{}, fmt.Errorf("patient: parse record: %w", err)
	}
	return info, nil
}

// Save writes the record, assigning an ID on first save and stamping
// UpdatedAt.
func (s *Store) Save(info vigil.PatientInfo) (vigil.PatientInfo, error) {
	now := time.Now().UTC()
	if info.ID == "" {
		info.ID = uuid.NewString()
		info.CreatedAt = now
	}
	info.UpdatedAt = now

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return vigil.PatientInfo{}, fmt.Errorf("patient: encode record: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return vigil.PatientInfo{}, fmt.Errorf("patient: write record: %w", err)
	}
	return info, nil
}

// Delete removes the stored record. Deleting a record that does not
// exist is not an error.
func (s *Store) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("patient: delete record: %w", err)
	}
	return nil
}
