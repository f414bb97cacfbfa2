package patient_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigil"
	"vigil/patient"
)

func TestStore(t *testing.T) {
	t.Parallel()

	t.Run("load without a saved record returns the placeholder", func(t *testing.T) {
		t.Parallel()
		s, err := patient.NewStore(t.TempDir())
		require.NoError(t, err)

		info, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, "unset", info.Name)
		assert.Empty(t, info.ID)
	})

	t.Run("save assigns an id and round-trips", func(t *testing.T) {
		t.Parallel()
		s, err := patient.NewStore(t.TempDir())
		require.NoError(t, err)

		saved, err := s.Save(vigil.PatientInfo{
			Name:      "Jane Roe",
			Gender:    "female",
			Age:       54,
			BloodType: "O+",
			Allergies: []string{"penicillin"},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.False(t, saved.CreatedAt.IsZero())
		assert.False(t, saved.UpdatedAt.IsZero())

		loaded, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, saved.ID, loaded.ID)
		assert.Equal(t, "Jane Roe", loaded.Name)
		assert.Equal(t, []string{"penicillin"}, loaded.Allergies)
	})

	t.Run("resave keeps the id and bumps updated_at", func(t *testing.T) {
		t.Parallel()
		s, err := patient.NewStore(t.TempDir())
		require.NoError(t, err)

		first, err := s.Save(vigil.PatientInfo{Name: "Jane Roe"})
		require.NoError(t, err)

		first.Age = 55
		second, err := s.Save(first)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()
		s, err := patient.NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, s.Delete())

		_, err = s.Save(vigil.PatientInfo{Name: "Jane Roe"})
		require.NoError(t, err)
		require.NoError(t, s.Delete())

		info, err := s.Load()
		require.NoError(t, err)
		assert.Empty(t, info.ID)
	})

	t.Run("creates nested data dir", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "nested", "data")
		_, err := patient.NewStore(dir)
		require.NoError(t, err)
		assert.DirExists(t, dir)
	})
}
