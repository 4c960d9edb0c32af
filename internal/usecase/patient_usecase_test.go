package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatientRow(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		wantOK bool
	}{
		{"valid row", []string{"Anna", "Papadopoulou", "12345678901"}, true},
		{"short ssn", []string{"Anna", "Papadopoulou", "123"}, false},
		{"ssn with letters", []string{"Anna", "Papadopoulou", "1234567890a"}, false},
		{"missing first name", []string{"", "Papadopoulou", "12345678901"}, false},
		{"missing last name", []string{"Anna", "", "12345678901"}, false},
		{"truncated record", []string{"Anna", "Papadopoulou"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patient, ok := parsePatientRow(tt.record, 0, 1, 2)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, patient)
				assert.Equal(t, tt.record[0], patient.FirstName)
				assert.Equal(t, tt.record[1], patient.LastName)
				assert.Equal(t, tt.record[2], patient.SocialSecurityNumber)
			}
		})
	}
}

func TestParsePatientRow_ShuffledColumns(t *testing.T) {
	// Column positions come from the CSV header, not a fixed layout.
	record := []string{"12345678901", "Anna", "Papadopoulou"}

	patient, ok := parsePatientRow(record, 1, 2, 0)
	require.True(t, ok)
	assert.Equal(t, "Anna", patient.FirstName)
	assert.Equal(t, "Papadopoulou", patient.LastName)
	assert.Equal(t, "12345678901", patient.SocialSecurityNumber)
}
