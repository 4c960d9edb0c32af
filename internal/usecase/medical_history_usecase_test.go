package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHistoryRow(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		wantOK bool
	}{
		{"valid row", []string{"12345678901", "Hypertension", "Lisinopril 10mg"}, true},
		{"bad ssn", []string{"123", "Hypertension", "Lisinopril 10mg"}, false},
		{"missing problems", []string{"12345678901", "", "Lisinopril 10mg"}, false},
		{"missing treatment", []string{"12345678901", "Hypertension", ""}, false},
		{"truncated record", []string{"12345678901", "Hypertension"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := parseHistoryRow(tt.record, 0, 1, 2)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, row)
				assert.Equal(t, tt.record[0], row.SocialSecurityNumber)
				assert.Equal(t, tt.record[1], row.DetectedHealthProblems)
				assert.Equal(t, tt.record[2], row.Treatment)
			}
		})
	}
}

func TestParseHistoryRow_ShuffledColumns(t *testing.T) {
	record := []string{"Hypertension", "Lisinopril 10mg", "12345678901"}

	row, ok := parseHistoryRow(record, 2, 0, 1)
	require.True(t, ok)
	assert.Equal(t, "12345678901", row.SocialSecurityNumber)
	assert.Equal(t, "Hypertension", row.DetectedHealthProblems)
	assert.Equal(t, "Lisinopril 10mg", row.Treatment)
}
