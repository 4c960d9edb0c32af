package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFields struct {
	SSN        string `validate:"required,ssn"`
	FirstName  string `validate:"required,alpha"`
	DoctorName string `validate:"required,alpha_space"`
	IDNumber   string `validate:"omitempty,id_number"`
}

func TestValidate_ValidInput(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&bookingFields{
		SSN:        "12345678901",
		FirstName:  "Anna",
		DoctorName: "Nikos Papadopoulos",
		IDNumber:   "AB123456",
	})
	assert.NoError(t, err)
}

func TestValidate_SSNRules(t *testing.T) {
	cv := NewValidator()

	for _, ssn := range []string{"1234567890", "123456789012", "1234567890a", "abcdefghijk"} {
		err := cv.Validate(&bookingFields{SSN: ssn, FirstName: "Anna", DoctorName: "Nikos"})
		assert.Error(t, err, "ssn %q should be rejected", ssn)
	}
}

func TestValidate_NameRules(t *testing.T) {
	cv := NewValidator()

	// letters-only first name
	err := cv.Validate(&bookingFields{SSN: "12345678901", FirstName: "Anna2", DoctorName: "Nikos"})
	assert.Error(t, err)

	// doctor name allows spaces but not digits
	err = cv.Validate(&bookingFields{SSN: "12345678901", FirstName: "Anna", DoctorName: "Dr4 Nikos"})
	assert.Error(t, err)
}

func TestValidate_IDNumberRule(t *testing.T) {
	cv := NewValidator()

	for _, id := range []string{"A1234567", "AB12345", "AB1234567", "12AB3456"} {
		err := cv.Validate(&bookingFields{SSN: "12345678901", FirstName: "Anna", DoctorName: "Nikos", IDNumber: id})
		assert.Error(t, err, "id number %q should be rejected", id)
	}
}

func TestFormatValidationErrors_ReturnsFullList(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&bookingFields{})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Len(t, formatted, 3)
	assert.Contains(t, formatted, "SSN")
	assert.Contains(t, formatted, "FirstName")
	assert.Contains(t, formatted, "DoctorName")
}
