package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "mdscli/internal/errors"
)

func TestValidator_ValidateRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     EnrollmentRequest
		wantErr bool
		field   string
	}{
		{
			name: "valid full request",
			req:  EnrollmentRequest{EndYear: 2024, Level: "District", Format: "tidy"},
		},
		{
			name: "year only",
			req:  EnrollmentRequest{EndYear: 2003},
		},
		{
			name:    "year below range",
			req:     EnrollmentRequest{EndYear: 1999},
			wantErr: true,
			field:   "year",
		},
		{
			name:    "year above range",
			req:     EnrollmentRequest{EndYear: 2030},
			wantErr: true,
			field:   "year",
		},
		{
			name:    "missing year",
			req:     EnrollmentRequest{Level: "State"},
			wantErr: true,
			field:   "year",
		},
		{
			name:    "bad level",
			req:     EnrollmentRequest{EndYear: 2024, Level: "county"},
			wantErr: true,
			field:   "level",
		},
		{
			name:    "bad format",
			req:     EnrollmentRequest{EndYear: 2024, Format: "xml"},
			wantErr: true,
			field:   "format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(&tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var appErr *apierrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apierrors.ErrTypeValidation, appErr.Type)
			assert.Equal(t, tt.field, appErr.Context["field"])
		})
	}
}

func TestParseYear(t *testing.T) {
	year, err := ParseYear("2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)

	_, err = ParseYear("abc")
	assert.Error(t, err)

	_, err = ParseYear("1990")
	assert.Error(t, err)
}

func TestLSSCodeRule(t *testing.T) {
	v := New()

	type probe struct {
		Code string `json:"code" validate:"lss_code"`
	}

	assert.NoError(t, v.validate.Struct(probe{Code: "01"}))
	assert.Error(t, v.validate.Struct(probe{Code: "30"}))
	assert.Error(t, v.validate.Struct(probe{Code: "1"}))
}
