package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidator_ValidateEmail(t *testing.T) {
	validator := NewCredentialsValidator()

	tests := []struct {
		name        string
		email       string
		wantErr     bool
		expectedErr string
	}{
		{
			name:  "valid email",
			email: "asha@example.com",
		},
		{
			name:        "empty",
			email:       "  ",
			wantErr:     true,
			expectedErr: "email is required",
		},
		{
			name:        "no at sign",
			email:       "asha.example.com",
			wantErr:     true,
			expectedErr: "not a valid address",
		},
		{
			name:        "display name form",
			email:       "Asha <asha@example.com>",
			wantErr:     true,
			expectedErr: "not a valid address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCredentialsValidator_ValidatePassword(t *testing.T) {
	validator := NewCredentialsValidator()

	assert.NoError(t, validator.ValidatePassword("secret"))
	assert.ErrorContains(t, validator.ValidatePassword("short"), "at least 6 characters")
	assert.ErrorContains(t, validator.ValidatePassword(strings.Repeat("x", 73)), "at most 72 bytes")
}

func TestCredentialsValidator_ValidateSignup(t *testing.T) {
	validator := NewCredentialsValidator()

	assert.NoError(t, validator.ValidateSignup(SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "secret123"}))

	err := validator.ValidateSignup(SignupRequest{Name: strings.Repeat("n", 65), Email: "asha@example.com", Password: "secret123"})
	assert.ErrorContains(t, err, "name must be at most 64 characters")

	err = validator.ValidateSignup(SignupRequest{Name: "Asha", Email: "asha", Password: "secret123"})
	assert.ErrorContains(t, err, "email validation failed")

	err = validator.ValidateSignup(SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "123"})
	assert.ErrorContains(t, err, "password validation failed")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "asha@example.com", NormalizeEmail("  Asha@Example.COM "))
}
