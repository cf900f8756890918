package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "Sup3rSecret!pass", false},
		{"too short", "Ab1!short", true},
		{"too long", strings.Repeat("Ab1!", 40), true},
		{"missing uppercase", "sup3rsecret!pass", true},
		{"missing lowercase", "SUP3RSECRET!PASS", true},
		{"missing digit", "SuperSecret!pass", true},
		{"missing special", "Sup3rSecretpass1", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Ada Lovelace", false},
		{"single char", "A", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 61), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "ada@example.com", false},
		{"empty", "", true},
		{"missing at", "ada.example.com", true},
		{"missing domain", "ada@", true},
		{"whitespace", "ada lovelace@example.com", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
