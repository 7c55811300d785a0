package middleware

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"simple address", "john@example.com", nil},
		{"with subdomain", "j.doe@mail.example.co.uk", nil},
		{"missing at", "johnexample.com", ErrEmailMalformed},
		{"missing domain dot", "john@example", ErrEmailMalformed},
		{"embedded space", "john doe@example.com", ErrEmailMalformed},
		{"empty", "", ErrEmailMalformed},
		{"over length limit", strings.Repeat("a", MaxEmailLength) + "@example.com", ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateEmail(%q) = %v, want %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLength(t *testing.T) {
	if err := ValidateLength(strings.Repeat("x", MaxTitleLength), MaxTitleLength); err != nil {
		t.Fatalf("at-limit value rejected: %v", err)
	}
	if err := ValidateLength(strings.Repeat("x", MaxTitleLength+1), MaxTitleLength); !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("over-limit value accepted, got %v", err)
	}
}
