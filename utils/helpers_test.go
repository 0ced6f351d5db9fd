package utils

import (
	"testing"
	"time"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Ana@Example.COM ", "ana@example.com"},
		{"luis@example.com", "luis@example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "ana.garcia@example.com", "x+tag@sub.domain.org"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}
	invalid := []string{"", "not-an-email", "@example.com", "a@", "a b@c.com"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}

func TestParseExpiryDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-11-21", false},
		{"2026-11-21T18:30", false},
		{"2026-11-21 18:30:00.000Z", false},
		{"21/11/2026", true},
		{"", true},
	}
	for _, tt := range tests {
		got, err := ParseExpiryDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseExpiryDate(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseExpiryDate(%q) error = %v", tt.in, err)
			continue
		}
		if got.Year() != 2026 || got.Month() != time.November || got.Day() != 21 {
			t.Errorf("ParseExpiryDate(%q) = %v", tt.in, got)
		}
	}
}
