package main

import (
	"strings"
	"testing"
)

func TestGenerateInviteCodeFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateInviteCode()
		if len(code) != inviteCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), inviteCodeLength)
		}
		for _, c := range code {
			if !strings.ContainsRune(inviteCodeAlphabet, c) {
				t.Fatalf("code %q contains %q, outside the allowed alphabet", code, c)
			}
		}
	}
}

func TestGenerateInviteCodeEntropy(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[generateInviteCode()] = true
	}
	// 36^6 possible codes; 1000 draws should collide almost never.
	if len(seen) < 995 {
		t.Errorf("got %d distinct codes out of 1000", len(seen))
	}
}

func TestBuildInviteURL(t *testing.T) {
	tests := []struct {
		origin string
		code   string
		want   string
	}{
		{"https://example.com", "AB12CD", "https://example.com/rsvp/AB12CD"},
		{"https://example.com/", "AB12CD", "https://example.com/rsvp/AB12CD"},
		{"http://localhost:8090", "ZZZZZZ", "http://localhost:8090/rsvp/ZZZZZZ"},
	}
	for _, tt := range tests {
		if got := buildInviteURL(tt.origin, tt.code); got != tt.want {
			t.Errorf("buildInviteURL(%q, %q) = %q, want %q", tt.origin, tt.code, got, tt.want)
		}
	}
}
