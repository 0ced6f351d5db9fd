package main

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeLength   = 6
)

// generateInviteCode draws a short shareable code from the uppercase
// alphanumeric alphabet. Codes are not cryptographically secure; the
// unique index on custom_invites.invite_code plus the retry loop in the
// create handler guards against the rare collision.
func generateInviteCode() string {
	var b strings.Builder
	b.Grow(inviteCodeLength)
	for i := 0; i < inviteCodeLength; i++ {
		b.WriteByte(inviteCodeAlphabet[rand.IntN(len(inviteCodeAlphabet))])
	}
	return b.String()
}

// buildInviteURL forms the shareable URL for an invite code:
// <site-origin>/rsvp/<invite_code>. Pure string assembly, no persistence.
func buildInviteURL(origin, code string) string {
	return fmt.Sprintf("%s/rsvp/%s", strings.TrimSuffix(origin, "/"), code)
}
