package models

import (
	"strings"
	"time"
)

// VerifiedSession is locally cached proof that an email address recently
// completed one-time-code verification. Exactly one session is resident
// on a device at a time; a new verification overwrites the prior one.
type VerifiedSession struct {
	// Email is the verified identity. Compared case-insensitively.
	Email string `json:"email"`

	// SessionToken is opaque to the client.
	SessionToken string `json:"sessionToken"`

	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at the given time.
func (s *VerifiedSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Matches reports whether the session belongs to the given email address,
// ignoring case.
func (s *VerifiedSession) Matches(email string) bool {
	return strings.EqualFold(s.Email, email)
}
