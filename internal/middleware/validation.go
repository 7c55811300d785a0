// Package middleware provides HTTP middleware for the TownBoard API.
package middleware

import (
	"errors"
	"regexp"
)

// Validation limits. These are transport-level caps applied before a
// payload reaches the services; the services own the semantic rules.
const (
	// MaxTitleLength is the maximum length for an event title.
	MaxTitleLength = 200

	// MaxDescriptionLength is the maximum length for an event description.
	MaxDescriptionLength = 5000

	// MaxLocationLength is the maximum length for an event location.
	MaxLocationLength = 200

	// MaxOrganizerLength is the maximum length for an organizer name.
	MaxOrganizerLength = 200

	// MaxCommentLength is the maximum length for a comment body.
	MaxCommentLength = 2000

	// MaxNameLength is the maximum length for a user display name.
	MaxNameLength = 100

	// MaxEmailLength follows the SMTP path limit.
	MaxEmailLength = 254

	// MaxPasswordLength bounds the Argon2 input size.
	MaxPasswordLength = 512
)

// Validation errors.
var (
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrEmailMalformed = errors.New("email address is malformed")
)

// emailPattern is a pragmatic email shape check, not a full RFC 5322 parse.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the basic shape of an email address.
func ValidateEmail(email string) error {
	if len(email) > MaxEmailLength {
		return ErrFieldTooLong
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailMalformed
	}
	return nil
}

// ValidateLength checks a single field against its cap.
func ValidateLength(value string, max int) error {
	if len(value) > max {
		return ErrFieldTooLong
	}
	return nil
}
