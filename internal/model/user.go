// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash holds the Argon2id verifier in PHC format and is never
// serialized to clients.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
