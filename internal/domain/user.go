package domain

import "time"

// User represents a registered account. PasswordHash is never exposed
// through the API; services blank it before returning a user.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
