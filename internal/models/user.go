package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"` // never exposed in JSON output
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the currently authenticated user. Token is a signed JWT whose
// subject is the user id.
type Session struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}
