package domain

import "time"

// Credentials are exchanged with the remote authority for a session token.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Account is the authority-side record used to verify credentials.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
