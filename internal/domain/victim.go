package domain

import "time"

// Victim is a tracked target, identified by its unique name.
type Victim struct {
	Name        string    `json:"name"`
	DangerLevel int       `json:"dangerLevel"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
