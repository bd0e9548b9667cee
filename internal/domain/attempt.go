package domain

import "time"

// AttemptState enumerates the lifecycle of a resistance attempt.
type AttemptState string

const (
	AttemptStatePending    AttemptState = "Pending"
	AttemptStateInProgress AttemptState = "In_progress"
	AttemptStateResolved   AttemptState = "Resolved"
	AttemptStateRejected   AttemptState = "Rejected"
)

// Attempt is a resistance attempt filed by a daemon against a victim.
type Attempt struct {
	ID             int64        `json:"id"`
	VictimName     string       `json:"victimName"`
	Description    string       `json:"description"`
	State          AttemptState `json:"state"`
	DaemonUsername string       `json:"daemonUsername"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
