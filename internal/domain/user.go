package domain

import "time"

// Role is the flat role tag carried in session tokens.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleDaemon     Role = "daemon"
)

// ElevatedRole is the single privileged role tag.
const ElevatedRole = RoleSuperadmin

// User is an operator account as exposed by the users resource.
type User struct {
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
