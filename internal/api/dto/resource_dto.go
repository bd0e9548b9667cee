package dto

import "github.com/spec-kit/resistance-admin/internal/domain"

// CreateVictimRequest payload.
type CreateVictimRequest struct {
	Name        string `json:"name" validate:"required"`
	DangerLevel int    `json:"dangerLevel" validate:"min=1,max=10"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateVictimRequest is a partial victim update.
type UpdateVictimRequest struct {
	DangerLevel *int    `json:"dangerLevel,omitempty" validate:"omitempty,min=1,max=10"`
	Notes       *string `json:"notes,omitempty"`
}

// CreateAttemptRequest payload. The owning daemon comes from the session.
type CreateAttemptRequest struct {
	VictimName  string `json:"victimName" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateAttemptRequest is a partial attempt update.
type UpdateAttemptRequest struct {
	Description *string              `json:"description,omitempty"`
	State       *domain.AttemptState `json:"state,omitempty" validate:"omitempty,oneof=Pending In_progress Resolved Rejected"`
}

// CreateReportRequest payload.
type CreateReportRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateReportRequest is a partial report update.
type UpdateReportRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateRewardRequest payload.
type CreateRewardRequest struct {
	DaemonUsername string            `json:"daemonUsername" validate:"required"`
	Type           domain.RewardType `json:"type" validate:"oneof=reward punishment"`
	Description    string            `json:"description" validate:"required"`
}

// UpdateRewardRequest is a partial reward update.
type UpdateRewardRequest struct {
	Type        *domain.RewardType `json:"type,omitempty" validate:"omitempty,oneof=reward punishment"`
	Description *string            `json:"description,omitempty"`
}

// CreateContentRequest payload.
type CreateContentRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// UpdateContentRequest is a partial content update.
type UpdateContentRequest struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

// CreateUserRequest payload (superadmin only).
type CreateUserRequest struct {
	Username string      `json:"username" validate:"required"`
	Email    string      `json:"email,omitempty" validate:"omitempty,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     domain.Role `json:"role" validate:"oneof=superadmin daemon"`
}

// UpdateUserRequest is a partial user update.
type UpdateUserRequest struct {
	Email *string      `json:"email,omitempty" validate:"omitempty,email"`
	Role  *domain.Role `json:"role,omitempty" validate:"omitempty,oneof=superadmin daemon"`
}
