package request

import "time"

type SignUpRequest struct {
	Username string `json:"username" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
}

// TaskRequest backs both PUT and PATCH. Pointer fields distinguish "absent"
// from "present but empty", which PATCH needs for its clear-to-null sentinel.
type TaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	CompletedAt *time.Time `json:"completed_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
	UserID      *int       `json:"user_id"`
	IsDefault   *bool      `json:"is_default"`
}
