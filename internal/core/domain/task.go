package domain

import "time"

type Task struct {
	ID          int
	Title       string `validate:"required"`
	Description *string
	Priority    *string
	CompletedAt *time.Time
	DeletedAt   *time.Time
	UserID      *int
	IsDefault   *bool
}

func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

func (t *Task) BelongsToUser(userID int) bool {
	return t.UserID != nil && *t.UserID == userID
}

// TaskFilter holds the optional list predicates. A nil field means the
// predicate is absent; a pointer to the empty string means "column IS NULL".
type TaskFilter struct {
	Title    *string
	Priority *string
}
