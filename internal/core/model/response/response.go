package response

import (
	"time"

	"taskapp/internal/core/domain"
)

type UserResponse struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Token    *string `json:"token"`
}

type TaskResponse struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DeletedAt   *time.Time `json:"deleted_at"`
	UserID      *int       `json:"user_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    user.Token,
	}
}

func NewTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		DeletedAt:   task.DeletedAt,
		UserID:      task.UserID,
	}
}
