package port

import (
	"context"
	"time"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	GetAll(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	// GetByID excludes soft-deleted rows; GetByIDAny includes them.
	GetByID(ctx context.Context, id int) (domain.Task, error)
	GetByIDAny(ctx context.Context, id int) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
	SoftDelete(ctx context.Context, id int, at time.Time) error
	HardDelete(ctx context.Context, id int) error
}

type TaskService interface {
	Create(ctx context.Context, userID int, req *request.CreateTaskRequest) (domain.Task, error)
	GetAllTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, id int) (domain.Task, error)
	Replace(ctx context.Context, id int, req *request.TaskRequest) error
	Patch(ctx context.Context, id int, req *request.TaskRequest) error
	Delete(ctx context.Context, id int, soft bool) error
}
