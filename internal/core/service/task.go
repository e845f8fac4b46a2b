package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
)

type TaskService struct {
	repo port.TaskRepository
}

func NewTaskService(repo port.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, userID int, req *request.CreateTaskRequest) (domain.Task, error) {
	if req.Title == nil {
		return domain.Task{}, domain.BadRequest("Title is required.")
	}

	// The owner is always the authenticated caller, never the request body.
	task, err := s.repo.Create(ctx, domain.Task{
		Title:       *req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		UserID:      &userID,
	})

	if err != nil {
		slog.Error("Task#Create", "error", err)
		return domain.Task{}, domain.Internal(err)
	}

	return task, nil
}

func (s *TaskService) GetAllTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.repo.GetAll(ctx, filter)

	if err != nil {
		slog.Error("Task#GetAllTasks", "error", err)
		return nil, domain.Internal(err)
	}

	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int) (domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)

	if errors.Is(err, domain.ErrNotFound) {
		return domain.Task{}, domain.NotFound("Task not found.")
	}

	if err != nil {
		return domain.Task{}, domain.Internal(err)
	}

	return task, nil
}

// Replace writes every mutable field from the request, including deleted_at,
// user_id and is_default; fields absent from the body become NULL. It does
// not check that the row exists.
func (s *TaskService) Replace(ctx context.Context, id int, req *request.TaskRequest) error {
	if req.Title == nil {
		return domain.BadRequest("Title is required.")
	}

	task := domain.Task{
		ID:          id,
		Title:       *req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		CompletedAt: req.CompletedAt,
		DeletedAt:   req.DeletedAt,
		UserID:      req.UserID,
		IsDefault:   req.IsDefault,
	}

	if err := s.repo.Update(ctx, task); err != nil {
		slog.Error("Task#Replace", "error", err)
		return domain.Internal(err)
	}

	return nil
}

// Patch merges only the fields present in the body into the stored row.
// For description and priority an empty string clears the column to NULL.
func (s *TaskService) Patch(ctx context.Context, id int, req *request.TaskRequest) error {
	task, err := s.repo.GetByID(ctx, id)

	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("")
	}

	if err != nil {
		return domain.Internal(err)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}

	if req.Description != nil {
		if *req.Description == "" {
			task.Description = nil
		} else {
			task.Description = req.Description
		}
	}

	if req.Priority != nil {
		if *req.Priority == "" {
			task.Priority = nil
		} else {
			task.Priority = req.Priority
		}
	}

	if req.CompletedAt != nil {
		task.CompletedAt = req.CompletedAt
	}

	if req.IsDefault != nil {
		task.IsDefault = req.IsDefault
	}

	if err := s.repo.Update(ctx, task); err != nil {
		slog.Error("Task#Patch", "error", err)
		return domain.Internal(err)
	}

	return nil
}

// Delete marks the row with deleted_at when soft is true; otherwise it
// removes the row physically, with no existence check and no error when the
// row was already gone.
func (s *TaskService) Delete(ctx context.Context, id int, soft bool) error {
	if soft {
		_, err := s.repo.GetByIDAny(ctx, id)

		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("")
		}

		if err != nil {
			return domain.Internal(err)
		}

		if err := s.repo.SoftDelete(ctx, id, time.Now()); err != nil {
			return domain.Internal(err)
		}

		return nil
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		return domain.Internal(err)
	}

	return nil
}
