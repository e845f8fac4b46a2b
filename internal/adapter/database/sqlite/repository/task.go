package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/tracing"
)

const taskColumns = "id, priority, title, completed_at, description, deleted_at, user_id, is_default"

type TaskRepository struct {
	db *sqlite.DB
}

func NewTaskRepository(db *sqlite.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := r.db.QueryBuilder.Insert("tasks").
		Columns("priority", "title", "completed_at", "description", "deleted_at", "user_id", "is_default").
		Values(task.Priority, task.Title, task.CompletedAt, task.Description, task.DeletedAt, task.UserID, task.IsDefault)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	result, err := r.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.Task{}, err
	}

	return r.GetByIDAny(ctx, int(id))
}

func (r *TaskRepository) GetAll(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.task.GetAll", []attribute.KeyValue{
		attribute.String("db.table", "tasks"),
		attribute.String("db.operation", "SELECT"),
	})

	defer span.End()

	query := r.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where("deleted_at IS NULL").
		OrderBy("id ASC")

	query = applyFilter(query, filter)

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error fetching tasks", "error", err)
		return nil, err
	}

	defer rows.Close()

	tasks := []domain.Task{}

	for rows.Next() {
		task, err := scanTask(rows)

		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(tasks)))

	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int) (domain.Task, error) {
	return r.getByID(ctx, id, true)
}

func (r *TaskRepository) GetByIDAny(ctx context.Context, id int) (domain.Task, error) {
	return r.getByID(ctx, id, false)
}

func (r *TaskRepository) getByID(ctx context.Context, id int, excludeDeleted bool) (domain.Task, error) {
	query := r.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"id": id}).
		Limit(1)

	if excludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.Task{}, err
	}

	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Task{}, err
		}

		return domain.Task{}, domain.ErrNotFound
	}

	return scanTask(rows)
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	query := r.db.QueryBuilder.Update("tasks").
		SetMap(map[string]interface{}{
			"title":        task.Title,
			"description":  task.Description,
			"priority":     task.Priority,
			"completed_at": task.CompletedAt,
			"deleted_at":   task.DeletedAt,
			"user_id":      task.UserID,
			"is_default":   task.IsDefault,
		}).
		Where(sq.Eq{"id": task.ID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Error updating task", "error", err, "id", task.ID)
		return err
	}

	return nil
}

func (r *TaskRepository) SoftDelete(ctx context.Context, id int, at time.Time) error {
	query := r.db.QueryBuilder.Update("tasks").
		Set("deleted_at", at).
		Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, stmt, args...)

	return err
}

func (r *TaskRepository) HardDelete(ctx context.Context, id int) error {
	stmt, args, err := r.db.QueryBuilder.Delete("tasks").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	// No existence check: deleting an absent row is not an error.
	_, err = r.db.ExecContext(ctx, stmt, args...)

	return err
}

// applyFilter ANDs the optional predicates onto the always-present
// deleted_at IS NULL base. An empty string asks for rows where the column
// itself is NULL; a non-empty title matches as a substring, a non-empty
// priority matches exactly.
func applyFilter(query sq.SelectBuilder, filter domain.TaskFilter) sq.SelectBuilder {
	if filter.Title != nil {
		if *filter.Title == "" {
			query = query.Where("title IS NULL")
		} else {
			query = query.Where(sq.Like{"title": "%" + *filter.Title + "%"})
		}
	}

	if filter.Priority != nil {
		if *filter.Priority == "" {
			query = query.Where("priority IS NULL")
		} else {
			query = query.Where(sq.Eq{"priority": *filter.Priority})
		}
	}

	return query
}

func scanTask(rows *sql.Rows) (domain.Task, error) {
	var task domain.Task

	err := rows.Scan(
		&task.ID,
		&task.Priority,
		&task.Title,
		&task.CompletedAt,
		&task.Description,
		&task.DeletedAt,
		&task.UserID,
		&task.IsDefault,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrNotFound
		}

		return domain.Task{}, err
	}

	return task, nil
}
