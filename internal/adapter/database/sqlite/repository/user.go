package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

const userColumns = "id, username, password_hash, token"

type UserRepository struct {
	db *sqlite.DB
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := r.db.QueryBuilder.Insert("users").
		Columns("username", "password_hash", "token").
		Values(user.Username, user.PasswordHash, user.Token)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := r.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.User{}, err
	}

	return r.GetByID(ctx, int(id))
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, sq.Eq{"username": username})
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	stmt, args, err := r.db.QueryBuilder.Select(userColumns).
		From("users").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error fetching users", "error", err)
		return nil, err
	}

	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		var user domain.User

		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Token); err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) UpdateToken(ctx context.Context, id int, token *string) error {
	query := r.db.QueryBuilder.Update("users").
		Set("token", token).
		Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Error updating user token", "error", err, "id", id)
		return err
	}

	return nil
}

func (r *UserRepository) getOne(ctx context.Context, pred sq.Eq) (domain.User, error) {
	stmt, args, err := r.db.QueryBuilder.Select(userColumns).
		From("users").
		Where(pred).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = r.db.QueryRowContext(ctx, stmt, args...).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Token)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
