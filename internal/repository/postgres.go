package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/emobile/todo-service/internal/models"
)

type PostgresTodoRepository struct {
	db *sql.DB
}

func NewPostgresTodoRepository(dsn string) (*PostgresTodoRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresTodoRepository{db: db}, nil
}

func (r *PostgresTodoRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresTodoRepository) Insert(ctx context.Context, todo *models.Todo) error {
	// ID выдаёт база через RETURNING - безопасно при конкурентных вставках
	query := `INSERT INTO todos (title, description, completed, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.CreatedAt, todo.UpdatedAt,
	).Scan(&todo.ID)
}

func (r *PostgresTodoRepository) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	query := `SELECT id, title, description, completed, created_at, updated_at FROM todos WHERE id = $1`
	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.CreatedAt, &todo.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *PostgresTodoRepository) ListPage(ctx context.Context, limit, offset int) ([]*models.Todo, int64, error) {
	query := `SELECT id, title, description, completed, created_at, updated_at
              FROM todos ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		todo := &models.Todo{}
		err := rows.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.CreatedAt, &todo.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// Общее число записей считаем отдельным запросом
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return todos, total, nil
}

func (r *PostgresTodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	query := `UPDATE todos SET title = $1, description = $2, completed = $3, updated_at = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.UpdatedAt, todo.ID)
	return err
}

func (r *PostgresTodoRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	return err
}

func (r *PostgresTodoRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM todos WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
