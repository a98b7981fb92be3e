package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/emobile/todo-service/internal/models"
)

// MemoryTodoRepository - хранилище в памяти, используется в тестах
type MemoryTodoRepository struct {
	mu    sync.Mutex
	seq   int64
	todos map[int64]models.Todo
}

func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{
		todos: make(map[int64]models.Todo),
	}
}

func (r *MemoryTodoRepository) Insert(ctx context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	todo.ID = r.seq
	r.todos[todo.ID] = *todo
	return nil
}

func (r *MemoryTodoRepository) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, nil
	}
	return &todo, nil
}

func (r *MemoryTodoRepository) ListPage(ctx context.Context, limit, offset int) ([]*models.Todo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]models.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	page := make([]*models.Todo, 0, end-offset)
	for i := offset; i < end; i++ {
		t := all[i]
		page = append(page, &t)
	}
	return page, total, nil
}

func (r *MemoryTodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos[todo.ID] = *todo
	return nil
}

func (r *MemoryTodoRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.todos, id)
	return nil
}

func (r *MemoryTodoRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.todos[id]
	return ok, nil
}
