package repository

import (
	"context"

	"github.com/emobile/todo-service/internal/models"
)

type TodoRepository interface {
	// Insert сохраняет запись и присваивает ей новый ID
	Insert(ctx context.Context, todo *models.Todo) error
	// FindByID возвращает (nil, nil), если записи нет - отсутствие не ошибка
	FindByID(ctx context.Context, id int64) (*models.Todo, error)
	// ListPage возвращает страницу записей (created_at по убыванию)
	// и общее число записей во всей таблице
	ListPage(ctx context.Context, limit, offset int) ([]*models.Todo, int64, error)
	Update(ctx context.Context, todo *models.Todo) error
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
