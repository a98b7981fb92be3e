package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emobile/todo-service/internal/cache"
	"github.com/emobile/todo-service/internal/dto"
	"github.com/emobile/todo-service/internal/mapper"
	"github.com/emobile/todo-service/internal/repository"
)

// NotFoundError - единственная доменная ошибка сервиса:
// операция адресует несуществующий ID
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

type TodoService struct {
	repo    repository.TodoRepository
	cache   *cache.TodoCache
	metrics *Metrics
	logger  *logrus.Logger
}

func NewTodoService(repo repository.TodoRepository, c *cache.TodoCache, m *Metrics, logger *logrus.Logger) *TodoService {
	return &TodoService{
		repo:    repo,
		cache:   c,
		metrics: m,
		logger:  logger,
	}
}

func (s *TodoService) Create(ctx context.Context, req dto.TodoRequest) (dto.TodoResponse, error) {
	todo := mapper.RequestToModel(req)

	// Обе метки ставим одним значением: при создании createdAt == updatedAt
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	if err := s.repo.Insert(ctx, todo); err != nil {
		return dto.TodoResponse{}, err
	}

	s.logger.WithField("todo_id", todo.ID).Info("todo created")
	return mapper.ModelToResponse(todo), nil
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dto.TodoResponse, error) {
	if cached, ok := s.cache.Get(id); ok {
		s.logger.WithField("todo_id", id).Debug("cache hit")
		return mapper.ModelToResponse(&cached), nil
	}

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.TodoResponse{}, err
	}
	if todo == nil {
		return dto.TodoResponse{}, &NotFoundError{ID: id}
	}

	s.cache.Put(id, *todo)
	return mapper.ModelToResponse(todo), nil
}

func (s *TodoService) GetAll(ctx context.Context, page, perPage int) (dto.PageResponse, error) {
	offset := (page - 1) * perPage
	todos, total, err := s.repo.ListPage(ctx, perPage, offset)
	if err != nil {
		return dto.PageResponse{}, err
	}
	return dto.PageResponse{
		Content:          mapper.ModelsToResponses(todos),
		NumberOfElements: total,
	}, nil
}

// Update меняет только title и description; флаг completed
// управляется отдельной операцией MarkAsCompleted
func (s *TodoService) Update(ctx context.Context, id int64, req dto.TodoRequest) (dto.TodoResponse, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.TodoResponse{}, err
	}
	if todo == nil {
		return dto.TodoResponse{}, &NotFoundError{ID: id}
	}

	todo.Title = req.Title
	todo.Description = req.Description
	todo.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, todo); err != nil {
		return dto.TodoResponse{}, err
	}

	s.cache.Put(id, *todo)
	s.logger.WithField("todo_id", id).Info("todo updated")
	return mapper.ModelToResponse(todo), nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{ID: id}
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(id)
	s.logger.WithField("todo_id", id).Info("todo deleted")
	return nil
}

// MarkAsCompleted выставляет completed = true без проверки текущего
// значения: повторный вызов по той же задаче снова обновит updatedAt
// и снова увеличит счётчик завершений
func (s *TodoService) MarkAsCompleted(ctx context.Context, id int64) (dto.TodoResponse, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.TodoResponse{}, err
	}
	if todo == nil {
		return dto.TodoResponse{}, &NotFoundError{ID: id}
	}

	todo.Completed = true
	todo.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, todo); err != nil {
		return dto.TodoResponse{}, err
	}

	s.cache.Put(id, *todo)
	s.metrics.IncCompleted()
	s.logger.WithField("todo_id", id).Info("todo completed")
	return mapper.ModelToResponse(todo), nil
}
