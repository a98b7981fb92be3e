package mapper

import (
	"github.com/emobile/todo-service/internal/dto"
	"github.com/emobile/todo-service/internal/models"
)

// TimeLayout - формат временных меток в ответах API
const TimeLayout = "2006-01-02 15:04:05"

// RequestToModel переводит тело запроса в запись задачи.
// ID и временные метки назначаются дальше по цепочке, здесь они не трогаются.
func RequestToModel(req dto.TodoRequest) *models.Todo {
	return &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
}

func ModelToResponse(todo *models.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt.Format(TimeLayout),
		UpdatedAt:   todo.UpdatedAt.Format(TimeLayout),
	}
}

func ModelsToResponses(todos []*models.Todo) []dto.TodoResponse {
	result := make([]dto.TodoResponse, len(todos))
	for i, t := range todos {
		result[i] = ModelToResponse(t)
	}
	return result
}
