package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/emobile/todo-service/internal/dto"
	"github.com/emobile/todo-service/internal/middleware"
	"github.com/emobile/todo-service/internal/service"
)

const (
	defaultPage    = 1
	defaultPerPage = 10

	maxDescriptionLength = 1000
)

type TodoHandler struct {
	todoService *service.TodoService
	logger      *logrus.Logger
}

func NewTodoHandler(ts *service.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: ts,
		logger:      logger,
	}
}

// Register вешает маршруты API на переданный mux
func (h *TodoHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /todo", h.CreateTodo)
	mux.HandleFunc("GET /todo", h.ListTodos)
	mux.HandleFunc("GET /todo/{id}", h.GetTodo)
	mux.HandleFunc("PUT /todo/{id}", h.UpdateTodo)
	mux.HandleFunc("DELETE /todo/{id}", h.DeleteTodo)
	mux.HandleFunc("PATCH /todo/{id}", h.CompleteTodo)
}

func (h *TodoHandler) logEntry(r *http.Request, handler string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"component":  "http_handler",
		"handler":    handler,
		"request_id": middleware.GetRequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// validateRequest проверяет тело на границе API, до вызова сервиса.
// Возвращает карту поле -> сообщение; пустая карта значит, что тело валидно.
func validateRequest(req dto.TodoRequest) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "title is required"
	}
	if len(req.Description) > maxDescriptionLength {
		errs["description"] = "description must be at most 1000 characters"
	}
	return errs
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// CreateTodo обрабатывает POST /todo
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "CreateTodo")

	var req dto.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logEntry.WithError(err).Warn("invalid request body")
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	if errs := validateRequest(req); len(errs) > 0 {
		logEntry.WithField("errors", errs).Warn("validation failed")
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	todo, err := h.todoService.Create(r.Context(), req)
	if err != nil {
		logEntry.WithError(err).Error("failed to create todo")
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	logEntry.WithField("todo_id", todo.ID).Info("todo created successfully")
	writeJSON(w, http.StatusCreated, todo)
}

// ListTodos обрабатывает GET /todo с параметрами page и perPage.
// Отсутствующие или некорректные значения заменяются умолчаниями 1/10.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "ListTodos")

	page := queryInt(r, "page", defaultPage)
	perPage := queryInt(r, "perPage", defaultPerPage)

	result, err := h.todoService.GetAll(r.Context(), page, perPage)
	if err != nil {
		logEntry.WithError(err).Error("failed to list todos")
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	logEntry.WithFields(logrus.Fields{
		"page":  page,
		"count": len(result.Content),
		"total": result.NumberOfElements,
	}).Debug("todos listed")
	writeJSON(w, http.StatusOK, result)
}

// GetTodo обрабатывает GET /todo/{id}
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "GetTodo")

	id, err := parseID(r)
	if err != nil {
		http.Error(w, `{"error":"invalid id"}`, http.StatusBadRequest)
		return
	}

	todo, err := h.todoService.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, logEntry, id, err, "failed to get todo")
		return
	}

	logEntry.WithField("todo_id", id).Debug("todo retrieved")
	writeJSON(w, http.StatusOK, todo)
}

// UpdateTodo обрабатывает PUT /todo/{id}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "UpdateTodo")

	id, err := parseID(r)
	if err != nil {
		http.Error(w, `{"error":"invalid id"}`, http.StatusBadRequest)
		return
	}

	var req dto.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logEntry.WithError(err).Warn("invalid request body")
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	if errs := validateRequest(req); len(errs) > 0 {
		logEntry.WithField("errors", errs).Warn("validation failed")
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	todo, err := h.todoService.Update(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, logEntry, id, err, "failed to update todo")
		return
	}

	logEntry.WithField("todo_id", id).Info("todo updated successfully")
	writeJSON(w, http.StatusOK, todo)
}

// DeleteTodo обрабатывает DELETE /todo/{id}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "DeleteTodo")

	id, err := parseID(r)
	if err != nil {
		http.Error(w, `{"error":"invalid id"}`, http.StatusBadRequest)
		return
	}

	if err := h.todoService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, logEntry, id, err, "failed to delete todo")
		return
	}

	logEntry.WithField("todo_id", id).Info("todo deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// CompleteTodo обрабатывает PATCH /todo/{id}
func (h *TodoHandler) CompleteTodo(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "CompleteTodo")

	id, err := parseID(r)
	if err != nil {
		http.Error(w, `{"error":"invalid id"}`, http.StatusBadRequest)
		return
	}

	todo, err := h.todoService.MarkAsCompleted(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, logEntry, id, err, "failed to complete todo")
		return
	}

	logEntry.WithField("todo_id", id).Info("todo marked as completed")
	writeJSON(w, http.StatusOK, todo)
}

// writeServiceError переводит ошибку сервиса в статус ответа:
// NotFoundError -> 404, всё остальное -> 500 без деталей
func (h *TodoHandler) writeServiceError(w http.ResponseWriter, logEntry *logrus.Entry, id int64, err error, msg string) {
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		logEntry.WithField("todo_id", id).Warn("todo not found")
		writeJSON(w, http.StatusNotFound, map[string]string{"error": notFound.Error()})
		return
	}
	logEntry.WithError(err).Error(msg)
	http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
}

func queryInt(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return defaultValue
	}
	return v
}
