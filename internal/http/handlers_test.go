package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/emobile/todo-service/internal/cache"
	"github.com/emobile/todo-service/internal/dto"
	handlers "github.com/emobile/todo-service/internal/http"
	"github.com/emobile/todo-service/internal/repository"
	"github.com/emobile/todo-service/internal/service"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	c := cache.New(cache.Config{})
	t.Cleanup(c.Close)

	metrics := service.NewMetrics(prometheus.NewRegistry())
	svc := service.NewTodoService(repository.NewMemoryTodoRepository(), c, metrics, logger)

	mux := http.NewServeMux()
	handlers.NewTodoHandler(svc, logger).Register(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeTodo(t *testing.T, rec *httptest.ResponseRecorder) dto.TodoResponse {
	t.Helper()
	var resp dto.TodoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func createTodo(t *testing.T, mux *http.ServeMux, body string) dto.TodoResponse {
	t.Helper()
	rec := doRequest(t, mux, http.MethodPost, "/todo", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeTodo(t, rec)
}

func TestCreateTodoEndpoint(t *testing.T) {
	mux := newTestMux(t)

	t.Run("created", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/todo",
			`{"title":"Task1","description":"x","completed":false}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		resp := decodeTodo(t, rec)
		require.Equal(t, "Task1", resp.Title)
		require.Equal(t, "x", resp.Description)
		require.False(t, resp.Completed)
		require.NotZero(t, resp.ID)
		require.Equal(t, resp.CreatedAt, resp.UpdatedAt)
	})

	t.Run("empty title fails on the title field", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/todo", `{"title":""}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Contains(t, resp.Errors, "title")
	})

	t.Run("oversized description", func(t *testing.T) {
		body := fmt.Sprintf(`{"title":"ok","description":%q}`, strings.Repeat("a", 1001))
		rec := doRequest(t, mux, http.MethodPost, "/todo", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Contains(t, resp.Errors, "description")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/todo", `{not json`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetTodoEndpoint(t *testing.T) {
	mux := newTestMux(t)
	created := createTodo(t, mux, `{"title":"Task1","description":"x"}`)

	t.Run("found", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, fmt.Sprintf("/todo/%d", created.ID), "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, created, decodeTodo(t, rec))
	})

	t.Run("unknown id 999", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/todo/999", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "task 999 not found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/todo/abc", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListTodosEndpoint(t *testing.T) {
	mux := newTestMux(t)

	t.Run("empty store encodes content as empty array", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/todo", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"content":[]`)
	})

	for i := 0; i < 12; i++ {
		createTodo(t, mux, fmt.Sprintf(`{"title":"task %d"}`, i))
	}

	t.Run("defaults to page 1 of 10", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/todo", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.PageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Content, 10)
		require.Equal(t, int64(12), resp.NumberOfElements)
	})

	t.Run("explicit page and perPage", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/todo?page=3&perPage=5", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.PageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Content, 2)
		require.Equal(t, int64(12), resp.NumberOfElements)
	})

	t.Run("garbage paging params fall back to defaults", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/todo?page=zero&perPage=-3", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.PageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Content, 10)
	})
}

func TestUpdateTodoEndpoint(t *testing.T) {
	mux := newTestMux(t)
	created := createTodo(t, mux, `{"title":"Task1","description":"x"}`)

	t.Run("updates title and description only", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPut, fmt.Sprintf("/todo/%d", created.ID),
			`{"title":"edited","description":"y","completed":true}`)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeTodo(t, rec)
		require.Equal(t, "edited", resp.Title)
		require.Equal(t, "y", resp.Description)
		require.False(t, resp.Completed)
	})

	t.Run("validation applies on update too", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPut, fmt.Sprintf("/todo/%d", created.ID), `{"title":"  "}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPut, "/todo/999", `{"title":"whatever"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteTodoEndpoint(t *testing.T) {
	mux := newTestMux(t)
	created := createTodo(t, mux, `{"title":"Task1"}`)
	path := fmt.Sprintf("/todo/%d", created.ID)

	rec := doRequest(t, mux, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("record is gone afterwards", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("second delete is 404", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodDelete, path, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCompleteTodoEndpoint(t *testing.T) {
	mux := newTestMux(t)

	t.Run("create then patch", func(t *testing.T) {
		created := createTodo(t, mux, `{"title":"Task1","description":"x","completed":false}`)
		require.False(t, created.Completed)

		rec := doRequest(t, mux, http.MethodPatch, fmt.Sprintf("/todo/%d", created.ID), "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeTodo(t, rec)
		require.True(t, resp.Completed)
		require.Equal(t, "Task1", resp.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPatch, "/todo/999", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
