package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emobile/todo-service/internal/models"
	"github.com/emobile/todo-service/internal/repository"
)

func insertAt(t *testing.T, repo *repository.MemoryTodoRepository, title string, createdAt time.Time) *models.Todo {
	t.Helper()
	todo := &models.Todo{
		Title:     title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repo.Insert(context.Background(), todo))
	return todo
}

func TestMemoryRepositoryInsertAssignsIDs(t *testing.T) {
	repo := repository.NewMemoryTodoRepository()
	now := time.Now()

	first := insertAt(t, repo, "first", now)
	second := insertAt(t, repo, "second", now)

	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
}

func TestMemoryRepositoryFindByID(t *testing.T) {
	repo := repository.NewMemoryTodoRepository()
	ctx := context.Background()
	created := insertAt(t, repo, "task", time.Now())

	t.Run("existing", func(t *testing.T) {
		got, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, created.Title, got.Title)
	})

	t.Run("absent row is nil, not an error", func(t *testing.T) {
		got, err := repo.FindByID(ctx, 999)
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestMemoryRepositoryListPage(t *testing.T) {
	repo := repository.NewMemoryTodoRepository()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		insertAt(t, repo, "task", base.Add(time.Duration(i)*time.Second))
	}

	t.Run("ordered by created_at desc", func(t *testing.T) {
		todos, total, err := repo.ListPage(ctx, 3, 0)
		require.NoError(t, err)
		require.Equal(t, int64(5), total)
		require.Len(t, todos, 3)
		for i := 1; i < len(todos); i++ {
			require.False(t, todos[i].CreatedAt.After(todos[i-1].CreatedAt))
		}
	})

	t.Run("offset past the end", func(t *testing.T) {
		todos, total, err := repo.ListPage(ctx, 3, 10)
		require.NoError(t, err)
		require.Equal(t, int64(5), total)
		require.Empty(t, todos)
	})

	t.Run("last partial page", func(t *testing.T) {
		todos, _, err := repo.ListPage(ctx, 3, 3)
		require.NoError(t, err)
		require.Len(t, todos, 2)
	})
}

func TestMemoryRepositoryDeleteAndExists(t *testing.T) {
	repo := repository.NewMemoryTodoRepository()
	ctx := context.Background()
	created := insertAt(t, repo, "task", time.Now())

	exists, err := repo.ExistsByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, repo.DeleteByID(ctx, created.ID))

	exists, err = repo.ExistsByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, exists)
}
