package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/emobile/todo-service/internal/cache"
	"github.com/emobile/todo-service/internal/config"
	handlers "github.com/emobile/todo-service/internal/http"
	"github.com/emobile/todo-service/internal/logger"
	"github.com/emobile/todo-service/internal/middleware"
	"github.com/emobile/todo-service/internal/repository"
	"github.com/emobile/todo-service/internal/service"
)

func main() {
	logrusLogger := logger.Init("todo", "info")

	cfg, err := config.Load()
	if err != nil {
		logrusLogger.WithError(err).Fatal("failed to load config")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrusLogger.SetLevel(lvl)
	}

	// Инициализация репозитория
	repo, err := repository.NewPostgresTodoRepository(cfg.DB.DSN())
	if err != nil {
		logrusLogger.WithError(err).Fatal("failed to connect to database")
	}
	defer repo.Close()

	// Инициализация кэша
	todoCache := cache.New(cache.Config{
		MaxEntries:      cfg.Cache.MaxEntries,
		TTL:             cfg.Cache.TTL(),
		CleanupInterval: cfg.Cache.CleanupInterval(),
	})
	defer todoCache.Close()

	// Инициализация сервиса и хендлера
	metrics := service.NewMetrics(prometheus.DefaultRegisterer)
	todoService := service.NewTodoService(repo, todoCache, metrics, logrusLogger)
	todoHandler := handlers.NewTodoHandler(todoService, logrusLogger)

	// Настройка роутера
	mux := http.NewServeMux()
	todoHandler.Register(mux)
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	// Цепочка middleware (порядок важен!)
	handler := middleware.RequestIDMiddleware(mux)
	handler = middleware.SecurityHeadersMiddleware(handler)
	handler = middleware.MetricsMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logrusLogger.WithField("port", cfg.Port).Info("todo service starting")
	if err := http.ListenAndServe(addr, handler); err != nil {
		logrusLogger.WithError(err).Fatal("server failed")
	}
}
