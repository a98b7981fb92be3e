package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - доменные метрики сервиса.
// Регистратор передаётся снаружи, чтобы тесты могли читать значения.
type Metrics struct {
	completed prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		completed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "todo_completed_total",
			Help: "Total number of todos marked as completed",
		}),
	}
}

func (m *Metrics) IncCompleted() {
	m.completed.Inc()
}
