package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	appointmentWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic_scheduler",
			Name:      "appointment_writes_total",
			Help:      "Count of appointment writes by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	appointmentConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clinic_scheduler",
			Name:      "appointment_conflicts_total",
			Help:      "Count of bookings rejected because the professional was busy.",
		},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic_scheduler",
			Name:      "appointment_status_transitions_total",
			Help:      "Count of appointment status changes by target status.",
		},
		[]string{"status"},
	)
)

// Register registra as métricas (idempotente).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(appointmentWrites, appointmentConflicts, statusTransitions)
	})
}

// IncWrite conta o resultado de cada escrita (create, update, delete, status).
func IncWrite(operation, outcome string) {
	appointmentWrites.WithLabelValues(operation, outcome).Inc()
}

func IncConflict() {
	appointmentConflicts.Inc()
}

func IncStatusTransition(status string) {
	statusTransitions.WithLabelValues(status).Inc()
}
