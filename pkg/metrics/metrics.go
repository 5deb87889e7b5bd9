package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Intake pipeline counters. Outcome labels: completed, failed, validation_rejected.
// Evaluation status labels: completed, unavailable, failed.
var (
	intakeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intake_applications_total",
		Help: "Number of application intakes partitioned by outcome.",
	}, []string{"outcome"})

	evaluationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intake_evaluations_total",
		Help: "Number of resume match evaluations partitioned by terminal status.",
	}, []string{"status"})
)

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func MustRegisterIntakeCollectors() {
	prometheus.MustRegister(intakeTotal, evaluationTotal)
}

func IncIntake(outcome string) {
	intakeTotal.WithLabelValues(outcome).Inc()
}

func IncEvaluation(status string) {
	evaluationTotal.WithLabelValues(status).Inc()
}
