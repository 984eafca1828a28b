package monitor

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Metrics holds the Prometheus collectors for backend traffic and local
// tool activity.
type Metrics struct {
	Registry *prometheus.Registry

	APIRequests     *prometheus.CounterVec
	APIDuration     *prometheus.HistogramVec
	Executions      *prometheus.CounterVec
	FlashcardAnswer *prometheus.CounterVec
	LLMRequests     *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		APIRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prepdeck",
				Name:      "api_requests_total",
				Help:      "Backend API requests by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		),

		APIDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "prepdeck",
				Name:      "api_request_duration_seconds",
				Help:      "Latency of backend API requests.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "route"},
		),

		Executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prepdeck",
				Name:      "executions_total",
				Help:      "Run and submit actions by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),

		FlashcardAnswer: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prepdeck",
				Name:      "flashcard_answers_total",
				Help:      "Flashcard answers by correctness.",
			},
			[]string{"correct"},
		),

		LLMRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prepdeck",
				Name:      "llm_requests_total",
				Help:      "LLM generation requests by purpose and success.",
			},
			[]string{"purpose", "success"},
		),
	}

	reg.MustRegister(
		m.APIRequests,
		m.APIDuration,
		m.Executions,
		m.FlashcardAnswer,
		m.LLMRequests,
		collectors.NewGoCollector(),
	)

	return m
}

// ObserveAPI records one backend request. Safe on a nil receiver.
func (m *Metrics) ObserveAPI(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.APIDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveExecution records a finished run or submit. Safe on a nil receiver.
func (m *Metrics) ObserveExecution(kind, outcome string) {
	if m == nil {
		return
	}
	m.Executions.WithLabelValues(kind, outcome).Inc()
}

// ObserveFlashcard records a flashcard answer. Safe on a nil receiver.
func (m *Metrics) ObserveFlashcard(correct bool) {
	if m == nil {
		return
	}
	label := "false"
	if correct {
		label = "true"
	}
	m.FlashcardAnswer.WithLabelValues(label).Inc()
}

// ObserveLLM records an LLM request. Safe on a nil receiver.
func (m *Metrics) ObserveLLM(purpose string, success bool) {
	if m == nil {
		return
	}
	label := "false"
	if success {
		label = "true"
	}
	m.LLMRequests.WithLabelValues(purpose, label).Inc()
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}

// Serve exposes the registry on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return m.ServeListener(ctx, ln)
}

// ServeListener exposes the registry on ln until ctx is done or the server
// fails. It returns only after the shutdown goroutine has exited.
func (m *Metrics) ServeListener(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopped := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", ln.Addr().String()).Msg("metrics endpoint listening")
	err := srv.Serve(ln)
	close(stopped)
	<-done
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
