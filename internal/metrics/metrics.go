// Package metrics exposes Prometheus counters and histograms for the
// knowledge base and its HTTP surface.
//
// Every method is safe on a nil *Metrics, which is what callers hold when
// metrics are disabled.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stackqa"

// Sizer reports collection sizes for the gauges.
type Sizer interface {
	QuestionCount() int
	AnswerCount() int
	TagCount() int
}

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	registry *prometheus.Registry

	questionsCreated prometheus.Counter
	answersCreated   prometheus.Counter
	views            prometheus.Counter
	queries          *prometheus.CounterVec
	searchDuration   prometheus.Histogram
	rateLimited      *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		questionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_created_total",
			Help:      "Questions added since start",
		}),
		answersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_created_total",
			Help:      "Answers added since start",
		}),
		views: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_views_total",
			Help:      "Question page views",
		}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_queries_total",
			Help:      "Home page queries by order and whether a search string was given",
		}, []string{"order", "filtered"}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Full-text search latency",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
		}),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}, []string{"route"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// RegisterSizes adds gauges that read collection sizes at scrape time.
func (m *Metrics) RegisterSizes(s Sizer) {
	if m == nil {
		return
	}
	factory := promauto.With(m.registry)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace, Name: "questions", Help: "Questions stored",
	}, func() float64 { return float64(s.QuestionCount()) })
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace, Name: "answers", Help: "Answers stored",
	}, func() float64 { return float64(s.AnswerCount()) })
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace, Name: "tags", Help: "Tags stored",
	}, func() float64 { return float64(s.TagCount()) })
}

// QuestionCreated counts a new question.
func (m *Metrics) QuestionCreated() {
	if m != nil {
		m.questionsCreated.Inc()
	}
}

// AnswerCreated counts a new answer.
func (m *Metrics) AnswerCreated() {
	if m != nil {
		m.answersCreated.Inc()
	}
}

// QuestionViewed counts a question view.
func (m *Metrics) QuestionViewed() {
	if m != nil {
		m.views.Inc()
	}
}

// QueryServed counts a home page query.
func (m *Metrics) QueryServed(order string, filtered bool) {
	if m != nil {
		m.queries.WithLabelValues(order, strconv.FormatBool(filtered)).Inc()
	}
}

// ObserveSearch records the latency of a full-text search.
func (m *Metrics) ObserveSearch(d time.Duration) {
	if m != nil {
		m.searchDuration.Observe(d.Seconds())
	}
}

// RateLimited counts a request rejected by the limiter.
func (m *Metrics) RateLimited(route string) {
	if m != nil {
		m.rateLimited.WithLabelValues(route).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
