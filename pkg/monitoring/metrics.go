package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "Duration of AI completion requests",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"operation", "status"},
	)

	QuizAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_attempts_total",
			Help: "Total number of graded quiz attempts",
		},
	)

	QuizScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_attempt_score",
			Help:    "Distribution of quiz attempt scores",
			Buckets: []float64{0, 20, 40, 60, 80, 100},
		},
	)

	QuizGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_generations_total",
			Help: "Quiz generation requests by outcome",
		},
		[]string{"outcome"},
	)

	ProgressUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_updates_total",
			Help: "Progress records written",
		},
		[]string{"completed"},
	)
)

var registerOnce sync.Once

// Init 注册全部指标，重复调用安全
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AIRequestDuration,
			QuizAttemptsTotal,
			QuizScore,
			QuizGenerations,
			ProgressUpdates,
		)
	})
}

func ObserveAIRequest(operation string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	AIRequestDuration.WithLabelValues(operation, status).Observe(elapsed.Seconds())
}

func ObserveQuizAttempt(score int) {
	QuizAttemptsTotal.Inc()
	QuizScore.Observe(float64(score))
}

// outcome: cached | created | raced
func ObserveQuizGeneration(outcome string) {
	QuizGenerations.WithLabelValues(outcome).Inc()
}

func ObserveProgressUpdate(completed bool) {
	ProgressUpdates.WithLabelValues(strconv.FormatBool(completed)).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
