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
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SessionsLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "focus_sessions_logged_total",
		Help: "Focus sessions recorded",
	})

	MinutesLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "focus_minutes_logged_total",
		Help: "Practice minutes recorded across all sessions",
	})

	BadgesAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badges_awarded_total",
			Help: "Badges awarded by name",
		},
		[]string{"badge"},
	)

	SkillsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skills_completed_total",
		Help: "Skills that reached the practice target",
	})

	FreezesApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_freezes_applied_total",
			Help: "Streak freezes consumed, by source",
		},
		[]string{"source"},
	)

	DashboardCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_requests_total",
			Help: "Dashboard cache lookups by result",
		},
		[]string{"result"},
	)
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			SessionsLogged,
			MinutesLogged,
			BadgesAwarded,
			SkillsCompleted,
			FreezesApplied,
			DashboardCache,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
