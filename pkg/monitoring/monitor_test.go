package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()
	Init()

	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/skills/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/skills/:id", "200"))
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/skills/7", nil))
	}
	after := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/skills/:id", "200"))
	assert.Equal(t, 3.0, after-before)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "unmatched", "404")))
}
