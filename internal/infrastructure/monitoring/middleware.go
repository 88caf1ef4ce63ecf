package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Timer measures a bridge call
type Timer struct {
	start   time.Time
	metrics *Metrics
	op      string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, op string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		op:      op,
	}
}

// Stop records the duration under outcome
func (t *Timer) Stop(outcome string) time.Duration {
	d := time.Since(t.start)
	t.metrics.RecordBridgeCall(t.op, outcome, d)
	return d
}
