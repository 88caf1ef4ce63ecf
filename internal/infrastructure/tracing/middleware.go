package tracing

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Trace propagation headers.
const (
	HeaderTraceID = "X-Trace-ID"
	HeaderSpanID  = "X-Span-ID"
)

// HTTPMiddleware opens a span per request, continuing the caller's trace
// when the request carries one.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithTrace(c.Request.Context(),
			TraceID(c.GetHeader(HeaderTraceID)),
			SpanID(c.GetHeader(HeaderSpanID)),
		)

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderTraceID, string(span.TraceID))
		c.Header(HeaderSpanID, string(span.SpanID))

		c.Next()

		status := c.Writer.Status()
		span.SetTag("http.status", strconv.Itoa(status))
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		} else if status >= 500 {
			span.SetError(fmt.Errorf("status %d", status))
		}
		span.Finish()
		tracer.Submit(span)
	}
}
