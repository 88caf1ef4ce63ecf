/*
Package tracing records spans for the development host.

Every bridge call and every HTTP request the host serves becomes a span:
a named, timed operation carrying a trace id, its own span id and the id
of its parent. Completed spans are handed to a buffered collector that
writes them to the structured log, so a UI session can be followed call by
call without a tracing backend.

# Usage

	tracer := tracing.New("devhost", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "get_apps")
	span.SetTag("call_id", callID)
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

# Propagation

HTTP requests may carry X-Trace-ID and X-Span-ID; the middleware continues
that trace and echoes both headers on the response. Submit never blocks:
when the collector falls behind, spans are dropped with a warning.
*/
package tracing
