/*
Package monitoring provides Prometheus metrics for the companion UI and the
development host.

# Overview

Every Metrics value owns its own registry. The UI records bridge calls,
queued calls, pushes, mutations, undo outcomes and dialog outcomes; the
development host records HTTP requests, served operations and WebSocket
traffic.

# Usage

	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router and expose the registry
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Time a bridge call
	timer := monitoring.NewTimer(metrics, "get_apps")
	// ... perform call ...
	timer.Stop("ok")

A nil *Metrics is valid and records nothing.
*/
package monitoring
