// Package bridge is the UI's only path to the host.
//
// A Gate holds remote calls issued before the host connection exists and
// releases them, exactly once and in issuance order, when a Transport
// attaches. Nothing ever times out waiting for readiness; the caller's
// context is the only way to stop waiting.
//
// A Proxy turns the untyped call surface into one typed method per remote
// operation and classifies failures:
//   - *RemoteError: the call itself failed (transport, host exception)
//   - *DomainError: the call completed with {ok:false, error}
//
// Example Usage:
//
//	gate := bridge.NewGate(logger, metrics)
//	proxy := bridge.NewProxy(gate, logger, metrics)
//	go connector.Run(ctx) // eventually calls gate.Attach(client)
//	apps, err := proxy.GetApps(ctx) // queued until attach
package bridge
