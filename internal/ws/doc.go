// Package ws carries the bridge over a WebSocket connection to the host.
//
// All frames are JSON text messages:
//
// Message Types (UI → Host):
//   - call: {"type":"call","id":"call_…","op":"get_apps","args":[…]}
//
// Message Types (Host → UI):
//   - reply: {"type":"reply","id":"call_…","result":…,"error":"…"}
//   - push: {"type":"push","status":{…},"entries":[…]}
//
// A Client implements bridge.Transport: requests are written before Go
// returns, replies are matched by id, and pushes are handed to a single
// handler in the order they arrive. When the connection drops every call
// in flight fails with bridge.ErrTransportClosed.
//
// A Connector waits for the host to report healthy, dials it behind a
// circuit breaker and attaches the resulting client to a bridge.Gate.
//
// Example Usage:
//
//	conn := ws.NewConnector(cfg.Bridge, gate, ingestor.Push, logger, metrics)
//	go conn.Run(ctx)
package ws
