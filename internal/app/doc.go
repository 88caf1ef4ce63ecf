// Package app wires the synchronization components into one UI session.
//
// State holds the UI-local navigation and display settings behind a
// mutex. Controller owns the gesture handlers: it routes page loads,
// forwards host pushes to the event ingestor, and runs the settings,
// monitoring and shell actions that do not belong to a list.
//
// Example Usage:
//
//	ctrl := app.New(proxy, tuiView, store, app.Options{Logger: log})
//	connector := ws.NewConnector(cfg.Bridge, gate, ctrl.HandlePush, log, metrics)
//	go connector.Run(ctx)
//	ctrl.Start(ctx)
package app
