// Package server provides the server-side runtime for the tour widgets.
//
// The server package manages WebSocket connections, widget state, event
// handling and patch generation. It ties together the reactive core
// (pkg/vango), the virtual DOM (pkg/vdom) and the wire protocol
// (pkg/protocol).
//
// # Session Lifecycle
//
// Each WebSocket connection creates a Session that manages:
//   - the mounted root widget and its reactive Owner
//   - hydration IDs and the handler registry (HID_on<event> -> handler)
//   - element refs and the live values the client reports
//
// The session runs three goroutines:
//   - ReadLoop: receives frames, decodes events, queues them
//   - EventLoop: runs handlers one at a time, generates patches
//   - WriteLoop: sends heartbeat pings
//
// # Event Processing
//
// When a client sends an event:
//  1. ReadLoop decodes the event frame
//  2. The event is queued for the EventLoop
//  3. Live input values carried by the event are recorded
//  4. The handler is found by HID and run inside a batch
//  5. Pending effects are run
//  6. The root is re-rendered if any of its sources changed
//  7. Diff generates patches, which are encoded and sent
//
// A panicking handler is recovered and logged. The session keeps running.
//
// # Example
//
//	srv := server.New(server.DefaultServerConfig())
//	srv.Register("counter", components.AppOne)
//	srv.Register("form", components.App)
//	if err := srv.SetDefaultRoot("form"); err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
