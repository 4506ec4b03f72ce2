package clientdist

import _ "embed"

// TourJS is the thin client served at "/_tour/client.js". It opens the live
// WebSocket, forwards bound events and applies patches.
//
//go:embed tour.js
var TourJS []byte
