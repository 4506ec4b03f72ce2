// Package protocol defines the wire format between the live session and
// the thin browser client.
//
// Every WebSocket message carries exactly one frame: a 4-byte header
// (type, a reserved zero byte, big-endian uint16 payload length) followed
// by a JSON payload.
//
//	Client → Server: Event, Control (pong)
//	Server → Client: Patches, Control (ping), Error
package protocol
