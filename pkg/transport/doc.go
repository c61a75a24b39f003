// Package transport runs handler pipelines over TCP connections.
//
// Frames are length-prefixed (4 bytes, big-endian). Each accepted or
// dialed connection becomes a Channel whose pipeline receives the
// standard lifecycle events (REGISTERED, ACTIVE, READ, READ_COMPLETE,
// INACTIVE, UNREGISTERED) and whose outbound writes are framed onto the
// wire. Install a tap.LogHandler in the pipeline initializer to see
// every event and frame as it happens.
package transport
