package pipeline

import "net"

// Channel identifies the endpoint a pipeline belongs to.
// Implementations must keep String() stable for the channel's lifetime;
// it is the label prefixed to every logged event.
type Channel interface {
	// ID returns the unique channel identifier.
	ID() string

	// String returns the stable textual label of the channel,
	// e.g. "[id: 0x4cf1a3b2]".
	String() string

	// LocalAddr returns the local address, or nil before binding.
	LocalAddr() net.Addr

	// RemoteAddr returns the remote address, or nil before connecting.
	RemoteAddr() net.Addr

	// Active reports whether the channel is open and usable.
	Active() bool
}

// ChannelOps is the outbound terminus of a pipeline: once an outbound
// operation has passed every handler, the head delegates the actual I/O
// here. A nil ChannelOps makes every operation a successful no-op.
type ChannelOps interface {
	DoBind(local net.Addr) error
	DoConnect(remote, local net.Addr) error
	DoDisconnect() error
	DoClose() error
	DoDeregister() error
	DoWrite(msg any) error
	DoFlush()
}
