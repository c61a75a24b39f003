package pipeline

import (
	"net"
	"strconv"
	"sync"
)

// EmbeddedChannel is an in-memory channel for exercising handlers in
// tests. Inbound events are injected with the Fire* pipeline methods or
// WriteInbound; outbound operations that reach the head are recorded
// and can be inspected with ReadOutbound and Ops.
type EmbeddedChannel struct {
	label    string
	pipeline *Pipeline

	mu       sync.Mutex
	active   bool
	outbound []any
	ops      []string
}

// NewEmbeddedChannel creates an active embedded channel whose String()
// returns label, with the given handlers added last in order. Handler
// names are h0, h1, ...
func NewEmbeddedChannel(label string, handlers ...any) (*EmbeddedChannel, error) {
	ch := &EmbeddedChannel{label: label, active: true}
	ch.pipeline = New(ch, ch)
	for i, h := range handlers {
		if err := ch.pipeline.AddLast("h"+strconv.Itoa(i), h); err != nil {
			return nil, err
		}
	}
	return ch, nil
}

// Pipeline returns the channel's pipeline.
func (ch *EmbeddedChannel) Pipeline() *Pipeline { return ch.pipeline }

// ID returns the channel label.
func (ch *EmbeddedChannel) ID() string { return ch.label }

// String returns the channel label.
func (ch *EmbeddedChannel) String() string { return ch.label }

// LocalAddr returns nil; embedded channels have no addresses.
func (ch *EmbeddedChannel) LocalAddr() net.Addr { return nil }

// RemoteAddr returns nil; embedded channels have no addresses.
func (ch *EmbeddedChannel) RemoteAddr() net.Addr { return nil }

// Active reports whether the channel has not been closed.
func (ch *EmbeddedChannel) Active() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.active
}

// WriteInbound fires a ChannelRead for each message followed by a single
// ChannelReadComplete, mimicking a read batch from a transport.
func (ch *EmbeddedChannel) WriteInbound(msgs ...any) {
	for _, m := range msgs {
		ch.pipeline.FireChannelRead(m)
	}
	ch.pipeline.FireChannelReadComplete()
}

// WriteOutbound sends a message down the pipeline and flushes.
func (ch *EmbeddedChannel) WriteOutbound(msg any) error {
	if err := ch.pipeline.Write(msg); err != nil {
		return err
	}
	ch.pipeline.Flush()
	return nil
}

// ReadOutbound pops the oldest message that reached the channel, or nil
// if none is pending.
func (ch *EmbeddedChannel) ReadOutbound() any {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if len(ch.outbound) == 0 {
		return nil
	}
	msg := ch.outbound[0]
	ch.outbound = ch.outbound[1:]
	return msg
}

// Ops returns the names of the outbound operations that reached the
// channel, in order.
func (ch *EmbeddedChannel) Ops() []string {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return append([]string(nil), ch.ops...)
}

func (ch *EmbeddedChannel) record(op string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.ops = append(ch.ops, op)
}

// ChannelOps implementation: record what reached the channel.

func (ch *EmbeddedChannel) DoBind(net.Addr) error {
	ch.record("BIND")
	return nil
}

func (ch *EmbeddedChannel) DoConnect(net.Addr, net.Addr) error {
	ch.record("CONNECT")
	return nil
}

func (ch *EmbeddedChannel) DoDisconnect() error {
	ch.record("DISCONNECT")
	return nil
}

func (ch *EmbeddedChannel) DoClose() error {
	ch.mu.Lock()
	ch.active = false
	ch.ops = append(ch.ops, "CLOSE")
	ch.mu.Unlock()
	return nil
}

func (ch *EmbeddedChannel) DoDeregister() error {
	ch.record("DEREGISTER")
	return nil
}

func (ch *EmbeddedChannel) DoWrite(msg any) error {
	ch.mu.Lock()
	ch.outbound = append(ch.outbound, msg)
	ch.ops = append(ch.ops, "WRITE")
	ch.mu.Unlock()
	return nil
}

func (ch *EmbeddedChannel) DoFlush() {
	ch.record("FLUSH")
}

// Compile-time interface satisfaction checks.
var (
	_ Channel    = (*EmbeddedChannel)(nil)
	_ ChannelOps = (*EmbeddedChannel)(nil)
)
