package pipeline

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/tapline-io/tapline-go/pkg/logging"
)

// Pipeline errors.
var (
	ErrNotAHandler     = errors.New("handler implements neither InboundHandler nor OutboundHandler")
	ErrDuplicateName   = errors.New("duplicate handler name")
	ErrHandlerNotFound = errors.New("handler not found")
)

// Pipeline is a doubly-linked list of handlers between a head and a
// tail sentinel. Events are dispatched synchronously on the calling
// goroutine. Handler list mutations are safe for concurrent use.
type Pipeline struct {
	channel Channel
	ops     ChannelOps

	mu   sync.RWMutex
	head *handlerContext
	tail *handlerContext
}

// New creates an empty pipeline for the given channel. Outbound
// operations that pass every handler are delegated to ops; a nil ops
// turns them into successful no-ops.
func New(ch Channel, ops ChannelOps) *Pipeline {
	p := &Pipeline{channel: ch, ops: ops}
	p.head = &handlerContext{name: "head", pipeline: p, outbound: headOutbound{p}}
	p.tail = &handlerContext{name: "tail", pipeline: p, inbound: tailInbound{}}
	p.head.next = p.tail
	p.tail.prev = p.head
	return p
}

// Channel returns the channel this pipeline belongs to.
func (p *Pipeline) Channel() Channel { return p.channel }

// AddLast appends a handler just before the tail.
func (p *Pipeline) AddLast(name string, handler any) error {
	return p.insert(name, handler, false)
}

// AddFirst prepends a handler just after the head.
func (p *Pipeline) AddFirst(name string, handler any) error {
	return p.insert(name, handler, true)
}

func (p *Pipeline) insert(name string, handler any, first bool) error {
	in, iok := handler.(InboundHandler)
	out, ook := handler.(OutboundHandler)
	if !iok && !ook {
		return fmt.Errorf("%w: %T", ErrNotAHandler, handler)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for c := p.head; c != nil; c = c.next {
		if c.name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}

	prev := p.tail.prev
	if first {
		prev = p.head
	}
	next := prev.next

	c := &handlerContext{name: name, pipeline: p, prev: prev, next: next}
	if iok {
		c.inbound = in
	}
	if ook {
		c.outbound = out
	}
	prev.next = c
	next.prev = c
	return nil
}

// Remove unlinks the named handler.
func (p *Pipeline) Remove(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for c := p.head.next; c != p.tail; c = c.next {
		if c.name == name {
			c.prev.next = c.next
			c.next.prev = c.prev
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrHandlerNotFound, name)
}

// Names returns the handler names in pipeline order, head to tail,
// excluding the sentinels.
func (p *Pipeline) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var names []string
	for c := p.head.next; c != p.tail; c = c.next {
		names = append(names, c.name)
	}
	return names
}

// Inbound entry points: deliver an event to the first inbound handler.

func (p *Pipeline) FireChannelRegistered()         { p.head.FireChannelRegistered() }
func (p *Pipeline) FireChannelUnregistered()       { p.head.FireChannelUnregistered() }
func (p *Pipeline) FireChannelActive()             { p.head.FireChannelActive() }
func (p *Pipeline) FireChannelInactive()           { p.head.FireChannelInactive() }
func (p *Pipeline) FireChannelRead(msg any)        { p.head.FireChannelRead(msg) }
func (p *Pipeline) FireChannelReadComplete()       { p.head.FireChannelReadComplete() }
func (p *Pipeline) FireUserEvent(evt any)          { p.head.FireUserEvent(evt) }
func (p *Pipeline) FireChannelWritabilityChanged() { p.head.FireChannelWritabilityChanged() }
func (p *Pipeline) FireExceptionCaught(err error)  { p.head.FireExceptionCaught(err) }

// Outbound entry points: deliver an operation to the last outbound
// handler, flowing toward the channel.

func (p *Pipeline) Bind(local net.Addr) error            { return p.tail.Bind(local) }
func (p *Pipeline) Connect(remote, local net.Addr) error { return p.tail.Connect(remote, local) }
func (p *Pipeline) Disconnect() error                    { return p.tail.Disconnect() }
func (p *Pipeline) Close() error                         { return p.tail.Close() }
func (p *Pipeline) Deregister() error                    { return p.tail.Deregister() }
func (p *Pipeline) Write(msg any) error                  { return p.tail.Write(msg) }
func (p *Pipeline) Flush()                               { p.tail.Flush() }

// handlerContext links a handler into the pipeline and implements the
// Context the handler sees.
type handlerContext struct {
	name     string
	pipeline *Pipeline
	prev     *handlerContext
	next     *handlerContext
	inbound  InboundHandler
	outbound OutboundHandler
}

func (c *handlerContext) Channel() Channel { return c.pipeline.channel }
func (c *handlerContext) Name() string     { return c.name }

// nextInbound returns the next context toward the tail with an inbound
// handler. The tail sentinel guarantees a match.
func (c *handlerContext) nextInbound() *handlerContext {
	c.pipeline.mu.RLock()
	defer c.pipeline.mu.RUnlock()

	for n := c.next; n != nil; n = n.next {
		if n.inbound != nil {
			return n
		}
	}
	return nil
}

// prevOutbound returns the next context toward the head with an
// outbound handler. The head sentinel guarantees a match.
func (c *handlerContext) prevOutbound() *handlerContext {
	c.pipeline.mu.RLock()
	defer c.pipeline.mu.RUnlock()

	for n := c.prev; n != nil; n = n.prev {
		if n.outbound != nil {
			return n
		}
	}
	return nil
}

func (c *handlerContext) FireChannelRegistered() {
	if n := c.nextInbound(); n != nil {
		n.inbound.ChannelRegistered(n)
	}
}

func (c *handlerContext) FireChannelUnregistered() {
	if n := c.nextInbound(); n != nil {
		n.inbound.ChannelUnregistered(n)
	}
}

func (c *handlerContext) FireChannelActive() {
	if n := c.nextInbound(); n != nil {
		n.inbound.ChannelActive(n)
	}
}

func (c *handlerContext) FireChannelInactive() {
	if n := c.nextInbound(); n != nil {
		n.inbound.ChannelInactive(n)
	}
}

func (c *handlerContext) FireChannelRead(msg any) {
	if n := c.nextInbound(); n != nil {
		n.inbound.ChannelRead(n, msg)
	}
}

func (c *handlerContext) FireChannelReadComplete() {
	if n := c.nextInbound(); n != nil {
		n.inbound.ChannelReadComplete(n)
	}
}

func (c *handlerContext) FireUserEvent(evt any) {
	if n := c.nextInbound(); n != nil {
		n.inbound.UserEvent(n, evt)
	}
}

func (c *handlerContext) FireChannelWritabilityChanged() {
	if n := c.nextInbound(); n != nil {
		n.inbound.ChannelWritabilityChanged(n)
	}
}

func (c *handlerContext) FireExceptionCaught(err error) {
	if n := c.nextInbound(); n != nil {
		n.inbound.ExceptionCaught(n, err)
	}
}

func (c *handlerContext) Bind(local net.Addr) error {
	if n := c.prevOutbound(); n != nil {
		return n.outbound.Bind(n, local)
	}
	return nil
}

func (c *handlerContext) Connect(remote, local net.Addr) error {
	if n := c.prevOutbound(); n != nil {
		return n.outbound.Connect(n, remote, local)
	}
	return nil
}

func (c *handlerContext) Disconnect() error {
	if n := c.prevOutbound(); n != nil {
		return n.outbound.Disconnect(n)
	}
	return nil
}

func (c *handlerContext) Close() error {
	if n := c.prevOutbound(); n != nil {
		return n.outbound.Close(n)
	}
	return nil
}

func (c *handlerContext) Deregister() error {
	if n := c.prevOutbound(); n != nil {
		return n.outbound.Deregister(n)
	}
	return nil
}

func (c *handlerContext) Write(msg any) error {
	if n := c.prevOutbound(); n != nil {
		return n.outbound.Write(n, msg)
	}
	return nil
}

func (c *handlerContext) Flush() {
	if n := c.prevOutbound(); n != nil {
		n.outbound.Flush(n)
	}
}

// headOutbound is the head sentinel's handler: it hands fully-propagated
// outbound operations to the channel's I/O implementation.
type headOutbound struct {
	p *Pipeline
}

func (h headOutbound) Bind(_ Context, local net.Addr) error {
	if h.p.ops == nil {
		return nil
	}
	return h.p.ops.DoBind(local)
}

func (h headOutbound) Connect(_ Context, remote, local net.Addr) error {
	if h.p.ops == nil {
		return nil
	}
	return h.p.ops.DoConnect(remote, local)
}

func (h headOutbound) Disconnect(_ Context) error {
	if h.p.ops == nil {
		return nil
	}
	return h.p.ops.DoDisconnect()
}

func (h headOutbound) Close(_ Context) error {
	if h.p.ops == nil {
		return nil
	}
	return h.p.ops.DoClose()
}

func (h headOutbound) Deregister(_ Context) error {
	if h.p.ops == nil {
		return nil
	}
	return h.p.ops.DoDeregister()
}

func (h headOutbound) Write(_ Context, msg any) error {
	if h.p.ops == nil {
		return nil
	}
	return h.p.ops.DoWrite(msg)
}

func (h headOutbound) Flush(_ Context) {
	if h.p.ops != nil {
		h.p.ops.DoFlush()
	}
}

// tailInbound is the tail sentinel's handler: inbound events that reach
// it were not consumed by any handler. Unhandled exceptions are warned
// about; everything else is discarded quietly.
type tailInbound struct{}

func (tailInbound) ChannelRegistered(Context)         {}
func (tailInbound) ChannelUnregistered(Context)       {}
func (tailInbound) ChannelActive(Context)             {}
func (tailInbound) ChannelInactive(Context)           {}
func (tailInbound) ChannelRead(Context, any)          {}
func (tailInbound) ChannelReadComplete(Context)       {}
func (tailInbound) UserEvent(Context, any)            {}
func (tailInbound) ChannelWritabilityChanged(Context) {}

func (tailInbound) ExceptionCaught(ctx Context, err error) {
	tailLogger().LogCause(logging.SeverityWarn,
		ctx.Channel().String()+" an exception reached the tail of the pipeline without being handled", err)
}

var (
	tailLogOnce sync.Once
	tailLog     logging.Logger
)

// tailLogger resolves lazily so importing this package does not trigger
// backend resolution.
func tailLogger() logging.Logger {
	tailLogOnce.Do(func() {
		tailLog = logging.GetLogger("pipeline")
	})
	return tailLog
}

// Compile-time interface satisfaction checks.
var (
	_ Context         = (*handlerContext)(nil)
	_ OutboundHandler = headOutbound{}
	_ InboundHandler  = tailInbound{}
)
