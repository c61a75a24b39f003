package pipeline

import "net"

// Context is a handler's view of its position in the pipeline. Inbound
// Fire* calls propagate an event to the next inbound handler toward the
// tail; outbound operations propagate toward the head and ultimately the
// channel's ChannelOps.
type Context interface {
	// Channel returns the channel this pipeline belongs to.
	Channel() Channel

	// Name returns the name the handler was registered under.
	Name() string

	// Inbound propagation.
	FireChannelRegistered()
	FireChannelUnregistered()
	FireChannelActive()
	FireChannelInactive()
	FireChannelRead(msg any)
	FireChannelReadComplete()
	FireUserEvent(evt any)
	FireChannelWritabilityChanged()
	FireExceptionCaught(err error)

	// Outbound propagation.
	Bind(local net.Addr) error
	Connect(remote, local net.Addr) error
	Disconnect() error
	Close() error
	Deregister() error
	Write(msg any) error
	Flush()
}

// InboundHandler receives events flowing from the channel toward the
// application. Implementations forward by calling the matching Fire*
// method on ctx.
type InboundHandler interface {
	ChannelRegistered(ctx Context)
	ChannelUnregistered(ctx Context)
	ChannelActive(ctx Context)
	ChannelInactive(ctx Context)
	ChannelRead(ctx Context, msg any)
	ChannelReadComplete(ctx Context)
	UserEvent(ctx Context, evt any)
	ChannelWritabilityChanged(ctx Context)
	ExceptionCaught(ctx Context, err error)
}

// OutboundHandler receives operations flowing from the application
// toward the channel. Implementations forward by calling the matching
// operation on ctx.
type OutboundHandler interface {
	Bind(ctx Context, local net.Addr) error
	Connect(ctx Context, remote, local net.Addr) error
	Disconnect(ctx Context) error
	Close(ctx Context) error
	Deregister(ctx Context) error
	Write(ctx Context, msg any) error
	Flush(ctx Context)
}

// InboundAdapter forwards every inbound event unchanged. Embed it to
// implement only the events a handler cares about.
type InboundAdapter struct{}

func (InboundAdapter) ChannelRegistered(ctx Context)         { ctx.FireChannelRegistered() }
func (InboundAdapter) ChannelUnregistered(ctx Context)       { ctx.FireChannelUnregistered() }
func (InboundAdapter) ChannelActive(ctx Context)             { ctx.FireChannelActive() }
func (InboundAdapter) ChannelInactive(ctx Context)           { ctx.FireChannelInactive() }
func (InboundAdapter) ChannelRead(ctx Context, msg any)      { ctx.FireChannelRead(msg) }
func (InboundAdapter) ChannelReadComplete(ctx Context)       { ctx.FireChannelReadComplete() }
func (InboundAdapter) UserEvent(ctx Context, evt any)        { ctx.FireUserEvent(evt) }
func (InboundAdapter) ChannelWritabilityChanged(ctx Context) { ctx.FireChannelWritabilityChanged() }
func (InboundAdapter) ExceptionCaught(ctx Context, err error) {
	ctx.FireExceptionCaught(err)
}

// OutboundAdapter forwards every outbound operation unchanged. Embed it
// to implement only the operations a handler cares about.
type OutboundAdapter struct{}

func (OutboundAdapter) Bind(ctx Context, local net.Addr) error { return ctx.Bind(local) }
func (OutboundAdapter) Connect(ctx Context, remote, local net.Addr) error {
	return ctx.Connect(remote, local)
}
func (OutboundAdapter) Disconnect(ctx Context) error      { return ctx.Disconnect() }
func (OutboundAdapter) Close(ctx Context) error           { return ctx.Close() }
func (OutboundAdapter) Deregister(ctx Context) error      { return ctx.Deregister() }
func (OutboundAdapter) Write(ctx Context, msg any) error  { return ctx.Write(msg) }
func (OutboundAdapter) Flush(ctx Context)                 { ctx.Flush() }

// Compile-time interface satisfaction checks.
var (
	_ InboundHandler  = InboundAdapter{}
	_ OutboundHandler = OutboundAdapter{}
)
