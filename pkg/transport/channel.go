package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tapline-io/tapline-go/pkg/buffer"
	"github.com/tapline-io/tapline-go/pkg/pipeline"
)

// Channel errors.
var (
	// ErrUnsupportedMessage indicates an outbound message type the
	// channel cannot put on the wire.
	ErrUnsupportedMessage = errors.New("unsupported outbound message type")

	// ErrUnsupportedOperation indicates an outbound operation that does
	// not apply to an already-established connection.
	ErrUnsupportedOperation = errors.New("operation not supported on an established channel")
)

// PipelineInitializer populates a new channel's pipeline.
type PipelineInitializer func(p *pipeline.Pipeline) error

// Config configures a channel.
type Config struct {
	// MaxFrameSize is the maximum frame payload size (default: 64KB).
	MaxFrameSize uint32
}

// DefaultConfig returns the default channel configuration.
func DefaultConfig() Config {
	return Config{MaxFrameSize: DefaultMaxFrameSize}
}

// Channel runs a handler pipeline over an established net.Conn.
// Incoming frames are delivered as READ events carrying buffer views;
// outbound writes that pass the pipeline are framed onto the wire.
type Channel struct {
	id     string
	label  string
	conn   net.Conn
	framer *Framer
	pipe   *pipeline.Pipeline

	active    atomic.Bool
	closeOnce sync.Once
}

// NewChannel wraps an established connection. The initializer, if any,
// populates the pipeline before any event fires.
func NewChannel(conn net.Conn, cfg Config, init PipelineInitializer) (*Channel, error) {
	id := uuid.NewString()
	c := &Channel{
		id:     id,
		label:  "[id: 0x" + strings.ReplaceAll(id, "-", "")[:8] + "]",
		conn:   conn,
		framer: NewFramerWithMaxSize(conn, cfg.MaxFrameSize),
	}
	c.pipe = pipeline.New(c, channelOps{c})

	if init != nil {
		if err := init(c.pipe); err != nil {
			conn.Close()
			return nil, fmt.Errorf("pipeline initializer failed: %w", err)
		}
	}
	return c, nil
}

// Dial connects to address over TCP and wraps the connection.
// The caller runs Serve to start event delivery.
func Dial(ctx context.Context, address string, cfg Config, init PipelineInitializer) (*Channel, error) {
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}
	return NewChannel(conn, cfg, init)
}

// ID returns the unique channel identifier.
func (c *Channel) ID() string { return c.id }

// String returns the stable channel label.
func (c *Channel) String() string { return c.label }

// LocalAddr returns the local network address.
func (c *Channel) LocalAddr() net.Addr { return c.conn.LocalAddr() }

// RemoteAddr returns the remote network address.
func (c *Channel) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

// Active reports whether the channel is open and serving.
func (c *Channel) Active() bool { return c.active.Load() }

// Pipeline returns the channel's pipeline.
func (c *Channel) Pipeline() *pipeline.Pipeline { return c.pipe }

// Write sends a message down the pipeline toward the wire.
func (c *Channel) Write(msg any) error { return c.pipe.Write(msg) }

// Close closes the channel through the pipeline, so outbound handlers
// observe the CLOSE operation.
func (c *Channel) Close() error { return c.pipe.Close() }

// Serve fires the registration and activation events, then reads frames
// until the connection ends or ctx is cancelled, delivering each as a
// READ event followed by READ_COMPLETE. It blocks; run it on its own
// goroutine. Read failures are delivered as EXCEPTION events before
// teardown.
func (c *Channel) Serve(ctx context.Context) error {
	c.pipe.FireChannelRegistered()
	c.active.Store(true)
	c.pipe.FireChannelActive()

	// Tear down on cancellation so a blocked read unblocks.
	stop := context.AfterFunc(ctx, c.teardown)
	defer stop()

	var readErr error
	for ctx.Err() == nil {
		data, err := c.framer.ReadFrame()
		if err != nil {
			if err == io.EOF || !c.active.Load() {
				break
			}
			readErr = err
			c.pipe.FireExceptionCaught(fmt.Errorf("read error: %w", err))
			break
		}
		c.pipe.FireChannelRead(buffer.Wrap(data))
		c.pipe.FireChannelReadComplete()
	}

	c.teardown()
	return readErr
}

// teardown closes the connection once and fires the deactivation events.
func (c *Channel) teardown() {
	c.closeOnce.Do(func() {
		wasActive := c.active.Swap(false)
		_ = c.conn.Close()
		if wasActive {
			c.pipe.FireChannelInactive()
		}
		c.pipe.FireChannelUnregistered()
	})
}

// channelOps is the pipeline's outbound terminus for this channel.
type channelOps struct {
	c *Channel
}

func (o channelOps) DoBind(net.Addr) error {
	return fmt.Errorf("%w: bind", ErrUnsupportedOperation)
}

func (o channelOps) DoConnect(net.Addr, net.Addr) error {
	return fmt.Errorf("%w: connect", ErrUnsupportedOperation)
}

func (o channelOps) DoDisconnect() error {
	o.c.teardown()
	return nil
}

func (o channelOps) DoClose() error {
	o.c.teardown()
	return nil
}

func (o channelOps) DoDeregister() error {
	return nil
}

func (o channelOps) DoWrite(msg any) error {
	switch m := msg.(type) {
	case buffer.View:
		return o.c.framer.WriteFrame(viewBytes(m))
	case buffer.Holder:
		return o.c.framer.WriteFrame(viewBytes(m.Content()))
	case []byte:
		return o.c.framer.WriteFrame(m)
	case string:
		return o.c.framer.WriteFrame([]byte(m))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedMessage, msg)
	}
}

// DoFlush is a no-op; frames are written unbuffered.
func (o channelOps) DoFlush() {}

// viewBytes materializes a view for the wire.
func viewBytes(v buffer.View) []byte {
	if v == nil {
		return nil
	}
	b := make([]byte, v.ReadableBytes())
	for i := range b {
		b[i] = v.ByteAt(i)
	}
	return b
}

// Compile-time interface satisfaction checks.
var (
	_ pipeline.Channel    = (*Channel)(nil)
	_ pipeline.ChannelOps = channelOps{}
)
