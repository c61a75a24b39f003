package tap

import (
	"errors"
	"fmt"
	"net"
	"reflect"

	"github.com/tapline-io/tapline-go/pkg/logging"
	"github.com/tapline-io/tapline-go/pkg/pipeline"
)

// Configuration errors.
var (
	ErrInvalidLevel = errors.New("invalid severity level")
	ErrEmptyName    = errors.New("logger name must not be empty")
	ErrNilCategory  = errors.New("category must not be nil")
	ErrNilLogger    = errors.New("logger must not be nil")
)

// DefaultLevel is the severity events are logged at when none is
// configured.
const DefaultLevel = logging.SeverityDebug

// LogHandler logs every pipeline event at a configured severity and
// forwards it unchanged, whether or not a record was produced. It keeps
// no per-event state; a single instance can be shared across any number
// of pipelines concurrently.
type LogHandler struct {
	logger logging.Logger
	level  logging.Severity
}

type options struct {
	level  logging.Severity
	name   string
	logger logging.Logger
}

// Option configures a LogHandler.
type Option func(*options) error

// WithLevel sets the severity events are logged at.
func WithLevel(level logging.Severity) Option {
	return func(o *options) error {
		if !level.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
		}
		o.level = level
		return nil
	}
}

// WithName sets the name the handler's log records are attributed to.
func WithName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return ErrEmptyName
		}
		o.name = name
		return nil
	}
}

// WithCategory derives the logger name from the dynamic type of v.
func WithCategory(v any) Option {
	return func(o *options) error {
		if v == nil {
			return ErrNilCategory
		}
		o.name = typeName(reflect.TypeOf(v))
		return nil
	}
}

// WithLogger bypasses backend resolution with an explicit logger.
// Extension point for embedding and tests.
func WithLogger(l logging.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return ErrNilLogger
		}
		o.logger = l
		return nil
	}
}

// New creates a LogHandler. Without options it logs at DefaultLevel
// under a name derived from the LogHandler type, using the process-wide
// logging backend.
func New(opts ...Option) (*LogHandler, error) {
	o := options{level: DefaultLevel}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	if o.logger == nil {
		name := o.name
		if name == "" {
			name = typeName(reflect.TypeOf(LogHandler{}))
		}
		o.logger = logging.GetLogger(name)
	}

	return &LogHandler{logger: o.logger, level: o.level}, nil
}

// typeName returns the fully qualified name of t, following pointers.
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if pkg := t.PkgPath(); pkg != "" && t.Name() != "" {
		return pkg + "." + t.Name()
	}
	return t.String()
}

// Level returns the severity this handler logs at.
func (h *LogHandler) Level() logging.Severity { return h.level }

func (h *LogHandler) enabled() bool {
	return h.logger.Enabled(h.level)
}

func (h *LogHandler) ChannelRegistered(ctx pipeline.Context) {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "REGISTERED"))
	}
	ctx.FireChannelRegistered()
}

func (h *LogHandler) ChannelUnregistered(ctx pipeline.Context) {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "UNREGISTERED"))
	}
	ctx.FireChannelUnregistered()
}

func (h *LogHandler) ChannelActive(ctx pipeline.Context) {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "ACTIVE"))
	}
	ctx.FireChannelActive()
}

func (h *LogHandler) ChannelInactive(ctx pipeline.Context) {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "INACTIVE"))
	}
	ctx.FireChannelInactive()
}

// ExceptionCaught logs the error as event data and passes it on;
// forwarding an exception is pass-through, not error handling.
func (h *LogHandler) ExceptionCaught(ctx pipeline.Context, err error) {
	if h.enabled() {
		h.logger.LogCause(h.level, Format(ctx.Channel().String(), "EXCEPTION", err), err)
	}
	ctx.FireExceptionCaught(err)
}

func (h *LogHandler) UserEvent(ctx pipeline.Context, evt any) {
	if h.enabled() {
		h.logger.Log(h.level, Format(ctx.Channel().String(), "USER_EVENT", evt))
	}
	ctx.FireUserEvent(evt)
}

func (h *LogHandler) ChannelRead(ctx pipeline.Context, msg any) {
	if h.enabled() {
		h.logger.Log(h.level, Format(ctx.Channel().String(), "READ", msg))
	}
	ctx.FireChannelRead(msg)
}

func (h *LogHandler) ChannelReadComplete(ctx pipeline.Context) {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "READ_COMPLETE"))
	}
	ctx.FireChannelReadComplete()
}

func (h *LogHandler) ChannelWritabilityChanged(ctx pipeline.Context) {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "WRITABILITY_CHANGED"))
	}
	ctx.FireChannelWritabilityChanged()
}

func (h *LogHandler) Bind(ctx pipeline.Context, local net.Addr) error {
	if h.enabled() {
		h.logger.Log(h.level, Format(ctx.Channel().String(), "BIND", addrArg(local)))
	}
	return ctx.Bind(local)
}

func (h *LogHandler) Connect(ctx pipeline.Context, remote, local net.Addr) error {
	if h.enabled() {
		h.logger.Log(h.level, FormatTwo(ctx.Channel().String(), "CONNECT", addrArg(remote), addrArg(local)))
	}
	return ctx.Connect(remote, local)
}

func (h *LogHandler) Disconnect(ctx pipeline.Context) error {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "DISCONNECT"))
	}
	return ctx.Disconnect()
}

func (h *LogHandler) Close(ctx pipeline.Context) error {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "CLOSE"))
	}
	return ctx.Close()
}

func (h *LogHandler) Deregister(ctx pipeline.Context) error {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "DEREGISTER"))
	}
	return ctx.Deregister()
}

func (h *LogHandler) Write(ctx pipeline.Context, msg any) error {
	if h.enabled() {
		h.logger.Log(h.level, Format(ctx.Channel().String(), "WRITE", msg))
	}
	return ctx.Write(msg)
}

func (h *LogHandler) Flush(ctx pipeline.Context) {
	if h.enabled() {
		h.logger.Log(h.level, FormatEvent(ctx.Channel().String(), "FLUSH"))
	}
	ctx.Flush()
}

// addrArg keeps an absent address nil once boxed into any, so it
// renders as "null" and degrades two-argument formatting correctly.
func addrArg(a net.Addr) any {
	if a == nil {
		return nil
	}
	return a
}

// Compile-time interface satisfaction checks.
var (
	_ pipeline.InboundHandler  = (*LogHandler)(nil)
	_ pipeline.OutboundHandler = (*LogHandler)(nil)
)
