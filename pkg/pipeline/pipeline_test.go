package pipeline

import (
	"errors"
	"net"
	"sync"
	"testing"
)

// traceHandler records the events it sees tagged with its id, then
// forwards them.
type traceHandler struct {
	InboundAdapter
	OutboundAdapter

	id  string
	log *eventLog
}

type eventLog struct {
	mu  sync.Mutex
	got []string
}

func (l *eventLog) add(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.got = append(l.got, s)
}

func (l *eventLog) events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.got...)
}

func (h *traceHandler) ChannelRead(ctx Context, msg any) {
	h.log.add(h.id + ":read")
	ctx.FireChannelRead(msg)
}

func (h *traceHandler) Write(ctx Context, msg any) error {
	h.log.add(h.id + ":write")
	return ctx.Write(msg)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInboundOrderHeadToTail(t *testing.T) {
	log := &eventLog{}
	ch, err := NewEmbeddedChannel("[test]",
		&traceHandler{id: "a", log: log},
		&traceHandler{id: "b", log: log},
	)
	if err != nil {
		t.Fatal(err)
	}

	ch.Pipeline().FireChannelRead("msg")

	want := []string{"a:read", "b:read"}
	if got := log.events(); !equalStrings(got, want) {
		t.Errorf("inbound order = %v, want %v", got, want)
	}
}

func TestOutboundOrderTailToHead(t *testing.T) {
	log := &eventLog{}
	ch, err := NewEmbeddedChannel("[test]",
		&traceHandler{id: "a", log: log},
		&traceHandler{id: "b", log: log},
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := ch.Pipeline().Write("msg"); err != nil {
		t.Fatal(err)
	}

	want := []string{"b:write", "a:write"}
	if got := log.events(); !equalStrings(got, want) {
		t.Errorf("outbound order = %v, want %v", got, want)
	}
	if got := ch.ReadOutbound(); got != "msg" {
		t.Errorf("ReadOutbound() = %v, want msg", got)
	}
}

func TestAddFirstAddLastNames(t *testing.T) {
	log := &eventLog{}
	p := New(nil, nil)

	if err := p.AddLast("mid", &traceHandler{id: "mid", log: log}); err != nil {
		t.Fatal(err)
	}
	if err := p.AddFirst("front", &traceHandler{id: "front", log: log}); err != nil {
		t.Fatal(err)
	}
	if err := p.AddLast("back", &traceHandler{id: "back", log: log}); err != nil {
		t.Fatal(err)
	}

	want := []string{"front", "mid", "back"}
	if got := p.Names(); !equalStrings(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestAddRejectsNonHandler(t *testing.T) {
	p := New(nil, nil)
	err := p.AddLast("bogus", struct{}{})
	if !errors.Is(err, ErrNotAHandler) {
		t.Errorf("AddLast(non-handler) = %v, want ErrNotAHandler", err)
	}
}

func TestAddRejectsDuplicateName(t *testing.T) {
	log := &eventLog{}
	p := New(nil, nil)

	if err := p.AddLast("dup", &traceHandler{id: "a", log: log}); err != nil {
		t.Fatal(err)
	}
	err := p.AddLast("dup", &traceHandler{id: "b", log: log})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate AddLast = %v, want ErrDuplicateName", err)
	}
}

func TestRemove(t *testing.T) {
	log := &eventLog{}
	ch, err := NewEmbeddedChannel("[test]",
		&traceHandler{id: "a", log: log},
		&traceHandler{id: "b", log: log},
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := ch.Pipeline().Remove("h0"); err != nil {
		t.Fatal(err)
	}
	ch.Pipeline().FireChannelRead("msg")

	want := []string{"b:read"}
	if got := log.events(); !equalStrings(got, want) {
		t.Errorf("events after remove = %v, want %v", got, want)
	}

	if err := ch.Pipeline().Remove("h0"); !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("second Remove = %v, want ErrHandlerNotFound", err)
	}
}

func TestNilOpsOutboundSucceeds(t *testing.T) {
	p := New(nil, nil)

	if err := p.Write("msg"); err != nil {
		t.Errorf("Write with nil ops = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close with nil ops = %v", err)
	}
	if err := p.Bind(&net.TCPAddr{}); err != nil {
		t.Errorf("Bind with nil ops = %v", err)
	}
}

func TestAdaptersPassThrough(t *testing.T) {
	log := &eventLog{}

	// A bare adapter pair between two tracers must be transparent.
	type passthrough struct {
		InboundAdapter
		OutboundAdapter
	}

	ch, err := NewEmbeddedChannel("[test]",
		&traceHandler{id: "a", log: log},
		&passthrough{},
		&traceHandler{id: "b", log: log},
	)
	if err != nil {
		t.Fatal(err)
	}

	ch.Pipeline().FireChannelRead("msg")
	if err := ch.Pipeline().Write("msg"); err != nil {
		t.Fatal(err)
	}

	want := []string{"a:read", "b:read", "b:write", "a:write"}
	if got := log.events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

// consumeErrors swallows exceptions so they never reach the tail.
type consumeErrors struct {
	InboundAdapter

	mu   sync.Mutex
	errs []error
}

func (c *consumeErrors) ExceptionCaught(_ Context, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

func TestExceptionPropagation(t *testing.T) {
	sink := &consumeErrors{}
	ch, err := NewEmbeddedChannel("[test]", sink)
	if err != nil {
		t.Fatal(err)
	}

	cause := errors.New("boom")
	ch.Pipeline().FireExceptionCaught(cause)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.errs) != 1 || sink.errs[0] != cause {
		t.Errorf("errs = %v, want [boom]", sink.errs)
	}
}

func TestWriteInboundBatch(t *testing.T) {
	log := &eventLog{}

	h := &batchTracer{log: log}
	ch, err := NewEmbeddedChannel("[test]", h)
	if err != nil {
		t.Fatal(err)
	}

	ch.WriteInbound("one", "two")

	want := []string{"read", "read", "read_complete"}
	if got := log.events(); !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

type batchTracer struct {
	InboundAdapter

	log *eventLog
}

func (h *batchTracer) ChannelRead(ctx Context, msg any) {
	h.log.add("read")
	ctx.FireChannelRead(msg)
}

func (h *batchTracer) ChannelReadComplete(ctx Context) {
	h.log.add("read_complete")
	ctx.FireChannelReadComplete()
}

func TestEmbeddedCloseDeactivates(t *testing.T) {
	ch, err := NewEmbeddedChannel("[test]")
	if err != nil {
		t.Fatal(err)
	}

	if !ch.Active() {
		t.Fatal("new embedded channel should be active")
	}
	if err := ch.Pipeline().Close(); err != nil {
		t.Fatal(err)
	}
	if ch.Active() {
		t.Error("channel should be inactive after Close")
	}
}
