// Package pipeline implements a bidirectional handler pipeline for
// channel events.
//
// Inbound events (registration, activation, reads, user events, errors)
// enter at the head and flow toward the tail; outbound operations (bind,
// connect, write, close) enter at the tail and flow toward the head,
// where they reach the channel's I/O implementation.
//
// Handlers implement InboundHandler, OutboundHandler, or both, and are
// linked into the pipeline by name. A handler forwards an event to the
// next stage by calling the corresponding method on its Context; a
// handler that does not forward stops propagation.
//
// EmbeddedChannel provides an in-memory channel for exercising handlers
// in tests without any transport.
package pipeline
