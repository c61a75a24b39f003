// Package tap provides a pipeline handler that logs every channel event
// at a configured severity and forwards it unchanged.
//
// A LogHandler carries no per-event state; one instance can sit in any
// number of pipelines at once. When its severity is disabled on the
// logging backend no record text is built at all, and whether or not a
// record is produced the event continues down the pipeline exactly once.
//
// Binary payloads (buffer.View and buffer.Holder) are rendered as byte
// counts followed by a hex dump; everything else is rendered with fmt.
// The formatting helpers are exported for reuse by custom handlers.
package tap
