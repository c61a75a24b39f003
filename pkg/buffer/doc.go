// Package buffer provides read-only views over byte ranges and the
// fixed-width hex dump renderer used when logging binary payloads.
//
// A View exposes a byte range without copying it; a Holder pairs a View
// with additional metadata that has its own textual form. Both are what
// the logging tap inspects when deciding how to format a payload.
//
// The dump layout matches the classic wire-debugging format: a column
// ruler, one row per 16 octets with an 8-digit hex offset, and an ASCII
// gutter where non-printable bytes render as '.'.
package buffer
