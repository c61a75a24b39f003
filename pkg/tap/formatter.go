package tap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tapline-io/tapline-go/pkg/buffer"
)

// FormatEvent returns the log text for an event with no argument:
// "<channel> <event>".
func FormatEvent(channel, event string) string {
	var sb strings.Builder
	sb.Grow(len(channel) + 1 + len(event))
	sb.WriteString(channel)
	sb.WriteByte(' ')
	sb.WriteString(event)
	return sb.String()
}

// Format returns the log text for an event with one argument. The
// rendering depends on the argument's shape: a buffer.View renders as
// its byte count followed by a hex dump, a buffer.Holder additionally
// prefixes the holder's own textual form, and anything else renders
// with fmt. A nil argument renders as the literal text "null".
//
// Formatting is a pure function of its inputs: identical inputs always
// produce identical strings.
func Format(channel, event string, arg any) string {
	switch m := arg.(type) {
	case buffer.View:
		return formatView(channel, event, m)
	case buffer.Holder:
		return formatHolder(channel, event, m)
	default:
		return formatSimple(channel, event, arg)
	}
}

// FormatTwo returns the log text for an event with two arguments:
// "<channel> <event>: <first>, <second>". A nil second argument
// degrades to the one-argument form on first.
func FormatTwo(channel, event string, first, second any) string {
	if second == nil {
		return Format(channel, event, first)
	}

	a := valueString(first)
	b := valueString(second)
	var sb strings.Builder
	sb.Grow(len(channel) + 1 + len(event) + 2 + len(a) + 2 + len(b))
	sb.WriteString(channel)
	sb.WriteByte(' ')
	sb.WriteString(event)
	sb.WriteString(": ")
	sb.WriteString(a)
	sb.WriteString(", ")
	sb.WriteString(b)
	return sb.String()
}

func formatView(channel, event string, v buffer.View) string {
	n := v.ReadableBytes()
	var sb strings.Builder
	if n == 0 {
		sb.Grow(len(channel) + 1 + len(event) + 4)
		sb.WriteString(channel)
		sb.WriteByte(' ')
		sb.WriteString(event)
		sb.WriteString(": 0B")
		return sb.String()
	}

	count := strconv.Itoa(n)
	sb.Grow(len(channel) + 1 + len(event) + 2 + len(count) + 2)
	sb.WriteString(channel)
	sb.WriteByte(' ')
	sb.WriteString(event)
	sb.WriteString(": ")
	sb.WriteString(count)
	sb.WriteString("B\n")
	buffer.AppendPrettyHexDump(&sb, v)
	return sb.String()
}

func formatHolder(channel, event string, h buffer.Holder) string {
	hs := valueString(h)
	var n int
	content := h.Content()
	if content != nil {
		n = content.ReadableBytes()
	}

	var sb strings.Builder
	if n == 0 {
		sb.Grow(len(channel) + 1 + len(event) + 2 + len(hs) + 4)
		sb.WriteString(channel)
		sb.WriteByte(' ')
		sb.WriteString(event)
		sb.WriteString(": ")
		sb.WriteString(hs)
		sb.WriteString(", 0B")
		return sb.String()
	}

	count := strconv.Itoa(n)
	sb.Grow(len(channel) + 1 + len(event) + 2 + len(hs) + 2 + len(count) + 2)
	sb.WriteString(channel)
	sb.WriteByte(' ')
	sb.WriteString(event)
	sb.WriteString(": ")
	sb.WriteString(hs)
	sb.WriteString(", ")
	sb.WriteString(count)
	sb.WriteString("B\n")
	buffer.AppendPrettyHexDump(&sb, content)
	return sb.String()
}

func formatSimple(channel, event string, arg any) string {
	v := valueString(arg)
	var sb strings.Builder
	sb.Grow(len(channel) + 1 + len(event) + 2 + len(v))
	sb.WriteString(channel)
	sb.WriteByte(' ')
	sb.WriteString(event)
	sb.WriteString(": ")
	sb.WriteString(v)
	return sb.String()
}

// valueString renders an argument for inclusion in log text. A nil
// argument renders as "null".
func valueString(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
