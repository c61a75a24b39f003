package buffer

import (
	"fmt"
	"strings"
)

const (
	hexDumpHeader = "         +-------------------------------------------------+\n" +
		"         |  0  1  2  3  4  5  6  7  8  9  a  b  c  d  e  f |\n" +
		"+--------+-------------------------------------------------+----------------+"

	hexDumpFooter = "+--------+-------------------------------------------------+----------------+"

	hexDumpRowWidth = 80

	hexDigits = "0123456789abcdef"
)

// PrettyHexDump returns a multi-row hex+ASCII rendering of v.
// For an empty view the result is the empty string.
func PrettyHexDump(v View) string {
	var sb strings.Builder
	AppendPrettyHexDump(&sb, v)
	return sb.String()
}

// AppendPrettyHexDump appends the hex+ASCII rendering of v to sb.
// The output has a header ruler, one data row per 16 octets showing the
// row's starting offset, the octets in two-digit hex, an ASCII gutter
// with '.' for non-printable bytes, and a footer ruler. Bytes are read
// directly from the view; nothing is copied. Nothing is appended for an
// empty view.
func AppendPrettyHexDump(sb *strings.Builder, v View) {
	n := v.ReadableBytes()
	if n == 0 {
		return
	}

	rows := (n + 15) / 16
	sb.Grow(len(hexDumpHeader) + len(hexDumpFooter) + (rows+1)*hexDumpRowWidth)

	sb.WriteString(hexDumpHeader)
	for start := 0; start < n; start += 16 {
		end := start + 16
		if end > n {
			end = n
		}

		fmt.Fprintf(sb, "\n|%08x|", start)
		for i := start; i < end; i++ {
			b := v.ByteAt(i)
			sb.WriteByte(' ')
			sb.WriteByte(hexDigits[b>>4])
			sb.WriteByte(hexDigits[b&0x0f])
		}
		for i := end; i < start+16; i++ {
			sb.WriteString("   ")
		}

		sb.WriteString(" |")
		for i := start; i < end; i++ {
			sb.WriteByte(printableOrDot(v.ByteAt(i)))
		}
		for i := end; i < start+16; i++ {
			sb.WriteByte(' ')
		}
		sb.WriteByte('|')
	}
	sb.WriteByte('\n')
	sb.WriteString(hexDumpFooter)
}

// printableOrDot maps bytes outside the printable ASCII range to '.'.
func printableOrDot(b byte) byte {
	if b < 0x20 || b > 0x7e {
		return '.'
	}
	return b
}
