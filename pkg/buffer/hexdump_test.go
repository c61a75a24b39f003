package buffer

import (
	"strings"
	"testing"
)

func TestPrettyHexDumpEmpty(t *testing.T) {
	if got := PrettyHexDump(Wrap(nil)); got != "" {
		t.Errorf("PrettyHexDump(empty) = %q, want empty string", got)
	}
}

func TestPrettyHexDumpShortRow(t *testing.T) {
	want := strings.Join([]string{
		"         +-------------------------------------------------+",
		"         |  0  1  2  3  4  5  6  7  8  9  a  b  c  d  e  f |",
		"+--------+-------------------------------------------------+----------------+",
		"|00000000| 68 65 6c 6c 6f                                  |hello           |",
		"+--------+-------------------------------------------------+----------------+",
	}, "\n")

	got := PrettyHexDump(Wrap([]byte("hello")))
	if got != want {
		t.Errorf("dump mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyHexDumpFullRow(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}

	want := strings.Join([]string{
		"         +-------------------------------------------------+",
		"         |  0  1  2  3  4  5  6  7  8  9  a  b  c  d  e  f |",
		"+--------+-------------------------------------------------+----------------+",
		"|00000000| 00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f |................|",
		"+--------+-------------------------------------------------+----------------+",
	}, "\n")

	got := PrettyHexDump(Wrap(data))
	if got != want {
		t.Errorf("dump mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyHexDumpRowCount(t *testing.T) {
	tests := []struct {
		n    int
		rows int
	}{
		{n: 1, rows: 1},
		{n: 15, rows: 1},
		{n: 16, rows: 1},
		{n: 17, rows: 2},
		{n: 20, rows: 2},
		{n: 32, rows: 2},
		{n: 33, rows: 3},
		{n: 256, rows: 16},
	}

	for _, tt := range tests {
		data := make([]byte, tt.n)
		got := countDataRows(PrettyHexDump(Wrap(data)))
		if got != tt.rows {
			t.Errorf("n=%d: %d data rows, want %d", tt.n, got, tt.rows)
		}
	}
}

// countDataRows counts lines that carry octets, i.e. start with a hex
// offset cell rather than a ruler or header line.
func countDataRows(dump string) int {
	count := 0
	for _, line := range strings.Split(dump, "\n") {
		if strings.HasPrefix(line, "|0") {
			count++
		}
	}
	return count
}

func TestPrettyHexDumpSecondRowOffset(t *testing.T) {
	data := make([]byte, 17)
	dump := PrettyHexDump(Wrap(data))

	if !strings.Contains(dump, "\n|00000010|") {
		t.Errorf("second row should start at offset 00000010:\n%s", dump)
	}
}

func TestPrintableOrDot(t *testing.T) {
	tests := []struct {
		in   byte
		want byte
	}{
		{in: 0x1f, want: '.'},
		{in: 0x20, want: ' '},
		{in: 'A', want: 'A'},
		{in: 0x7e, want: '~'},
		{in: 0x7f, want: '.'},
		{in: 0xff, want: '.'},
	}

	for _, tt := range tests {
		if got := printableOrDot(tt.in); got != tt.want {
			t.Errorf("printableOrDot(%#x) = %c, want %c", tt.in, got, tt.want)
		}
	}
}

func TestPrettyHexDumpDeterministic(t *testing.T) {
	data := []byte("determinism matters for log output")
	a := PrettyHexDump(Wrap(data))
	b := PrettyHexDump(Wrap(data))
	if a != b {
		t.Error("identical inputs produced different dumps")
	}
}
