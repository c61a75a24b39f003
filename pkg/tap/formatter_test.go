package tap

import (
	"errors"
	"strings"
	"testing"

	"github.com/tapline-io/tapline-go/pkg/buffer"
)

func TestFormatEvent(t *testing.T) {
	got := FormatEvent("[id: 0x1]", "REGISTERED")
	if got != "[id: 0x1] REGISTERED" {
		t.Errorf("FormatEvent() = %q", got)
	}
}

func TestFormatEmptyView(t *testing.T) {
	got := Format("[id: 0x1]", "WRITE", buffer.Wrap(nil))
	if got != "[id: 0x1] WRITE: 0B" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatViewWithDump(t *testing.T) {
	got := Format("[id: 0x1]", "READ", buffer.Wrap([]byte("hello")))

	lines := strings.Split(got, "\n")
	if lines[0] != "[id: 0x1] READ: 5B" {
		t.Errorf("first line = %q", lines[0])
	}
	// 3 header/ruler lines, 1 data row, 1 footer.
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[4], "68 65 6c 6c 6f") {
		t.Errorf("data row missing octets: %q", lines[4])
	}
	if !strings.Contains(lines[4], "|hello           |") {
		t.Errorf("data row missing ascii gutter: %q", lines[4])
	}
}

func TestFormatViewTwoRows(t *testing.T) {
	got := Format("[id: 0x1]", "READ", buffer.Wrap(make([]byte, 20)))

	if !strings.HasPrefix(got, "[id: 0x1] READ: 20B\n") {
		t.Errorf("unexpected prefix: %q", got)
	}
	dataRows := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "|0") {
			dataRows++
		}
	}
	if dataRows != 2 {
		t.Errorf("20 bytes should dump as 2 rows, got %d", dataRows)
	}
}

func TestFormatHolder(t *testing.T) {
	h := buffer.NewLabeled("FRAME", []byte{0xde, 0xad})
	got := Format("[id: 0x1]", "WRITE", h)

	if !strings.HasPrefix(got, "[id: 0x1] WRITE: FRAME, 2B\n") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "de ad") {
		t.Errorf("dump missing octets: %q", got)
	}
}

func TestFormatEmptyHolder(t *testing.T) {
	h := buffer.NewLabeled("FRAME", nil)
	got := Format("[id: 0x1]", "WRITE", h)
	if got != "[id: 0x1] WRITE: FRAME, 0B" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatSimpleArg(t *testing.T) {
	tests := []struct {
		name string
		arg  any
		want string
	}{
		{name: "string", arg: "ping", want: "[id: 0x1] USER_EVENT: ping"},
		{name: "int", arg: 42, want: "[id: 0x1] USER_EVENT: 42"},
		{name: "error", arg: errors.New("boom"), want: "[id: 0x1] USER_EVENT: boom"},
		{name: "nil", arg: nil, want: "[id: 0x1] USER_EVENT: null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format("[id: 0x1]", "USER_EVENT", tt.arg); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTwo(t *testing.T) {
	got := FormatTwo("[id: 0x1]", "CONNECT", "10.0.0.2:9000", "10.0.0.1:54321")
	want := "[id: 0x1] CONNECT: 10.0.0.2:9000, 10.0.0.1:54321"
	if got != want {
		t.Errorf("FormatTwo() = %q, want %q", got, want)
	}
}

func TestFormatTwoNilSecondDegrades(t *testing.T) {
	got := FormatTwo("[id: 0x1]", "CONNECT", "10.0.0.2:9000", nil)
	want := "[id: 0x1] CONNECT: 10.0.0.2:9000"
	if got != want {
		t.Errorf("FormatTwo() = %q, want %q", got, want)
	}
}

func TestFormatTwoNilFirst(t *testing.T) {
	got := FormatTwo("[id: 0x1]", "CONNECT", nil, "10.0.0.1:54321")
	want := "[id: 0x1] CONNECT: null, 10.0.0.1:54321"
	if got != want {
		t.Errorf("FormatTwo() = %q, want %q", got, want)
	}
}

func TestFormatPure(t *testing.T) {
	v := buffer.Wrap([]byte("same bytes"))
	a := Format("[id: 0x1]", "READ", v)
	b := Format("[id: 0x1]", "READ", v)
	if a != b {
		t.Error("identical inputs produced different strings")
	}
}
