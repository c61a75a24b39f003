package buffer

import "fmt"

// View is a read-only view over a byte range.
// Implementations must not mutate the underlying bytes, and callers must
// not retain a View past the call that handed it to them.
type View interface {
	// ReadableBytes returns the number of bytes in the view.
	ReadableBytes() int

	// ByteAt returns the byte at index i, 0 <= i < ReadableBytes().
	ByteAt(i int) byte
}

// Holder pairs a View with additional metadata. Implementations usually
// also implement fmt.Stringer; that textual form is included when the
// holder is logged.
type Holder interface {
	// Content returns the binary content of the holder.
	Content() View
}

// Bytes is a slice-backed View. The zero value is an empty view.
type Bytes struct {
	b []byte
}

// Wrap returns a Bytes view over b. The slice is not copied; the caller
// must not mutate it while the view is in use.
func Wrap(b []byte) Bytes {
	return Bytes{b: b}
}

// ReadableBytes returns the length of the wrapped slice.
func (v Bytes) ReadableBytes() int {
	return len(v.b)
}

// ByteAt returns the byte at index i.
func (v Bytes) ByteAt(i int) byte {
	return v.b[i]
}

// String returns a short description of the view.
func (v Bytes) String() string {
	return fmt.Sprintf("Bytes(%dB)", len(v.b))
}

// Labeled is a Holder that tags binary content with a descriptive label,
// for example a frame type or message name.
type Labeled struct {
	Label string
	Data  Bytes
}

// NewLabeled returns a Labeled holder over b.
func NewLabeled(label string, b []byte) Labeled {
	return Labeled{Label: label, Data: Wrap(b)}
}

// Content returns the binary content of the holder.
func (h Labeled) Content() View {
	return h.Data
}

// String returns the holder's label.
func (h Labeled) String() string {
	return h.Label
}

// Compile-time interface satisfaction checks.
var (
	_ View   = Bytes{}
	_ Holder = Labeled{}
)
