package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Framing constants.
const (
	// LengthPrefixSize is the size of the length prefix in bytes.
	LengthPrefixSize = 4

	// DefaultMaxFrameSize is the default maximum frame payload size (64 KB).
	DefaultMaxFrameSize = 65536
)

// Framing errors.
var (
	// ErrFrameTooLarge indicates the payload exceeds the maximum size.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrFrameEmpty indicates an empty payload.
	ErrFrameEmpty = errors.New("frame is empty")

	// ErrFrameTruncated indicates the stream ended mid-frame.
	ErrFrameTruncated = errors.New("frame truncated")
)

// Framer reads and writes length-prefixed frames over an underlying
// stream. The length prefix is 4 bytes, big-endian, counting only the
// payload. Writes are serialized; reads must come from one goroutine.
type Framer struct {
	r            io.Reader
	w            io.Writer
	maxFrameSize uint32
	lengthBuf    [LengthPrefixSize]byte
	writeMu      sync.Mutex
}

// NewFramer creates a framer over rw with the default maximum frame size.
func NewFramer(rw io.ReadWriter) *Framer {
	return NewFramerWithMaxSize(rw, DefaultMaxFrameSize)
}

// NewFramerWithMaxSize creates a framer with a custom maximum frame size.
func NewFramerWithMaxSize(rw io.ReadWriter, maxSize uint32) *Framer {
	if maxSize == 0 {
		maxSize = DefaultMaxFrameSize
	}
	return &Framer{r: rw, w: rw, maxFrameSize: maxSize}
}

// ReadFrame reads one frame and returns its payload.
// Returns io.EOF at a clean end of stream.
func (f *Framer) ReadFrame() ([]byte, error) {
	if _, err := io.ReadFull(f.r, f.lengthBuf[:]); err != nil {
		if err == io.EOF {
			return nil, err
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrFrameTruncated
		}
		return nil, fmt.Errorf("failed to read length prefix: %w", err)
	}

	length := binary.BigEndian.Uint32(f.lengthBuf[:])
	if length == 0 {
		return nil, ErrFrameEmpty
	}
	if length > f.maxFrameSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, length, f.maxFrameSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(f.r, payload); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrFrameTruncated
		}
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return payload, nil
}

// WriteFrame writes one frame.
// Thread-safe: can be called from multiple goroutines.
func (f *Framer) WriteFrame(payload []byte) error {
	if len(payload) == 0 {
		return ErrFrameEmpty
	}
	if uint32(len(payload)) > f.maxFrameSize {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, len(payload), f.maxFrameSize)
	}

	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	var lengthBuf [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(lengthBuf[:], uint32(len(payload)))

	if _, err := f.w.Write(lengthBuf[:]); err != nil {
		return fmt.Errorf("failed to write length prefix: %w", err)
	}
	if _, err := f.w.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

// FrameSize returns the total frame size including the length prefix.
func FrameSize(payloadSize int) int {
	return LengthPrefixSize + payloadSize
}
