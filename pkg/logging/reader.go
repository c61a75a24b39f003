package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/tapline-io/tapline-go/pkg/version"
)

// ErrIncompatibleCapture indicates a capture file written by a library
// release with a different major version.
var ErrIncompatibleCapture = errors.New("incompatible capture file version")

// Filter specifies criteria for filtering capture records.
// Empty/nil fields match all records for that criterion.
type Filter struct {
	// Logger filters by exact logger name match.
	Logger string

	// MinSeverity filters records at or above this severity.
	MinSeverity *Severity

	// TimeStart filters records at or after this time.
	TimeStart *time.Time

	// TimeEnd filters records before this time.
	TimeEnd *time.Time

	// WithCause, when true, matches only records carrying a cause.
	WithCause bool
}

// matches returns true if the record matches all filter criteria.
func (f *Filter) matches(rec Record) bool {
	if f.Logger != "" && rec.Logger != f.Logger {
		return false
	}
	if f.MinSeverity != nil && rec.Severity < *f.MinSeverity {
		return false
	}
	if f.TimeStart != nil && rec.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !rec.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	if f.WithCause && rec.Cause == "" {
		return false
	}
	return true
}

// Reader reads capture records from a CBOR-encoded file.
// It provides an iterator interface for streaming large files.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader creates a Reader that reads all records from the capture file.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that reads records matching the
// filter. It fails with ErrIncompatibleCapture if the file was written
// by an incompatible library version.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder := NewDecoder(f)
	if err := checkFileHeader(decoder); err != nil {
		f.Close()
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: decoder,
		filter:  filter,
	}, nil
}

// checkFileHeader consumes the capture header and verifies the file was
// written by a compatible library version.
func checkFileHeader(decoder *cbor.Decoder) error {
	var hdr fileHeader
	if err := decoder.Decode(&hdr); err != nil {
		return fmt.Errorf("failed to read capture header: %w", err)
	}

	fileVer, err := version.Parse(hdr.Version)
	if err != nil {
		return fmt.Errorf("invalid capture header: %w", err)
	}

	current, err := version.Parse(version.Current)
	if err != nil {
		return err
	}
	if !current.Compatible(fileVer) {
		return fmt.Errorf("%w: file has %s, library has %s", ErrIncompatibleCapture, fileVer, current)
	}
	return nil
}

// Next returns the next record that matches the filter.
// Returns io.EOF when no more records are available.
func (r *Reader) Next() (Record, error) {
	for {
		var rec Record
		if err := r.decoder.Decode(&rec); err != nil {
			if err == io.EOF {
				return Record{}, io.EOF
			}
			return Record{}, err
		}

		if r.filter.matches(rec) {
			return rec, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// ReadRecords reads every record in the capture file that matches the
// filter. Convenience wrapper around Reader for small files.
func ReadRecords(path string, filter Filter) ([]Record, error) {
	r, err := NewFilteredReader(path, filter)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}
