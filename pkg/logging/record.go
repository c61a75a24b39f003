package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/tapline-io/tapline-go/pkg/version"
)

// Record is one captured log record.
// CBOR encoding uses integer keys for compactness.
type Record struct {
	// Timestamp when the record was produced (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Logger is the name of the logger that produced the record.
	Logger string `cbor:"2,keyasint"`

	// Severity of the record.
	Severity Severity `cbor:"3,keyasint"`

	// Message is the record text.
	Message string `cbor:"4,keyasint"`

	// Cause is the textual form of the error attached to the record,
	// if any.
	Cause string `cbor:"5,keyasint,omitempty"`
}

// recEncMode is the CBOR encoder mode for capture records.
// Configured for nanosecond-precision timestamps and deterministic encoding.
var recEncMode cbor.EncMode

// recDecMode is the CBOR decoder mode for capture records.
var recDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	recEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	recDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR decoder mode: %v", err))
	}
}

// fileHeader is the first CBOR item in a capture file. Readers refuse
// files whose major version differs from the library's.
type fileHeader struct {
	Version string `cbor:"1,keyasint"`
}

// EncodeFileHeader writes the capture format header identifying
// version.Current. It must be the first item written to a new capture
// file.
func EncodeFileHeader(enc *cbor.Encoder) error {
	return enc.Encode(fileHeader{Version: version.Current})
}

// EncodeRecord encodes a Record to CBOR bytes.
func EncodeRecord(rec Record) ([]byte, error) {
	return recEncMode.Marshal(rec)
}

// DecodeRecord decodes CBOR bytes into a Record.
func DecodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := recDecMode.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// NewEncoder creates a CBOR encoder for capture records that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return recEncMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for capture records that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return recDecMode.NewDecoder(r)
}
