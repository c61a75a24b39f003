package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	rec := Record{
		Timestamp: time.Date(2026, 8, 29, 10, 30, 0, 123456789, time.UTC),
		Logger:    "transport",
		Severity:  SeverityWarn,
		Message:   "[id: 0x1] EXCEPTION",
		Cause:     "connection reset",
	}

	data, err := EncodeRecord(rec)
	require.NoError(t, err)

	got, err := DecodeRecord(data)
	require.NoError(t, err)

	assert.True(t, rec.Timestamp.Equal(got.Timestamp), "timestamp changed across encoding")
	assert.Equal(t, rec.Logger, got.Logger)
	assert.Equal(t, rec.Severity, got.Severity)
	assert.Equal(t, rec.Message, got.Message)
	assert.Equal(t, rec.Cause, got.Cause)
}

func TestEncodeRecordDeterministic(t *testing.T) {
	rec := Record{
		Timestamp: time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		Logger:    "pipeline",
		Severity:  SeverityInfo,
		Message:   "[id: 0x1] ACTIVE",
	}

	a, err := EncodeRecord(rec)
	require.NoError(t, err)
	b, err := EncodeRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRecordOmitsEmptyCause(t *testing.T) {
	base := Record{
		Timestamp: time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		Logger:    "transport",
		Severity:  SeverityDebug,
		Message:   "READ_COMPLETE",
	}
	withCause := base
	withCause.Cause = "x"

	plain, err := EncodeRecord(base)
	require.NoError(t, err)
	caused, err := EncodeRecord(withCause)
	require.NoError(t, err)
	assert.Less(t, len(plain), len(caused), "empty cause must not be encoded")

	got, err := DecodeRecord(plain)
	require.NoError(t, err)
	assert.Empty(t, got.Cause)
}

func TestDecodeRecordInvalid(t *testing.T) {
	_, err := DecodeRecord([]byte{0xff, 0x00})
	assert.Error(t, err)
}
