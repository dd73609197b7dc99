// Package errs defines the sentinel errors and warning values shared across
// the stdf packages.
//
// Errors in this package fall into two categories:
//
//   - Fatal errors (ErrTruncated, ErrEmptyInput) abort the whole decode.
//     STDF records are not resynchronizable without the length prefix, so a
//     corrupted stream is rejected wholesale, never record-by-record.
//   - Warnings are non-fatal anomalies attached to a successful decode
//     result. A caller always receives either a structured failure or a
//     complete (possibly imperfect) file plus its warning list.
package errs

import "errors"

var (
	// ErrTruncated indicates fewer bytes were available than a read or a
	// declared record length required.
	ErrTruncated = errors.New("truncated input")

	// ErrEmptyInput indicates the byte source contained no data at all.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnknownRecord indicates a record type outside the schema table was
	// encountered while strict decoding was requested. In the default mode
	// such records are retained as Unknown and only warned about.
	ErrUnknownRecord = errors.New("unknown record type")
)

// WarningKind classifies a non-fatal decode anomaly.
type WarningKind uint8

const (
	// WarnUnrecognizedEndianness is reported when the file has no leading
	// FAR record or its CPU_TYPE code is unknown. Decoding falls back to
	// little-endian.
	WarnUnrecognizedEndianness WarningKind = iota + 1
	// WarnUnknownRecord is reported once per record whose (type, subtype)
	// pair is not in the schema table. The record is retained with its raw
	// payload bytes.
	WarnUnknownRecord
	// WarnIdentityGap is reported when a test result references a test
	// number with no matching TSR/PTR metadata. The row is still emitted,
	// flagged as unresolved.
	WarnIdentityGap
)

func (k WarningKind) String() string {
	switch k {
	case WarnUnrecognizedEndianness:
		return "UnrecognizedEndianness"
	case WarnUnknownRecord:
		return "UnknownRecord"
	case WarnIdentityGap:
		return "IdentityResolutionGap"
	default:
		return "Unknown"
	}
}

// Warning describes a non-fatal anomaly encountered while decoding.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Message
}
