package record

import (
	"fmt"
	"io"

	"github.com/arloliu/stdf/encoding"
	"github.com/arloliu/stdf/endian"
	"github.com/arloliu/stdf/errs"
)

// Decoder consumes a byte stream record by record.
//
// The decoder owns the endianness state of a single decode session: it
// starts with the little-endian fallback and latches the byte order
// announced by the first FAR record's CPU_TYPE for the remainder of the
// stream. Files without a leading FAR, or with an unrecognized CPU_TYPE,
// keep the fallback and gain a warning.
//
// Note: The Decoder is NOT thread-safe. Each decoder instance should be
// used by a single goroutine at a time.
type Decoder struct {
	cur      *encoding.Cursor
	warnings []errs.Warning
	unknown  int
	started  bool
	latched  bool
}

// NewDecoder creates a decoder reading from data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		cur: encoding.NewCursor(data, endian.GetLittleEndianEngine()),
	}
}

// Next decodes one record.
//
// Returns:
//   - Record: The decoded record, or an Unknown fallback for kinds outside
//     the schema table
//   - error: io.EOF at a clean end of stream; errs.ErrTruncated if the
//     header or its declared payload overruns the remaining bytes. Length
//     violations are fatal for the whole decode: without an intact length
//     prefix the stream cannot be resynchronized.
func (d *Decoder) Next() (Record, error) {
	if d.cur.Remaining() == 0 {
		return nil, io.EOF
	}

	header, err := DecodeHeader(d.cur)
	if err != nil {
		return nil, fmt.Errorf("decode record header: %w", err)
	}

	body, err := d.cur.ReadBytes(int(header.Length))
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", header.Kind(), err)
	}

	kind := header.Kind()
	if !d.started {
		d.started = true
		if kind != KindFAR {
			d.warn(errs.WarnUnrecognizedEndianness,
				"file does not start with a FAR record; assuming little-endian")
			d.latched = true
		}
	}

	decode, ok := schemas[kind]
	if !ok {
		d.unknown++
		d.warn(errs.WarnUnknownRecord,
			fmt.Sprintf("record type (%d,%d) is not in the schema table", header.Type, header.Subtype))

		raw := append([]byte(nil), body...)

		return &Unknown{Type: header.Type, Subtype: header.Subtype, Raw: raw}, nil
	}

	// The field reader is bounded to the declared payload, so a schema
	// that consumes fewer bytes than the payload holds cannot misalign
	// the next header.
	rec := decode(newFieldReader(body, d.cur.Engine()))

	if far, isFAR := rec.(*FAR); isFAR && !d.latched {
		d.latch(far)
	}

	return rec, nil
}

// latch derives the session byte order from the first FAR encountered.
func (d *Decoder) latch(far *FAR) {
	d.latched = true

	engine, ok := endian.FromCPUType(far.CPUType)
	if !ok {
		d.warn(errs.WarnUnrecognizedEndianness,
			fmt.Sprintf("unrecognized CPU_TYPE %d; assuming little-endian", far.CPUType))
	}
	d.cur.SetEngine(engine)
}

func (d *Decoder) warn(kind errs.WarningKind, msg string) {
	d.warnings = append(d.warnings, errs.Warning{Kind: kind, Message: msg})
}

// Warnings returns the non-fatal anomalies seen so far, in order.
func (d *Decoder) Warnings() []errs.Warning {
	return d.warnings
}

// UnknownCount returns the number of records decoded as Unknown so far.
func (d *Decoder) UnknownCount() int {
	return d.unknown
}
