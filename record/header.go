package record

import (
	"github.com/arloliu/stdf/encoding"
	"github.com/arloliu/stdf/endian"
)

// HeaderSize is the fixed size of every record header in bytes.
const HeaderSize = 4

// Header is the 4-byte prefix of every STDF record.
//
// Length counts the payload bytes that follow the header; the payload of
// a record may end before all of its schema fields have been consumed
// (trailing fields are optional) but never after.
type Header struct {
	Length  uint16
	Type    uint8
	Subtype uint8
}

// Kind returns the schema kind for the header's (type, subtype) pair.
func (h Header) Kind() Kind {
	return KindOf(h.Type, h.Subtype)
}

// DecodeHeader reads one record header from the cursor.
//
// The length field is always read little-endian regardless of the file's
// body byte order, so the header layout is fixed before the FAR record
// has announced the CPU type.
//
// Returns:
//   - Header: Decoded header
//   - error: errs.ErrTruncated if fewer than 4 bytes remain
func DecodeHeader(cur *encoding.Cursor) (Header, error) {
	raw, err := cur.ReadBytes(HeaderSize)
	if err != nil {
		return Header{}, err
	}

	return Header{
		Length:  endian.GetLittleEndianEngine().Uint16(raw[0:2]),
		Type:    raw[2],
		Subtype: raw[3],
	}, nil
}
