package record

import (
	"github.com/arloliu/stdf/encoding"
	"github.com/arloliu/stdf/endian"
)

// fieldReader walks a record body field by field, layered on a bounded
// Cursor.
//
// STDF allows a record payload to end before all of the schema's fields:
// trailing fields are optional, and their absence is the format's
// forward/backward compatibility mechanism. Once the body runs out, every
// further read reports the field's default value instead of an error, and
// the reader stays exhausted so later fields cannot misread stray bytes.
type fieldReader struct {
	cur       *encoding.Cursor
	exhausted bool
}

func newFieldReader(body []byte, engine endian.EndianEngine) *fieldReader {
	return &fieldReader{cur: encoding.NewCursor(body, engine)}
}

// take reports whether n more bytes are available, marking the reader
// exhausted otherwise.
func (f *fieldReader) take(n int) bool {
	if f.exhausted || f.cur.Remaining() < n {
		f.exhausted = true
		return false
	}

	return true
}

func (f *fieldReader) U1() uint8 {
	if !f.take(1) {
		return 0
	}
	v, _ := f.cur.ReadUint8()

	return v
}

// U1Or reads a one-byte field, substituting def when the field is absent.
// Used for B*1 flag fields like OPT_FLAG whose "all bits set" state marks
// every dependent field invalid.
func (f *fieldReader) U1Or(def uint8) uint8 {
	if !f.take(1) {
		return def
	}
	v, _ := f.cur.ReadUint8()

	return v
}

func (f *fieldReader) U2() uint16 {
	if !f.take(2) {
		return 0
	}
	v, _ := f.cur.ReadUint16()

	return v
}

func (f *fieldReader) U4() uint32 {
	if !f.take(4) {
		return 0
	}
	v, _ := f.cur.ReadUint32()

	return v
}

func (f *fieldReader) I1() int8 {
	return int8(f.U1())
}

func (f *fieldReader) I2() int16 {
	return int16(f.U2())
}

func (f *fieldReader) I4() int32 {
	return int32(f.U4())
}

func (f *fieldReader) R4() float32 {
	if !f.take(4) {
		return 0
	}
	v, _ := f.cur.ReadFloat32()

	return v
}

// C1 reads a single character field.
func (f *fieldReader) C1() byte {
	return f.U1()
}

// Cn reads a length-prefixed character string.
func (f *fieldReader) Cn() string {
	if !f.take(1) {
		return ""
	}
	s, err := f.cur.ReadString()
	if err != nil {
		// Length byte claims more than the body holds; treat the field
		// and everything after it as absent.
		f.exhausted = true
		return ""
	}

	return s
}

// Bn reads a length-prefixed byte field.
func (f *fieldReader) Bn() []byte {
	if !f.take(1) {
		return nil
	}
	n, _ := f.cur.ReadUint8()
	if !f.take(int(n)) {
		return nil
	}
	b, _ := f.cur.ReadBytes(int(n))

	return append([]byte(nil), b...)
}

// Dn reads a bit-encoded field: a u16 bit count followed by the packed
// bit bytes.
func (f *fieldReader) Dn() []byte {
	if !f.take(2) {
		return nil
	}
	bits, _ := f.cur.ReadUint16()
	n := (int(bits) + 7) / 8
	if !f.take(n) {
		return nil
	}
	b, _ := f.cur.ReadBytes(n)

	return append([]byte(nil), b...)
}

// KxU1 reads k consecutive unsigned bytes.
func (f *fieldReader) KxU1(k int) []uint8 {
	if k == 0 || !f.take(k) {
		return nil
	}
	b, _ := f.cur.ReadBytes(k)

	return append([]uint8(nil), b...)
}

// KxU2 reads k consecutive u16 values.
func (f *fieldReader) KxU2(k int) []uint16 {
	if k == 0 || !f.take(2*k) {
		return nil
	}
	v := make([]uint16, k)
	for i := range v {
		v[i], _ = f.cur.ReadUint16()
	}

	return v
}

// KxR4 reads k consecutive single-precision floats.
func (f *fieldReader) KxR4(k int) []float32 {
	if k == 0 || !f.take(4*k) {
		return nil
	}
	v := make([]float32, k)
	for i := range v {
		v[i], _ = f.cur.ReadFloat32()
	}

	return v
}

// KxN1 reads k nibbles packed two per byte, low nibble first.
func (f *fieldReader) KxN1(k int) []uint8 {
	nbytes := (k + 1) / 2
	if k == 0 || !f.take(nbytes) {
		return nil
	}
	v := make([]uint8, 0, nbytes*2)
	for i := 0; i < nbytes; i++ {
		b, _ := f.cur.ReadUint8()
		v = append(v, b&0x0f, b>>4)
	}

	return v[:k]
}

// Exhausted reports whether the body ran out before the last read.
func (f *fieldReader) Exhausted() bool {
	return f.exhausted
}
