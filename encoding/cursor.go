// Package encoding provides the low-level byte reading primitives used to
// decode STDF records.
//
// The central type is Cursor, a bounds-checked reader over an in-memory
// byte slice with a configurable endian engine. All multi-byte reads honor
// the cursor's current engine; the engine is mutable because STDF reveals
// the file's byte order only after the first record header has been read.
package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/stdf/endian"
	"github.com/arloliu/stdf/errs"
)

// Cursor wraps a byte slice with a read position and an endian engine.
//
// Every read consumes exactly the byte width of the requested type and
// fails with errs.ErrTruncated when fewer bytes remain. A failed read does
// not advance the position.
//
// Note: The Cursor is NOT thread-safe. Each cursor instance should be used
// by a single goroutine at a time.
type Cursor struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewCursor creates a cursor over data using the given endian engine.
//
// Parameters:
//   - data: Byte slice to read from (not copied; must not be mutated)
//   - engine: Endian engine for multi-byte reads
//
// Returns:
//   - *Cursor: New cursor positioned at the start of data
func NewCursor(data []byte, engine endian.EndianEngine) *Cursor {
	return &Cursor{data: data, engine: engine}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Pos returns the current read position from the start of the data.
func (c *Cursor) Pos() int {
	return c.pos
}

// Engine returns the cursor's current endian engine.
func (c *Cursor) Engine() endian.EndianEngine {
	return c.engine
}

// SetEngine switches the endian engine for all subsequent multi-byte
// reads. Called once after the FAR record's CPU_TYPE has been decoded.
func (c *Cursor) SetEngine(engine endian.EndianEngine) {
	c.engine = engine
}

func (c *Cursor) require(n int) error {
	if c.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrTruncated, n, c.pos, c.Remaining())
	}

	return nil
}

// ReadUint8 reads one unsigned byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++

	return v, nil
}

// ReadUint16 reads a 16-bit unsigned integer in the cursor's byte order.
func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := c.engine.Uint16(c.data[c.pos : c.pos+2])
	c.pos += 2

	return v, nil
}

// ReadUint32 reads a 32-bit unsigned integer in the cursor's byte order.
func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := c.engine.Uint32(c.data[c.pos : c.pos+4])
	c.pos += 4

	return v, nil
}

// ReadUint64 reads a 64-bit unsigned integer in the cursor's byte order.
func (c *Cursor) ReadUint64() (uint64, error) {
	if err := c.require(8); err != nil {
		return 0, err
	}
	v := c.engine.Uint64(c.data[c.pos : c.pos+8])
	c.pos += 8

	return v, nil
}

// ReadInt8 reads one signed byte.
func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint8()

	return int8(v), err
}

// ReadInt16 reads a 16-bit signed integer in the cursor's byte order.
func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()

	return int16(v), err
}

// ReadInt32 reads a 32-bit signed integer in the cursor's byte order.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()

	return int32(v), err
}

// ReadFloat32 reads an IEEE 754 single-precision float in the cursor's
// byte order.
func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()

	return math.Float32frombits(v), err
}

// ReadFloat64 reads an IEEE 754 double-precision float in the cursor's
// byte order.
func (c *Cursor) ReadFloat64() (float64, error) {
	v, err := c.ReadUint64()

	return math.Float64frombits(v), err
}

// ReadBytes reads exactly n bytes.
//
// The returned slice aliases the cursor's underlying data; callers that
// retain it beyond the data's lifetime must copy it.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n

	return v, nil
}

// ReadString reads an STDF C*n field: one length byte followed by that
// many character bytes, not terminated.
func (c *Cursor) ReadString() (string, error) {
	n, err := c.ReadUint8()
	if err != nil {
		return "", err
	}
	b, err := c.ReadBytes(int(n))
	if err != nil {
		// Restore position so a failed read is side-effect free.
		c.pos--
		return "", err
	}

	return string(b), nil
}

// Skip advances the read position by n bytes.
func (c *Cursor) Skip(n int) error {
	if err := c.require(n); err != nil {
		return err
	}
	c.pos += n

	return nil
}
