// Package endian provides byte order utilities for STDF decoding.
//
// STDF encodes multi-byte numeric fields in the byte order of the tester
// CPU that wrote the file, announced by the CPU_TYPE field of the leading
// FAR record. This package maps CPU_TYPE codes onto an EndianEngine and
// supplies the little-endian fallback used when no FAR is present.
//
// The returned EndianEngine instances are immutable, stateless and safe
// for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations. It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CPU_TYPE codes defined by the STDF V4 specification.
const (
	CPUTypeVAX uint8 = 0 // DEC PDP-11 / VAX; little-endian field order
	CPUTypeSun uint8 = 1 // Sun 1/2/3/4 series; big-endian field order
	CPUTypeX86 uint8 = 2 // 80x86 and compatible; little-endian field order
)

// FromCPUType returns the engine matching an STDF CPU_TYPE code.
//
// Unknown codes return the little-endian fallback with ok=false; callers
// are expected to surface a warning and carry on.
func FromCPUType(cpuType uint8) (engine EndianEngine, ok bool) {
	switch cpuType {
	case CPUTypeVAX, CPUTypeX86:
		return binary.LittleEndian, true
	case CPUTypeSun:
		return binary.BigEndian, true
	default:
		return binary.LittleEndian, false
	}
}

// GetLittleEndianEngine returns the little-endian engine. This is the
// documented fallback byte order for files without a usable FAR record,
// and the byte order of record header length fields regardless of body
// byte order.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
