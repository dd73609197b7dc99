// Package compress provides transparent decompression of STDF byte
// sources.
//
// Test floors rarely ship raw .stdf files; gzip is the de-facto transport
// wrapper, with zstd and lz4 appearing in newer flows. Detect sniffs the
// leading magic bytes and returns the matching decompressor, so callers
// can feed compressed files straight into the decoder.
package compress

// Decompressor decompresses a complete byte source.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// bytes. The returned slice is newly allocated and owned by the
	// caller; the input slice is not modified.
	Decompress(data []byte) ([]byte, error)
}

// Magic prefixes of the supported container formats.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect sniffs data's leading bytes and returns the decompressor for the
// container format it starts with. ok is false when data is not wrapped
// in a recognized container, including the common case of a bare STDF
// file (whose first bytes are a record header, never a container magic).
func Detect(data []byte) (dec Decompressor, ok bool) {
	switch {
	case hasPrefix(data, gzipMagic):
		return NewGzipDecompressor(), true
	case hasPrefix(data, zstdMagic):
		return NewZstdDecompressor(), true
	case hasPrefix(data, lz4Magic):
		return NewLZ4Decompressor(), true
	default:
		return nil, false
	}
}

func hasPrefix(data, magic []byte) bool {
	if len(data) < len(magic) {
		return false
	}
	for i, b := range magic {
		if data[i] != b {
			return false
		}
	}

	return true
}

// NoOpDecompressor passes data through untouched. Useful as a default
// when sniffing is disabled.
type NoOpDecompressor struct{}

var _ Decompressor = (*NoOpDecompressor)(nil)

// NewNoOpDecompressor creates a pass-through decompressor.
func NewNoOpDecompressor() NoOpDecompressor {
	return NoOpDecompressor{}
}

// Decompress returns the input data as-is, sharing its memory.
func (NoOpDecompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
