package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipDecompressor unwraps gzip containers, the most common shipping
// format for STDF files (.stdf.gz / .std.gz).
type GzipDecompressor struct{}

var _ Decompressor = (*GzipDecompressor)(nil)

// NewGzipDecompressor creates a new gzip decompressor.
func NewGzipDecompressor() GzipDecompressor {
	return GzipDecompressor{}
}

// Decompress decompresses a complete gzip stream.
func (GzipDecompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}

	return out, nil
}
