package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Decompressor unwraps lz4 frame containers.
type LZ4Decompressor struct{}

var _ Decompressor = (*LZ4Decompressor)(nil)

// NewLZ4Decompressor creates a new lz4 frame decompressor.
func NewLZ4Decompressor() LZ4Decompressor {
	return LZ4Decompressor{}
}

// Decompress decompresses a complete lz4 frame stream.
func (LZ4Decompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return out, nil
}
