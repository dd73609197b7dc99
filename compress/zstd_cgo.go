//go:build gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// Decompress decompresses a complete zstd stream through libzstd.
func (ZstdDecompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
