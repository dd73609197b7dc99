package compress

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func gzipCompress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func zstdCompress(t *testing.T, data []byte) []byte {
	t.Helper()

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()

	return enc.EncodeAll(data, nil)
}

func lz4Compress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	original := []byte("stdf record stream stand-in, long enough to compress")

	tests := []struct {
		name string
		data []byte
		want Decompressor
	}{
		{name: "gzip", data: gzipCompress(t, original), want: GzipDecompressor{}},
		{name: "zstd", data: zstdCompress(t, original), want: ZstdDecompressor{}},
		{name: "lz4", data: lz4Compress(t, original), want: LZ4Decompressor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, ok := Detect(tt.data)
			require.True(t, ok)
			require.IsType(t, tt.want, dec)

			out, err := dec.Decompress(tt.data)
			require.NoError(t, err)
			require.Equal(t, original, out)
		})
	}
}

func TestDetect_BareSTDF(t *testing.T) {
	// A bare STDF file starts with a record header, never a container
	// magic.
	header := []byte{0x02, 0x00, 0x00, 0x0a}
	_, ok := Detect(header)
	require.False(t, ok)
}

func TestDetect_ShortInput(t *testing.T) {
	_, ok := Detect([]byte{0x1f})
	require.False(t, ok)
	_, ok = Detect(nil)
	require.False(t, ok)
}

func TestGzipDecompress_Corrupted(t *testing.T) {
	data := gzipCompress(t, []byte("payload"))
	data[len(data)-1] ^= 0xff

	_, err := NewGzipDecompressor().Decompress(data)
	require.Error(t, err)
}

func TestZstdDecompress_Corrupted(t *testing.T) {
	data := append([]byte(nil), zstdMagic...)
	data = append(data, 0x00, 0x01, 0x02)

	_, err := NewZstdDecompressor().Decompress(data)
	require.Error(t, err)
}

func TestNoOpDecompressor(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := NewNoOpDecompressor().Decompress(data)
	require.NoError(t, err)
	require.Equal(t, data, out)
}
