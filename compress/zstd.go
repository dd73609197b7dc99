package compress

// ZstdDecompressor unwraps Zstandard containers.
//
// Two implementations exist behind build tags: the default pure-Go path
// (klauspost/compress/zstd) and an opt-in cgo path (valyala/gozstd,
// build tag "gozstd") for deployments that already link libzstd.
type ZstdDecompressor struct{}

var _ Decompressor = (*ZstdDecompressor)(nil)

// NewZstdDecompressor creates a new zstd decompressor.
func NewZstdDecompressor() ZstdDecompressor {
	return ZstdDecompressor{}
}
