package compress

// ZstdCompressor compresses snapshot sections with Zstandard.
//
// Best ratio of the built-in codecs; suited to archived snapshots where
// blob size dominates and decode happens infrequently. Two implementations
// share this type: a cgo build backed by libzstd (gozstd) and a pure-Go
// fallback (klauspost/compress/zstd), selected at build time.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
