// Package compress provides the compression codecs used by container
// snapshot blobs.
//
// A snapshot's data section (view slots + validity bitmap + data buffer
// payloads) is compressed as a single unit. Slot arrays are highly
// repetitive (16-byte descriptors with shared prefixes and small lengths),
// so even fast codecs like S2 and LZ4 compress them well; Zstd trades CPU
// for a better ratio on the payload bytes.
package compress

import (
	"fmt"

	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/format"
)

// Compressor compresses a complete snapshot section.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a compressed snapshot section.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// result. It returns an error if the data is corrupted or was produced
	// by an incompatible algorithm.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
