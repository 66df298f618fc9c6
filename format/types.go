package format

type (
	CodecKind       uint8
	CompressionType uint8
)

const (
	KindBinary CodecKind = 0x1 // KindBinary represents raw variable-length binary values.
	KindText   CodecKind = 0x2 // KindText represents UTF-8 text values.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k CodecKind) String() string {
	switch k {
	case KindBinary:
		return "Binary"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
