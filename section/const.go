package section

// Flag word layout for the packed uint32 at the start of the header.
//
// The low 16 bits carry option bits and the magic number; the next two bytes
// carry the codec kind and the compression type.
const (
	// Bit masks for the 16-bit options field
	EndiannessMask   = 0x0001 // endianness bit (bit 0): 0=little, 1=big
	ReservedBitsMask = 0x000E // reserved bits (bits 1-3), must be zero
	MagicNumberMask  = 0xFFF0 // magic number (bits 4-15)

	// MagicViewV1Opt is the version 1 magic number for view container
	// snapshot blobs.
	MagicViewV1Opt = 0xEC10
)

// Offsets and section sizes in the snapshot blob.
const (
	HeaderSize   = 32 // fixed header size in bytes
	SlotSize     = 16 // serialized view slot size in bytes
	ChecksumSize = 8  // xxHash64 trailer size in bytes
)
