package view

// Validity bitmap helpers. One bit per logical index, LSB-first within each
// byte, bit clear = null. The bitmap is independent of slot contents: a null
// slot's descriptor bytes are unspecified and must never be dereferenced.

// validityBytesFor returns the bitmap size in bytes covering n indices.
func validityBytesFor(n int) int {
	return (n + 7) / 8
}

// bitIsSet reports whether bit i is set.
func bitIsSet(bits []byte, i int) bool {
	return bits[i>>3]&(1<<(uint(i)&7)) != 0
}

// setBit marks index i as non-null.
func setBit(bits []byte, i int) {
	bits[i>>3] |= 1 << (uint(i) & 7)
}

// clearBit marks index i as null.
func clearBit(bits []byte, i int) {
	bits[i>>3] &^= 1 << (uint(i) & 7)
}

// copyBitRange copies length bits from src starting at srcStart into dst
// starting at bit 0. dst bits beyond the copied range are left untouched;
// callers hand in a zeroed bitmap.
func copyBitRange(dst, src []byte, srcStart, length int) {
	for i := 0; i < length; i++ {
		if bitIsSet(src, srcStart+i) {
			setBit(dst, i)
		}
	}
}
