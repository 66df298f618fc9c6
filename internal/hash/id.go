// Package hash wraps xxHash64 for column identification and blob integrity.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a column name.
//
// Snapshot blobs store the hashed name rather than the name itself, keeping
// the header fixed-size while still letting readers match columns by name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of a byte payload.
//
// Used for the snapshot blob integrity trailer.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
