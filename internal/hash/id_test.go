package hash

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	require.Equal(t, ID("user.name"), ID("user.name"))
	require.NotEqual(t, ID("user.name"), ID("user.email"))
	require.Equal(t, xxhash.Sum64String("user.name"), ID("user.name"))
}

func TestChecksum(t *testing.T) {
	data := []byte("the quick brown fox")

	require.Equal(t, Checksum(data), Checksum(data))
	require.NotEqual(t, Checksum(data), Checksum(data[:len(data)-1]))
	require.Equal(t, xxhash.Sum64(data), Checksum(data))
}
