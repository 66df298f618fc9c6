package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestCheckEndianness(t *testing.T) {
	native := CheckEndianness()
	require.True(t, native == binary.LittleEndian || native == binary.BigEndian)

	if IsNativeLittleEndian() {
		require.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.True(t, CompareNativeEndian(GetBigEndianEngine()))
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
	}
}

func TestEngineRoundTrip(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := make([]byte, 4)
	engine.PutUint32(buf, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf))

	appended := engine.AppendUint32(nil, 0xDEADBEEF)
	require.Equal(t, buf, appended)
}
