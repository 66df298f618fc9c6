package section

import (
	"testing"

	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/format"
	"github.com/stretchr/testify/require"
)

func TestNewViewHeader(t *testing.T) {
	header := NewViewHeader(format.KindText, format.CompressionZstd)

	require.True(t, header.Flag.IsLittleEndian())
	require.Equal(t, format.KindText, header.Flag.Kind())
	require.Equal(t, format.CompressionZstd, header.Flag.CompressionType())
	require.NoError(t, header.Flag.Validate())
}

func TestViewHeaderRoundTrip(t *testing.T) {
	t.Run("Little endian", func(t *testing.T) {
		header := NewViewHeader(format.KindBinary, format.CompressionNone)
		header.ColumnID = 0x0123456789ABCDEF
		header.ValueCount = 42
		header.BufferCount = 3
		header.DataSize = 12345

		data := header.Bytes()
		require.Len(t, data, HeaderSize)

		var parsed ViewHeader
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, *header, parsed)
	})

	t.Run("Big endian", func(t *testing.T) {
		header := NewViewHeader(format.KindText, format.CompressionLZ4)
		header.Flag.SetBigEndian()
		header.ColumnID = 7
		header.ValueCount = 100

		var parsed ViewHeader
		require.NoError(t, parsed.Parse(header.Bytes()))
		require.True(t, parsed.Flag.IsBigEndian())
		require.Equal(t, uint64(7), parsed.ColumnID)
		require.Equal(t, uint32(100), parsed.ValueCount)
	})
}

func TestViewHeaderParseErrors(t *testing.T) {
	t.Run("Wrong size", func(t *testing.T) {
		var header ViewHeader
		err := header.Parse(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Bad magic", func(t *testing.T) {
		good := NewViewHeader(format.KindBinary, format.CompressionNone)
		data := good.Bytes()
		data[1] = 0xFF

		var header ViewHeader
		err := header.Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Bad codec kind", func(t *testing.T) {
		good := NewViewHeader(format.KindBinary, format.CompressionNone)
		data := good.Bytes()
		data[2] = 0x7F

		var header ViewHeader
		err := header.Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Bad compression", func(t *testing.T) {
		good := NewViewHeader(format.KindBinary, format.CompressionNone)
		data := good.Bytes()
		data[3] = 0x7F

		var header ViewHeader
		err := header.Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Reserved bits", func(t *testing.T) {
		good := NewViewHeader(format.KindBinary, format.CompressionNone)
		data := good.Bytes()
		data[0] |= 0x02

		var header ViewHeader
		err := header.Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}
