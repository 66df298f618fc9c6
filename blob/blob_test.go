package blob

import (
	"fmt"
	"testing"

	"github.com/arloliu/varview/endian"
	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/format"
	"github.com/arloliu/varview/internal/hash"
	"github.com/arloliu/varview/section"
	"github.com/arloliu/varview/view"
	"github.com/stretchr/testify/require"
)

func buildTextContainer(t *testing.T) *view.Container[string] {
	t.Helper()

	c, err := view.New(view.TextCodec{})
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		switch {
		case i%7 == 4:
			require.NoError(t, c.SetNull(i))
		case i%2 == 0:
			require.NoError(t, c.SetValueSafe(i, fmt.Sprintf("v%d", i)))
		default:
			require.NoError(t, c.SetValueSafe(i, fmt.Sprintf("value %d long enough to live out of line", i)))
		}
	}
	require.NoError(t, c.SetValueCount(50))

	return c
}

func requireSameValues(t *testing.T, want, got *view.Container[string]) {
	t.Helper()

	require.Equal(t, want.ValueCount(), got.ValueCount())
	for i := 0; i < want.ValueCount(); i++ {
		require.Equal(t, want.IsSet(i), got.IsSet(i), "validity at %d", i)
		require.Equal(t, want.Get(i), got.Get(i), "value at %d", i)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := buildTextContainer(t)

	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			encoder, err := NewEncoder(WithCompression(ct))
			require.NoError(t, err)

			b, err := encoder.Encode(src)
			require.NoError(t, err)
			require.Equal(t, 50, b.ValueCount())
			require.Equal(t, format.KindText, b.Kind())
			require.Equal(t, ct, b.Compression())

			restored, err := Decode(b.Bytes(), view.TextCodec{})
			require.NoError(t, err)
			requireSameValues(t, src, restored)
		})
	}
}

func TestSnapshotRoundTripBigEndian(t *testing.T) {
	src := buildTextContainer(t)

	encoder, err := NewEncoder(WithBigEndian(), WithCompression(format.CompressionS2))
	require.NoError(t, err)

	b, err := encoder.Encode(src)
	require.NoError(t, err)

	d, err := NewDecoder(b.Bytes())
	require.NoError(t, err)
	require.True(t, d.Header().Flag.IsBigEndian())

	restored, err := Decode(b.Bytes(), view.TextCodec{})
	require.NoError(t, err)
	requireSameValues(t, src, restored)
}

func TestSnapshotColumnID(t *testing.T) {
	src := buildTextContainer(t)

	encoder, err := NewEncoder(WithColumnName("user.email"))
	require.NoError(t, err)

	b, err := encoder.Encode(src)
	require.NoError(t, err)
	require.Equal(t, hash.ID("user.email"), b.ColumnID())

	d, err := NewDecoder(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, hash.ID("user.email"), d.Header().ColumnID)
}

func TestSnapshotEmptyContainer(t *testing.T) {
	c, err := view.New(view.TextCodec{})
	require.NoError(t, err)

	encoder, err := NewEncoder()
	require.NoError(t, err)

	b, err := encoder.Encode(c)
	require.NoError(t, err)
	require.Equal(t, 0, b.ValueCount())

	restored, err := Decode(b.Bytes(), view.TextCodec{})
	require.NoError(t, err)
	require.Equal(t, 0, restored.ValueCount())
}

func TestSnapshotBinaryKind(t *testing.T) {
	c, err := view.New[[]byte](view.BytesCodec{})
	require.NoError(t, err)
	require.NoError(t, c.SetSafe(0, []byte{0x00, 0x01, 0xFF}))
	require.NoError(t, c.SetValueCount(1))

	encoder, err := NewEncoder()
	require.NoError(t, err)
	b, err := encoder.Encode(c)
	require.NoError(t, err)
	require.Equal(t, format.KindBinary, b.Kind())

	restored, err := Decode(b.Bytes(), view.BytesCodec{})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x01, 0xFF}, restored.Get(0))
}

func TestDecodeKindMismatch(t *testing.T) {
	src := buildTextContainer(t)

	encoder, err := NewEncoder()
	require.NoError(t, err)
	b, err := encoder.Encode(src)
	require.NoError(t, err)

	_, err = Decode(b.Bytes(), view.BytesCodec{})
	require.ErrorIs(t, err, errs.ErrCodecMismatch)
}

func TestDecoderRejectsCorruption(t *testing.T) {
	src := buildTextContainer(t)

	encoder, err := NewEncoder()
	require.NoError(t, err)
	b, err := encoder.Encode(src)
	require.NoError(t, err)

	t.Run("Truncated", func(t *testing.T) {
		_, err := NewDecoder(b.Bytes()[:section.HeaderSize+section.ChecksumSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidBlobSize)
	})

	t.Run("Flipped payload byte", func(t *testing.T) {
		data := append([]byte(nil), b.Bytes()...)
		data[section.HeaderSize+3] ^= 0xFF

		_, err := NewDecoder(data)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("Flipped trailer byte", func(t *testing.T) {
		data := append([]byte(nil), b.Bytes()...)
		data[len(data)-1] ^= 0xFF

		_, err := NewDecoder(data)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})
}

func TestDecodeRejectsNegativeSlotFields(t *testing.T) {
	src := buildTextContainer(t)

	encoder, err := NewEncoder()
	require.NoError(t, err)
	b, err := encoder.Encode(src)
	require.NoError(t, err)

	// Overwrite one 4-byte field of slot 1 (a reference slot) and recompute
	// the trailer so the blob is checksum-valid but carries a negative field.
	corrupt := func(fieldOffset int) []byte {
		data := append([]byte(nil), b.Bytes()...)
		slot := section.HeaderSize + 1*section.SlotSize
		for i := 0; i < 4; i++ {
			data[slot+fieldOffset+i] = 0xFF
		}
		body := data[:len(data)-section.ChecksumSize]
		endian.GetLittleEndianEngine().PutUint64(data[len(data)-section.ChecksumSize:], hash.Checksum(body))

		return data
	}

	t.Run("Negative buffer index", func(t *testing.T) {
		_, err := Decode(corrupt(8), view.TextCodec{})
		require.ErrorIs(t, err, errs.ErrInvalidSlot)
	})

	t.Run("Negative offset", func(t *testing.T) {
		_, err := Decode(corrupt(12), view.TextCodec{})
		require.ErrorIs(t, err, errs.ErrInvalidSlot)
	})
}

func TestEncoderInvalidCompression(t *testing.T) {
	_, err := NewEncoder(WithCompression(format.CompressionType(0x7F)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestDecodedContainerIsIndependent(t *testing.T) {
	src := buildTextContainer(t)

	encoder, err := NewEncoder()
	require.NoError(t, err)
	b, err := encoder.Encode(src)
	require.NoError(t, err)

	restored, err := Decode(b.Bytes(), view.TextCodec{})
	require.NoError(t, err)

	// Mutating the source after decode must not affect the restored copy.
	want := restored.Get(1)
	require.NoError(t, src.Set(1, []byte("changed to something else entirely, still long")))
	require.Equal(t, want, restored.Get(1))
}
