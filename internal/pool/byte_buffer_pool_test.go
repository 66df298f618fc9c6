package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte("hello"))
	require.Equal(t, 5, bb.Len())
	require.Equal(t, []byte("hello"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 16)
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("12345678"))

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	require.Equal(t, []byte("12345678"), bb.Bytes())
}

func TestByteBufferExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte("ab"))

	bb.ExtendOrGrow(10)
	require.Equal(t, 12, bb.Len())
	require.Equal(t, []byte("ab"), bb.Bytes()[:2])
	require.Equal(t, make([]byte, 10), bb.Bytes()[2:])
}

func TestByteBufferWriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", out.String())
}

func TestByteBufferPoolReuse(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len())
}

func TestByteBufferPoolDiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	bb := p.Get()
	bb.Grow(1024)
	p.Put(bb) // over threshold, dropped

	bb2 := p.Get()
	require.LessOrEqual(t, bb2.Cap(), 1024)
}

func TestDefaultSnapshotPool(t *testing.T) {
	bb := GetSnapshotBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	PutSnapshotBuffer(bb)
}
