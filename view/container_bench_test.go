package view

import (
	"testing"
)

var benchSink []byte

func BenchmarkSetInline(b *testing.B) {
	c, _ := New(TextCodec{}, WithInitialCapacity(1024))
	payload := []byte("short value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set(i&1023, payload)
	}
}

func BenchmarkSetReference(b *testing.B) {
	c, _ := New(TextCodec{}, WithInitialCapacity(1024))
	payload := []byte("a payload that is comfortably longer than the inline threshold")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i&1023 == 0 {
			// recycle data buffers so the pool doesn't grow with b.N
			_ = c.AllocateNew(1024)
		}
		_ = c.Set(i&1023, payload)
	}
}

func BenchmarkGetInline(b *testing.B) {
	c, _ := New(TextCodec{}, WithInitialCapacity(1024))
	for i := 0; i < 1024; i++ {
		_ = c.Set(i, []byte("short value"))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = c.GetBytesUnsafe(i & 1023)
	}
}

func BenchmarkGetReference(b *testing.B) {
	c, _ := New(TextCodec{}, WithInitialCapacity(1024))
	for i := 0; i < 1024; i++ {
		_ = c.Set(i, []byte("a payload that is comfortably longer than the inline threshold"))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = c.GetBytesUnsafe(i & 1023)
	}
}
