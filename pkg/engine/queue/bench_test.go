package queue

import (
	"context"
	"testing"
)

// BenchmarkPushPop measures single-threaded queue throughput
func BenchmarkPushPop(b *testing.B) {
	q := New[int](1024)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Push(ctx, i)
		q.Pop(ctx)
	}
}

// BenchmarkTryPushTryPop measures the non-blocking fast path
func BenchmarkTryPushTryPop(b *testing.B) {
	q := New[int](1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.TryPush(i)
		q.TryPop()
	}
}

// BenchmarkConcurrentPushPop measures contended throughput
func BenchmarkConcurrentPushPop(b *testing.B) {
	q := New[int](1024)
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			q.Push(ctx, 1)
			q.Pop(ctx)
		}
	})
}
