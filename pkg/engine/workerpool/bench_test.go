package workerpool

import (
	"context"
	"fmt"
	"testing"
)

// BenchmarkSubmit measures the overhead of task submission and execution
func BenchmarkSubmit(b *testing.B) {
	pool := New(4, 1000)
	defer pool.Shutdown()

	// Consume results in background
	go func() {
		for range pool.Results() {
		}
	}()

	task := TaskFunc(func(ctx context.Context) (any, error) {
		return nil, nil
	})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			pool.Submit(task)
		}
	})
}

// BenchmarkSubmitWithWork measures performance with actual CPU work
func BenchmarkSubmitWithWork(b *testing.B) {
	pool := New(4, 1000)
	defer pool.Shutdown()

	go func() {
		for range pool.Results() {
		}
	}()

	task := TaskFunc(func(ctx context.Context) (any, error) {
		sum := 0
		for i := 0; i < 1000; i++ {
			sum += i
		}
		return sum, nil
	})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			pool.Submit(task)
		}
	})
}

// BenchmarkWorkerCounts compares throughput across pool sizes
func BenchmarkWorkerCounts(b *testing.B) {
	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("%dworkers", workers), func(b *testing.B) {
			pool := New(workers, 1000)
			defer pool.Shutdown()

			go func() {
				for range pool.Results() {
				}
			}()

			task := TaskFunc(func(ctx context.Context) (any, error) {
				return nil, nil
			})

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				pool.Submit(task)
			}
		})
	}
}
