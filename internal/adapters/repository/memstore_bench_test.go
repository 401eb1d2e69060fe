package repository

import (
	"context"
	"math/rand"
	"testing"
)

func seedStore(b *testing.B, users int) *MemStore {
	b.Helper()
	s := NewMemStore(context.Background())
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < users; i++ {
		if _, err := s.UpdateBest(context.Background(), "bench", int64(i+1), rng.Float64()*1000); err != nil {
			b.Fatal(err)
		}
	}
	return s
}

func BenchmarkUpdateBest(b *testing.B) {
	s := seedStore(b, 10000)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := int64(rng.Intn(10000) + 1)
		if _, err := s.UpdateBest(ctx, "bench", id, rng.Float64()*1000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTopN(b *testing.B) {
	s := seedStore(b, 10000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.TopN(ctx, "bench", 10); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHistory(b *testing.B) {
	s := seedStore(b, 10000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.History(ctx, int64(i%10000+1)); err != nil {
			b.Fatal(err)
		}
	}
}
