package benchmarks

import (
	"fmt"
	"testing"
	"time"

	"github.com/ldplus/collsync/internal/core/domain"
	"github.com/ldplus/collsync/internal/core/services"
)

func productGID(i int) string {
	return fmt.Sprintf("gid://shopify/Product/%d", i)
}

func membership(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = productGID(i)
	}
	return ids
}

func BenchmarkDiffMembership(b *testing.B) {
	sizes := []int{10, 100, 1000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			previous := membership(size)
			// Half the membership churns: the tail drops out, a new tail
			// joins.
			current := make([]string, 0, size)
			current = append(current, previous[:size/2]...)
			for i := size; i < size+size/2; i++ {
				current = append(current, productGID(i))
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = domain.DiffMembership(previous, current)
			}
		})
	}
}

func BenchmarkDiffMembership_NoChange(b *testing.B) {
	ids := membership(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.DiffMembership(ids, ids)
	}
}

func BenchmarkSortMoves(b *testing.B) {
	sizes := []int{10, 100, 1000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			members := make([]domain.CollectionMember, size)
			for i := range members {
				members[i] = domain.CollectionMember{
					ID:    productGID(i),
					Title: fmt.Sprintf("Product %d", i),
				}
				// Every tenth member has no date and sorts last.
				if i%10 != 0 {
					date, _ := domain.ParseDate(fmt.Sprintf("2026-%02d-%02d", 1+i%12, 1+i%28))
					members[i].ExpiresOn = &date
				}
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = services.SortMoves(members)
			}
		})
	}
}

func BenchmarkDateExpired(b *testing.B) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		b.Fatal(err)
	}
	date, _ := domain.ParseDate("2026-08-28")
	now := time.Now().In(loc)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = date.Expired(now, 24, loc)
	}
}
