package encoding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/grambo/section"
)

func TestSearchMonotonic(t *testing.T) {
	buf := mustEncodeMonotonic(t, 4, refSequence)

	t.Run("Hits", func(t *testing.T) {
		require.Equal(t, uint32(6), SearchMonotonic(buf, 4, 0, 8, 100))
		for i, v := range refSequence {
			require.Equal(t, uint32(i), SearchMonotonic(buf, 4, 0, 8, v))
		}
	})

	t.Run("Misses", func(t *testing.T) {
		require.Equal(t, section.NotFound, SearchMonotonic(buf, 4, 0, 8, 5))
		require.Equal(t, section.NotFound, SearchMonotonic(buf, 4, 0, 8, 1001))
	})

	t.Run("Restricted range", func(t *testing.T) {
		// Element 1 exists but lies outside [3, 8).
		require.Equal(t, section.NotFound, SearchMonotonic(buf, 4, 3, 8, 1))
		require.Equal(t, uint32(6), SearchMonotonic(buf, 4, 3, 8, 100))
	})

	t.Run("Empty range", func(t *testing.T) {
		require.Equal(t, section.NotFound, SearchMonotonic(buf, 4, 5, 5, 12))
		require.Equal(t, section.NotFound, SearchMonotonic(buf, 4, 6, 2, 12))
	})
}

func TestSearchMonotonicPrefix(t *testing.T) {
	buf := mustEncodeMonotonic(t, 4, refSequence)

	t.Run("Zero lower bound delegates", func(t *testing.T) {
		require.Equal(t, uint32(3), SearchMonotonicPrefix(buf, 4, 0, 8, 10))
	})

	t.Run("Adds preceding element", func(t *testing.T) {
		// Values in [lo, hi) are searched relative to element lo-1.
		for lo := uint32(1); lo < 8; lo++ {
			for i := lo; i < 8; i++ {
				rel := refSequence[i] - refSequence[lo-1]
				require.Equal(t, SearchMonotonic(buf, 4, lo, 8, refSequence[i]),
					SearchMonotonicPrefix(buf, 4, lo, 8, rel),
					"lo=%d i=%d", lo, i)
			}
		}
	})

	t.Run("Empty range", func(t *testing.T) {
		require.Equal(t, section.NotFound, SearchMonotonicPrefix(buf, 4, 3, 3, 0))
	})
}

func TestSearchPartition(t *testing.T) {
	buf := mustEncodePartitioned(t, 4, 2, refSequence)

	t.Run("Hits and misses", func(t *testing.T) {
		for i, v := range refSequence {
			require.Equal(t, uint32(i), SearchPartition(buf, 4, 2, 0, 8, v))
		}
		require.Equal(t, section.NotFound, SearchPartition(buf, 4, 2, 0, 8, 5))
	})

	t.Run("Prefix variant", func(t *testing.T) {
		for lo := uint32(1); lo < 8; lo++ {
			for i := lo; i < 8; i++ {
				rel := refSequence[i] - refSequence[lo-1]
				require.Equal(t, uint32(i), SearchPartitionPrefix(buf, 4, 2, lo, 8, rel))
			}
		}
		require.Equal(t, section.NotFound, SearchPartitionPrefix(buf, 4, 2, 2, 2, 0))
	})
}

func TestSearchRandom(t *testing.T) {
	// Strictly increasing values so every present value maps to exactly one
	// index, and gaps are guaranteed misses.
	rng := rand.New(rand.NewSource(4242))
	values := make([]uint64, 500)
	var cur uint64
	for i := range values {
		cur += uint64(rng.Intn(20))*2 + 2
		values[i] = cur
	}
	n := uint32(len(values))
	buf := mustEncodeMonotonic(t, 64, values)

	for i, v := range values {
		require.Equal(t, uint32(i), SearchMonotonic(buf, 64, 0, n, v))
		// Odd values never occur.
		require.Equal(t, section.NotFound, SearchMonotonic(buf, 64, 0, n, v+1))
	}
}
