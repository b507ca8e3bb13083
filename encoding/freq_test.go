package encoding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/grambo/errs"
)

func mustEncodeFrequency(t *testing.T, quantum uint32, ranks []uint32) []byte {
	t.Helper()
	enc, err := NewFrequencyEncoder(quantum)
	require.NoError(t, err)
	buf, err := enc.Encode(ranks)
	require.NoError(t, err)

	return buf
}

func TestNewFrequencyEncoder(t *testing.T) {
	_, err := NewFrequencyEncoder(0)
	require.ErrorIs(t, err, errs.ErrInvalidQuantum)
	_, err = NewFrequencyEncoder(24)
	require.ErrorIs(t, err, errs.ErrInvalidQuantum)
}

func TestFrequencyEncoder_Errors(t *testing.T) {
	enc, err := NewFrequencyEncoder(1024)
	require.NoError(t, err)

	t.Run("Empty stream", func(t *testing.T) {
		_, err := enc.Encode(nil)
		require.ErrorIs(t, err, errs.ErrEmptyList)
	})

	t.Run("Rank too large", func(t *testing.T) {
		_, err := enc.Encode([]uint32{1, 1 << 16})
		require.ErrorIs(t, err, errs.ErrRankTooLarge)
	})
}

func TestLookupFrequency(t *testing.T) {
	// Ranks 0, 5 and 7 each occur twice and 99 once, so the codeword table
	// orders them [0, 5, 7, 99] by first appearance and the stream encodes
	// codeword indices [0, 1, 2, 2, 1, 0, 3].
	ranks := []uint32{0, 5, 7, 7, 5, 0, 99}
	buf := mustEncodeFrequency(t, 4, ranks)

	t.Run("Reference positions", func(t *testing.T) {
		require.Equal(t, uint32(0), LookupFrequency(buf, 4, 0))
		require.Equal(t, uint32(7), LookupFrequency(buf, 4, 3))
		require.Equal(t, uint32(99), LookupFrequency(buf, 4, 6))
	})

	t.Run("Every position", func(t *testing.T) {
		for i, want := range ranks {
			require.Equal(t, want, LookupFrequency(buf, 4, uint32(i)), "index %d", i)
		}
	})
}

func TestLookupFrequency_SingleRank(t *testing.T) {
	// A stream where one rank dominates packs almost entirely into 1-bit
	// codewords.
	ranks := make([]uint32, 300)
	for i := range ranks {
		ranks[i] = 42
	}
	ranks[37] = 7
	buf := mustEncodeFrequency(t, 64, ranks)
	for i, want := range ranks {
		require.Equal(t, want, LookupFrequency(buf, 64, uint32(i)), "index %d", i)
	}
}

func TestLookupFrequency_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(555))

	for _, n := range []int{1, 5, 100, 5000} {
		ranks := make([]uint32, n)
		for i := range ranks {
			// A skewed distribution over a few dozen ranks, like real
			// frequency data.
			ranks[i] = uint32(rng.Intn(rng.Intn(40) + 1))
		}
		for _, q := range []uint32{4, 64, 1024} {
			buf := mustEncodeFrequency(t, q, ranks)
			for i, want := range ranks {
				require.Equal(t, want, LookupFrequency(buf, q, uint32(i)),
					"n=%d quantum=%d index=%d", n, q, i)
			}
		}
	}
}
