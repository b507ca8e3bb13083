package encoding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRetrieve(t *testing.T) {
	buf := []byte{0b10100101, 0b00000010, 0xFF, 0x00, 0xAB}

	t.Run("Zero width", func(t *testing.T) {
		require.Equal(t, uint32(0), Retrieve(buf, 0, 0))
		require.Equal(t, uint32(0), Retrieve(buf, 13, 0))
	})

	t.Run("Within one byte", func(t *testing.T) {
		require.Equal(t, uint32(1), Retrieve(buf, 0, 1))
		require.Equal(t, uint32(0b101), Retrieve(buf, 0, 3))
		require.Equal(t, uint32(0b10100101), Retrieve(buf, 0, 8))
		require.Equal(t, uint32(0b1010), Retrieve(buf, 4, 4))
	})

	t.Run("Across byte boundaries", func(t *testing.T) {
		// Bits 6..10 are 0,1 (end of byte 0) then 0,1,0 (start of byte 1).
		require.Equal(t, uint32(0b01010), Retrieve(buf, 6, 5))
		require.Equal(t, uint32(0b00000010_10100101), Retrieve(buf, 0, 16))
	})

	t.Run("Full 32 bits", func(t *testing.T) {
		require.Equal(t, uint32(0x00FF02A5), Retrieve(buf, 0, 32))
		// Starting mid-byte forces a five-byte read; the fifth byte's top
		// bit falls off the top of the 32-bit accumulator.
		require.Equal(t, uint32(0x5601FE05), Retrieve(buf, 7, 32))
	})
}

func TestBitselect(t *testing.T) {
	// The k-th set bit of [0b10100101, 0b00000010], counting k from 1.
	buf := []byte{0b10100101, 0b00000010}
	expected := []uint32{0, 2, 5, 7, 9}
	for k, want := range expected {
		require.Equal(t, want, Bitselect(buf, uint32(k+1)), "set bit %d", k+1)
	}
}

func TestRetrieveBitselectDuality(t *testing.T) {
	// For any set of bit positions, Bitselect recovers each position and
	// Retrieve reads a 1 there.
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		buf := make([]byte, 64)
		positions := map[uint32]bool{}
		for i := 0; i < 40; i++ {
			positions[uint32(rng.Intn(len(buf) * 8))] = true
		}
		sorted := make([]uint32, 0, len(positions))
		for p := range positions {
			sorted = append(sorted, p)
		}
		for i := range sorted {
			for j := i + 1; j < len(sorted); j++ {
				if sorted[j] < sorted[i] {
					sorted[i], sorted[j] = sorted[j], sorted[i]
				}
			}
		}
		for _, p := range sorted {
			buf[p>>3] |= 1 << (p & 0x07)
		}

		for j, p := range sorted {
			require.Equal(t, p, Bitselect(buf, uint32(j+1)))
			require.Equal(t, uint32(1), Retrieve(buf, p, 1))
		}
	}
}

func TestBitWriterRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	w := bitWriter{}
	type field struct {
		v     uint64
		width uint32
	}
	var fields []field
	for i := 0; i < 500; i++ {
		width := uint32(rng.Intn(32) + 1)
		v := rng.Uint64() & ((uint64(1) << width) - 1)
		fields = append(fields, field{v: v, width: width})
		w.append(v, width)
	}
	buf := w.finish()

	var at uint32
	for i, f := range fields {
		require.Equal(t, uint32(f.v), Retrieve(buf, at, f.width), "field %d", i)
		at += f.width
	}
}

func TestBitWriterWideValues(t *testing.T) {
	// Values wider than 32 bits are split internally; the packed stream
	// must still read back LSB-first.
	w := bitWriter{}
	w.append(0xDEADBEEFCAFE, 48)
	w.append(1, 1)
	buf := w.finish()

	require.Equal(t, uint32(0xBEEFCAFE), Retrieve(buf, 0, 32))
	require.Equal(t, uint32(0xDEAD), Retrieve(buf, 32, 16))
	require.Equal(t, uint32(1), Retrieve(buf, 48, 1))
}
