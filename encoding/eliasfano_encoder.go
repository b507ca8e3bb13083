package encoding

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/grambo/errs"
	"github.com/arloliu/grambo/internal/pool"
	"github.com/arloliu/grambo/section"
)

// MonotonicEncoder packs a non-decreasing uint64 sequence into the canonical
// Elias-Fano layout consumed by LookupMonotonic.
//
// Parameter choice follows the canonical writer: with universe u and element
// count n, the low-bit width is max(1, floor(log2(u/n))) and the high-bit
// width is max(0, floor(log2(u))+1 - lb); the degenerate u = 0 case packs a
// single low bit per element. Every quantum-th element boundary records the
// bit offset just past that element's high 1-bit, so lookups can skip ahead.
type MonotonicEncoder struct {
	quantum uint32
}

// NewMonotonicEncoder creates an encoder with the given quantum size, which
// must be a nonzero power of two. The same quantum must be passed to the
// lookup functions for lists produced by this encoder.
func NewMonotonicEncoder(quantum uint32) (*MonotonicEncoder, error) {
	if quantum == 0 || quantum&(quantum-1) != 0 {
		return nil, errs.ErrInvalidQuantum
	}

	return &MonotonicEncoder{quantum: quantum}, nil
}

// Encode packs values with the universe taken from the last (largest)
// element. The output is aligned to a 4-byte boundary.
func (e *MonotonicEncoder) Encode(values []uint64) ([]byte, error) {
	if len(values) == 0 {
		return nil, errs.ErrEmptyList
	}

	return e.EncodeWithUniverse(values, values[len(values)-1])
}

// EncodeWithUniverse packs values with an explicit universe size. The
// universe must be at least the last element; a larger universe widens the
// packed representation to leave headroom for id spaces shared across lists.
func (e *MonotonicEncoder) EncodeWithUniverse(values []uint64, universe uint64) ([]byte, error) {
	n := uint64(len(values))
	if n == 0 {
		return nil, errs.ErrEmptyList
	}
	if n >= 1<<32 {
		return nil, errs.ErrListTooLarge
	}
	if universe < values[n-1] {
		return nil, fmt.Errorf("universe %d below last element %d: %w", universe, values[n-1], errs.ErrNotMonotonic)
	}

	lb, hb := efWidths(universe, n)
	lowMask := (uint64(1) << lb) - 1

	low := bitWriter{}
	highSize := n + (universe >> lb)
	hbuf := make([]byte, (highSize+7)>>3)
	var hIndex []byte

	var last, hbit uint64
	for ix, item := range values {
		if item < last {
			return nil, fmt.Errorf("element %d: %w", ix, errs.ErrNotMonotonic)
		}
		low.append(item&lowMask, lb)
		// The high stream gets one 1-bit per element at position
		// high+ix; the 0-gaps between consecutive 1-bits encode the
		// increments of the high part.
		if hb > 0 {
			if ix > 0 && uint32(ix)%e.quantum == 0 {
				hIndex = engine.AppendUint32(hIndex, uint32(hbit+1))
			}
			hbit = (item >> lb) + uint64(ix)
			hbuf[hbit>>3] |= 1 << (hbit & 0x07)
		}
		last = item
	}

	bb := pool.GetBuildBuffer()
	defer pool.PutBuildBuffer(bb)

	hdr := section.MonoHeader{N: uint32(n), LowBits: uint16(lb), HighBits: uint16(hb)}
	bb.MustWrite(hdr.Bytes())
	bb.MustWrite(hIndex)
	bb.MustWrite(low.finish())
	// The canonical layout carries the high-bits buffer even when hb is
	// zero; lookups skip it but the chunk offsets of partitioned lists
	// account for it.
	bb.MustWrite(hbuf)
	bb.Pad(4)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// efWidths returns the canonical low/high bit widths for a list of n
// elements drawn from [0, universe].
func efWidths(universe, n uint64) (lb, hb uint32) {
	if universe == 0 {
		return 1, 0
	}
	lb = 1
	if universe/n >= 2 {
		lb = uint32(bits.Len64(universe/n)) - 1
	}
	total := uint32(bits.Len64(universe))
	if total > lb {
		hb = total - lb
	}

	return lb, hb
}
