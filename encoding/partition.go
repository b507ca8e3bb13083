package encoding

import (
	"fmt"

	"github.com/arloliu/grambo/errs"
	"github.com/arloliu/grambo/section"
)

// LookupPartition returns element index of the partitioned monotonic list
// packed at buf. outerQuantum is the chunk size the writer used;
// innerQuantum is the Elias-Fano quantum of the outer and inner lists.
//
// Element i lives in chunk q = i/outerQuantum at slot r = i%outerQuantum;
// its value is the chunk's prefix sum (outer[q-1], with outer[-1] = 0) plus
// the residual stored in the inner chunk list.
func LookupPartition(buf []byte, outerQuantum, innerQuantum, index uint32) uint64 {
	q := index / outerQuantum
	r := index % outerQuantum
	chunks := engine.Uint32(buf[0:4])
	outer := buf[4*(1+chunks):]
	inner := buf[engine.Uint32(buf[4+4*q:]):]
	var prefix uint64
	if q != 0 {
		prefix = LookupMonotonic(outer, innerQuantum, q-1)
	}

	return prefix + LookupMonotonic(inner, innerQuantum, r)
}

// LookupPairPartition returns elements index and index+1 of the partitioned
// list. When index is the last slot of its chunk the pair spans a chunk
// boundary and two independent lookups are issued; otherwise both elements
// come from the same inner chunk in one pass.
func LookupPairPartition(buf []byte, outerQuantum, innerQuantum, index uint32) (uint64, uint64) {
	r := index % outerQuantum
	if r == outerQuantum-1 {
		v1 := LookupPartition(buf, outerQuantum, innerQuantum, index)
		v2 := LookupPartition(buf, outerQuantum, innerQuantum, index+1)

		return v1, v2
	}

	q := index / outerQuantum
	chunks := engine.Uint32(buf[0:4])
	outer := buf[4*(1+chunks):]
	inner := buf[engine.Uint32(buf[4+4*q:]):]
	var prefix uint64
	if q != 0 {
		prefix = LookupMonotonic(outer, innerQuantum, q-1)
	}
	v1, v2 := LookupPairMonotonic(inner, innerQuantum, r)

	return prefix + v1, prefix + v2
}

// ValidatePartition is the opt-in debug check for a packed partitioned list.
// It validates both quanta, checks every chunk offset stays inside buf, runs
// ValidateMonotonic on each inner chunk, and verifies the assembled sequence
// never decreases across chunk boundaries.
func ValidatePartition(buf []byte, outerQuantum, innerQuantum uint32) error {
	if outerQuantum == 0 || outerQuantum&(outerQuantum-1) != 0 {
		return errs.ErrInvalidQuantum
	}
	var h section.PartitionHeader
	if err := h.Parse(buf); err != nil {
		return err
	}

	var prev uint64
	for q := uint32(0); q < h.Chunks; q++ {
		off := engine.Uint32(buf[4+4*q:])
		if off >= uint32(len(buf)) {
			return fmt.Errorf("chunk %d offset %d out of range: %w", q, off, errs.ErrInvalidListHeader)
		}
		if err := ValidateMonotonic(buf[off:], innerQuantum); err != nil {
			return fmt.Errorf("chunk %d: %w", q, err)
		}

		var mh section.MonoHeader
		if err := mh.Parse(buf[off:]); err != nil {
			return err
		}
		for r := uint32(0); r < mh.N; r++ {
			v := LookupPartition(buf, outerQuantum, innerQuantum, q*outerQuantum+r)
			if v < prev {
				return fmt.Errorf("element %d decodes to %d after %d: %w",
					q*outerQuantum+r, v, prev, errs.ErrNotMonotonic)
			}
			prev = v
		}
	}

	return nil
}
