package encoding

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/grambo/endian"
	"github.com/arloliu/grambo/errs"
	"github.com/arloliu/grambo/section"
)

var engine = endian.GetLittleEndianEngine()

// monoStreams parses the fixed header of a packed monotonic list and returns
// the element count, the low/high bit widths, and the packed bit streams
// (low bits followed by high bits) past the header and quantum index.
func monoStreams(buf []byte, quantum uint32) (n, lb, hb uint32, stream []byte) {
	n = engine.Uint32(buf[0:4])
	lb = uint32(engine.Uint16(buf[4:6]))
	hb = uint32(engine.Uint16(buf[6:8]))
	var idxBytes uint32
	if hb != 0 {
		idxBytes = (n - 1) / quantum * 4
	}

	return n, lb, hb, buf[section.MonoHeaderSize+idxBytes:]
}

// LookupMonotonic returns element index of the monotonic (Elias-Fano) list
// packed at the start of buf. quantum is the high-bits index sampling period
// the writer used for this list; any power of two is accepted.
//
// The list layout is [u32 n][u16 lb][u16 hb][u32 hbufIdx[(n-1)/Q]] followed
// by ceil(n*lb/8) bytes of packed low bits and the unary-coded high bits.
// Each element is (high << lb) | low. The call is a pure function of buf and
// its arguments; an out-of-range index is undefined behavior.
func LookupMonotonic(buf []byte, quantum, index uint32) uint64 {
	n, lb, hb, stream := monoStreams(buf, quantum)

	lowMask := (uint64(1) << lb) - 1
	bitIdx := index * lb
	by := bitIdx >> 3
	off := bitIdx & 0x07
	// The low part can straddle bytes both because lb > 8 and because the
	// first bit sits at a nonzero position within its byte.
	end := lb + off
	var acc uint64
	var cnt uint32
	for {
		acc |= uint64(stream[by]) << cnt
		cnt += 8
		if cnt >= end {
			break
		}
		by++
	}
	low := (acc >> off) & lowMask
	if hb == 0 {
		return low
	}

	// High part: find the index-th 1-bit of the unary stream. The number of
	// 0-bits passed on the way is the value of the high part.
	var high uint64
	by = (n*lb + 7) >> 3
	hpos := index
	mask := byte(0xFF)
	if index >= quantum {
		q := index / quantum
		// hbufIdx[q-1] holds the bit offset just past the 1-bit of element
		// q*quantum-1. Skip whole bytes, mask out the bits already counted
		// within the current byte, and seed the 0-bit count up to the byte
		// boundary. The seed may transiently underflow; uint64 wraparound
		// cancels exactly against the masked-bit compensation below.
		hbit := engine.Uint32(buf[section.MonoHeaderSize+4*(q-1):])
		by += hbit >> 3
		mask = 0xFF ^ byte((1<<(hbit&0x07))-1)
		hpos -= q * quantum
		high = uint64(hbit&^0x07) - uint64(q)*uint64(quantum)
	}
	for {
		bcnt := uint32(bits.OnesCount8(stream[by] & mask))
		if hpos < bcnt {
			// The target 1-bit is somewhere in this byte.
			break
		}
		mask = 0xFF
		high += uint64(8 - bcnt)
		hpos -= bcnt
		by++
	}
	// Walk the stopping byte LSB-first to the target 1-bit.
	cur := uint32(stream[by] & mask)
	for {
		if cur&1 != 0 {
			if hpos == 0 {
				break
			}
			hpos--
		} else {
			high++
		}
		cur >>= 1
	}

	return (high << lb) | low
}

// LookupPairMonotonic returns elements index and index+1 of the monotonic
// list in a single pass. The low path keeps reading lb more bits after the
// first value; the high path reuses the byte scan state from locating the
// index-th 1-bit to find the next one.
//
// index+1 must be a valid element index.
func LookupPairMonotonic(buf []byte, quantum, index uint32) (uint64, uint64) {
	n, lb, hb, stream := monoStreams(buf, quantum)

	lowMask := (uint64(1) << lb) - 1
	bitIdx := index * lb
	by := bitIdx >> 3
	off := bitIdx & 0x07
	end := lb + off
	var acc uint64
	var cnt uint32
	for {
		acc |= uint64(stream[by]) << cnt
		cnt += 8
		if cnt >= end {
			break
		}
		by++
	}
	acc >>= off
	low1 := acc & lowMask
	// Continue into the second element's low bits.
	acc >>= lb
	cnt -= off + lb
	for cnt < lb {
		by++
		acc |= uint64(stream[by]) << cnt
		cnt += 8
	}
	low2 := acc & lowMask
	if hb == 0 {
		return low1, low2
	}

	var high1, high2 uint64
	by = (n*lb + 7) >> 3
	hpos := index
	mask := byte(0xFF)
	if index >= quantum {
		q := index / quantum
		hbit := engine.Uint32(buf[section.MonoHeaderSize+4*(q-1):])
		by += hbit >> 3
		mask = 0xFF ^ byte((1<<(hbit&0x07))-1)
		hpos -= q * quantum
		high1 = uint64(hbit&^0x07) - uint64(q)*uint64(quantum)
	}
	bcnt := uint32(bits.OnesCount8(stream[by] & mask))
	for {
		if hpos < bcnt {
			break
		}
		high1 += uint64(8 - bcnt)
		hpos -= bcnt
		by++
		bcnt = uint32(bits.OnesCount8(stream[by]))
		mask = 0xFF
	}
	// The second element's 1-bit is the next one after the first; continue
	// from the same byte with the same masked view.
	high2 = high1
	by2 := by
	hpos2 := hpos + 1
	mask2 := mask
	for {
		if hpos2 < bcnt {
			break
		}
		high2 += uint64(8 - bcnt)
		hpos2 -= bcnt
		by2++
		bcnt = uint32(bits.OnesCount8(stream[by2]))
		mask2 = 0xFF
	}
	cur := uint32(stream[by] & mask)
	for {
		if cur&1 != 0 {
			if hpos == 0 {
				break
			}
			hpos--
		} else {
			high1++
		}
		cur >>= 1
	}
	cur = uint32(stream[by2] & mask2)
	for {
		if cur&1 != 0 {
			if hpos2 == 0 {
				break
			}
			hpos2--
		} else {
			high2++
		}
		cur >>= 1
	}

	return (high1 << lb) | low1, (high2 << lb) | low2
}

// ValidateMonotonic is the opt-in debug check for a packed monotonic list.
// It validates the header bounds and decodes every element, verifying that
// the sequence never decreases. It is far too slow for lookup paths.
func ValidateMonotonic(buf []byte, quantum uint32) error {
	if quantum == 0 || quantum&(quantum-1) != 0 {
		return errs.ErrInvalidQuantum
	}
	var h section.MonoHeader
	if err := h.Parse(buf); err != nil {
		return err
	}
	if h.N == 0 {
		return errs.ErrEmptyList
	}

	var prev uint64
	for i := uint32(0); i < h.N; i++ {
		v := LookupMonotonic(buf, quantum, i)
		if v < prev {
			return fmt.Errorf("element %d decodes to %d after %d: %w", i, v, prev, errs.ErrNotMonotonic)
		}
		prev = v
	}

	return nil
}
