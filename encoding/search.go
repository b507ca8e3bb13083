package encoding

import "github.com/arloliu/grambo/section"

// SearchMonotonic performs a binary search for target over the half-open
// index range [lo, hi) of the monotonic list packed at buf. It returns an
// index whose decoded value equals target, or section.NotFound if no element
// in the range matches.
//
// The list is non-decreasing; when duplicates exist any matching index may
// be returned. Index domains stay far below 2^31, so the (lo+hi)/2 midpoint
// cannot overflow.
func SearchMonotonic(buf []byte, quantum, lo, hi uint32, target uint64) uint32 {
	for {
		if lo >= hi {
			return section.NotFound
		}
		mid := (lo + hi) / 2
		v := LookupMonotonic(buf, quantum, mid)
		switch {
		case v == target:
			return mid
		case v > target:
			hi = mid
		default:
			lo = mid + 1
		}
	}
}

// SearchMonotonicPrefix searches a difference-encoded sub-range: values in
// [lo, hi) are stored relative to element lo-1, so the absolute target is
// target plus that element. With lo = 0 it is identical to SearchMonotonic.
func SearchMonotonicPrefix(buf []byte, quantum, lo, hi uint32, target uint64) uint32 {
	if lo >= hi {
		return section.NotFound
	}
	if lo > 0 {
		target += LookupMonotonic(buf, quantum, lo-1)
	}

	return SearchMonotonic(buf, quantum, lo, hi, target)
}

// SearchPartition is the partitioned-list counterpart of SearchMonotonic.
func SearchPartition(buf []byte, outerQuantum, innerQuantum, lo, hi uint32, target uint64) uint32 {
	for {
		if lo >= hi {
			return section.NotFound
		}
		mid := (lo + hi) / 2
		v := LookupPartition(buf, outerQuantum, innerQuantum, mid)
		switch {
		case v == target:
			return mid
		case v > target:
			hi = mid
		default:
			lo = mid + 1
		}
	}
}

// SearchPartitionPrefix is the partitioned-list counterpart of
// SearchMonotonicPrefix.
func SearchPartitionPrefix(buf []byte, outerQuantum, innerQuantum, lo, hi uint32, target uint64) uint32 {
	if lo >= hi {
		return section.NotFound
	}
	if lo > 0 {
		target += LookupPartition(buf, outerQuantum, innerQuantum, lo-1)
	}

	return SearchPartition(buf, outerQuantum, innerQuantum, lo, hi, target)
}
