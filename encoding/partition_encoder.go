package encoding

import (
	"github.com/arloliu/grambo/errs"
	"github.com/arloliu/grambo/internal/pool"
)

// PartitionedEncoder packs a non-decreasing uint64 sequence into the
// two-level partitioned layout consumed by LookupPartition: the sequence is
// split into chunks of outerQuantum elements, each chunk after the first is
// encoded as a monotonic list of residuals relative to its first element (the
// first chunk keeps its values unchanged), and the first values of the chunks
// after the first form an outer monotonic list of prefix sums.
type PartitionedEncoder struct {
	outerQuantum uint32
	inner        *MonotonicEncoder
}

// NewPartitionedEncoder creates an encoder with the given chunk size and
// inner Elias-Fano quantum, both nonzero powers of two. The same pair must
// be passed to the partition lookup functions.
func NewPartitionedEncoder(outerQuantum, innerQuantum uint32) (*PartitionedEncoder, error) {
	if outerQuantum == 0 || outerQuantum&(outerQuantum-1) != 0 {
		return nil, errs.ErrInvalidQuantum
	}
	inner, err := NewMonotonicEncoder(innerQuantum)
	if err != nil {
		return nil, err
	}

	return &PartitionedEncoder{outerQuantum: outerQuantum, inner: inner}, nil
}

// Encode packs values into a partitioned list. The output layout is
// [u32 chunks][u32 chunkIndex[chunks]] followed by the outer prefix-sum
// list and the chunks in order; chunkIndex entries are byte offsets
// relative to the start of the output. Aligned to a 4-byte boundary.
func (e *PartitionedEncoder) Encode(values []uint64) ([]byte, error) {
	if len(values) == 0 {
		return nil, errs.ErrEmptyList
	}
	if uint64(len(values)) >= 1<<32 {
		return nil, errs.ErrListTooLarge
	}

	// First-values of chunks after the zeroth; these become the outer list.
	var firsts []uint64
	// Byte offsets of the encoded chunks, relative to the merged chunk area.
	chunkIndex := []uint32{0}
	var merged []byte
	var prefix uint64
	var sq []uint64

	flush := func() error {
		b, err := e.inner.Encode(sq)
		if err != nil {
			return err
		}
		merged = append(merged, b...)

		return nil
	}

	for ix, item := range values {
		if ix > 0 && uint32(ix)%e.outerQuantum == 0 {
			// Close the current chunk and start a new one anchored at item.
			firsts = append(firsts, item)
			if err := flush(); err != nil {
				return nil, err
			}
			chunkIndex = append(chunkIndex, uint32(len(merged)))
			prefix = item
			sq = sq[:0]
		}
		if item < prefix {
			return nil, errs.ErrNotMonotonic
		}
		sq = append(sq, item-prefix)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	// A single-chunk list has no prefix sums; lookups never consult the
	// outer list for chunk zero, so a one-element placeholder keeps the
	// layout well formed.
	if len(firsts) == 0 {
		firsts = []uint64{0}
	}
	outer, err := e.inner.Encode(firsts)
	if err != nil {
		return nil, err
	}

	bb := pool.GetBuildBuffer()
	defer pool.PutBuildBuffer(bb)

	// Chunk offsets are relative to the buffer start: past the chunk count,
	// the index array and the outer list.
	offset := uint32(4 + 4*len(chunkIndex) + len(outer))
	var hdr []byte
	hdr = engine.AppendUint32(hdr, uint32(len(chunkIndex)))
	for _, pos := range chunkIndex {
		hdr = engine.AppendUint32(hdr, pos+offset)
	}
	bb.MustWrite(hdr)
	bb.MustWrite(outer)
	bb.MustWrite(merged)
	bb.Pad(4)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}
