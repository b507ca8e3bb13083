package section

import "github.com/arloliu/grambo/errs"

// MonoHeader describes a packed monotonic (Elias-Fano) list.
//
// Layout: [u32 n][u16 lb][u16 hb][u32 hbufIdx[(n-1)/Q]], immediately followed
// by ceil(n*lb/8) bytes of packed low bits and then the unary-coded high
// bits. When hb is zero the index array is empty; the canonical encoder still
// writes an all-zero high-bits buffer, which lookups never read. Each element
// is (high << lb) | low.
type MonoHeader struct {
	// N is the number of elements in the list.
	N uint32
	// LowBits is the packed width of each element's low part.
	LowBits uint16
	// HighBits is the width of the high part; zero means low bits only.
	HighBits uint16
}

// Parse parses the fixed part of a monotonic list header.
func (h *MonoHeader) Parse(data []byte) error {
	if len(data) < MonoHeaderSize {
		return errs.ErrInvalidListHeader
	}

	h.N = engine.Uint32(data[0:4])
	h.LowBits = engine.Uint16(data[4:6])
	h.HighBits = engine.Uint16(data[6:8])

	return nil
}

// Bytes serializes the fixed part of the header.
func (h *MonoHeader) Bytes() []byte {
	b := make([]byte, 0, MonoHeaderSize)
	b = engine.AppendUint32(b, h.N)
	b = engine.AppendUint16(b, h.LowBits)
	b = engine.AppendUint16(b, h.HighBits)

	return b
}

// IndexEntries returns the number of entries in the high-bits quantum index
// for the given quantum size. The index holds one absolute bit offset per
// full quantum boundary; it is empty when there are no high bits.
func (h *MonoHeader) IndexEntries(quantum uint32) int {
	if h.HighBits == 0 || h.N == 0 {
		return 0
	}

	return int((h.N - 1) / quantum)
}

// PartitionHeader describes a packed partitioned monotonic list.
//
// Layout: [u32 chunks][u32 chunkIndex[chunks]], followed by an outer
// monotonic list of per-chunk prefix sums and then the chunks themselves.
// chunkIndex[q] is the byte offset of chunk q relative to the header start.
type PartitionHeader struct {
	// Chunks is the number of inner chunks.
	Chunks uint32
}

// Parse parses the fixed part of a partitioned list header.
func (h *PartitionHeader) Parse(data []byte) error {
	if len(data) < 4 {
		return errs.ErrInvalidListHeader
	}

	h.Chunks = engine.Uint32(data[0:4])

	return nil
}

// OuterOffset returns the byte offset of the outer prefix-sum list,
// immediately past the chunk count and the chunk index array.
func (h *PartitionHeader) OuterOffset() uint32 {
	return 4 * (1 + h.Chunks)
}
