package encoding

import (
	"math/bits"
	"sort"

	"github.com/arloliu/grambo/errs"
	"github.com/arloliu/grambo/internal/pool"
)

// FrequencyEncoder packs a stream of frequency ranks into the variable-width
// codeword layout consumed by LookupFrequency.
//
// Ranks are assigned prefix-free codewords in descending order of how often
// they occur, so the most common ranks get the shortest codewords (the
// minimal sequence 0, 1, 00, 01, 10, 11, 000, ...). A parallel start-bit
// stream carries a 1-bit at the first bit of every codeword; the distance
// between consecutive start bits delimits each codeword and doubles as its
// width, so no separate length table is needed.
type FrequencyEncoder struct {
	quantum uint32
}

// NewFrequencyEncoder creates an encoder with the given start-bit index
// quantum, a nonzero power of two. The same quantum must be passed to
// LookupFrequency for streams produced by this encoder.
func NewFrequencyEncoder(quantum uint32) (*FrequencyEncoder, error) {
	if quantum == 0 || quantum&(quantum-1) != 0 {
		return nil, errs.ErrInvalidQuantum
	}

	return &FrequencyEncoder{quantum: quantum}, nil
}

// Encode packs ranks into a frequency stream. Each rank must fit in 16 bits.
func (e *FrequencyEncoder) Encode(ranks []uint32) ([]byte, error) {
	if len(ranks) == 0 {
		return nil, errs.ErrEmptyList
	}

	// Count rank occurrences, remembering first-appearance order so that
	// equally common ranks get deterministic codeword indices.
	counts := make(map[uint32]int, 16)
	var order []uint32
	for _, r := range ranks {
		if r >= 1<<16 {
			return nil, errs.ErrRankTooLarge
		}
		if counts[r] == 0 {
			order = append(order, r)
		}
		counts[r]++
	}
	if len(order) >= 1<<16 {
		return nil, errs.ErrTooManyRanks
	}

	// Stable sort: equally common ranks keep their first-appearance order.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	// codebook[rank] = (codeword, width); width = floor(log2(ix+2)) and
	// cw = ix + 2 - (1 << width) walk the minimal prefix-free sequence.
	type code struct {
		cw    uint32
		width uint32
	}
	codebook := make(map[uint32]code, len(order))
	for ix, rank := range order {
		width := uint32(bits.Len32(uint32(ix)+2)) - 1
		codebook[rank] = code{cw: uint32(ix) + 2 - (1 << width), width: width}
	}

	cwBits := bitWriter{}
	startBits := bitWriter{}
	var qIndex []byte
	for ix, r := range ranks {
		if ix > 0 && uint32(ix)%e.quantum == 0 {
			qIndex = engine.AppendUint32(qIndex, startBits.numBits())
		}
		c := codebook[r]
		cwBits.append(uint64(c.cw), c.width)
		// A 1-bit at the codeword start; the remaining width-1 bits are 0.
		startBits.append(1, c.width)
	}
	// A final guard bit so the last codeword's end can be located, and a
	// matching filler bit to keep both streams the same length.
	startBits.append(1, 1)
	cwBits.append(0, 1)

	cw := cwBits.finish()
	sb := startBits.finish()

	bb := pool.GetBuildBuffer()
	defer pool.PutBuildBuffer(bb)

	var hdr []byte
	hdr = engine.AppendUint16(hdr, uint16(len(order)))
	for _, rank := range order {
		hdr = engine.AppendUint16(hdr, uint16(rank))
	}
	hdr = engine.AppendUint32(hdr, uint32(len(qIndex)/4))
	bb.MustWrite(hdr)
	bb.MustWrite(qIndex)
	var sz []byte
	sz = engine.AppendUint32(sz, uint32(len(cw)))
	bb.MustWrite(sz)
	bb.MustWrite(cw)
	bb.MustWrite(sb)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}
