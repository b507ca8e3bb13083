package encoding

import "math/bits"

// LookupFrequency returns the frequency rank stored at position index of the
// frequency stream packed at buf. quantum is the start-bit index sampling
// period the writer used.
//
// The stream layout is [u16 numRanks][u16 rankTable[numRanks]][u32 m]
// [u32 qIndex[m]][u32 cwBytes][cwBits][startBits]. Codewords are a
// prefix-free gamma-style encoding: the startBits stream carries a 1-bit at
// the first bit of each codeword, so the distance between consecutive start
// bits both delimits a codeword and conveys its width.
func LookupFrequency(buf []byte, quantum, index uint32) uint32 {
	numRanks := uint32(engine.Uint16(buf[0:2]))
	// Step past the rank count and table to the quantum index block.
	p := 2 * (numRanks + 1)
	m := engine.Uint32(buf[p:])
	qIndexOff := p + 4
	p += (1 + m) * 4
	cwBytes := engine.Uint32(buf[p:])
	// Step past the codeword byte count and the codewords themselves to
	// point at the start-bit stream.
	p += 4
	sb := p + cwBytes

	skip := index
	q := index / quantum
	if q != 0 {
		// qIndex[q-1] is the absolute bit offset in startBits of the start
		// of quantum q. Skip the whole bytes, then credit back the 1-bits
		// that sit before that offset within the landing byte.
		bcnt := engine.Uint32(buf[qIndexOff+4*(q-1):])
		sb += bcnt >> 3
		bmask := byte((1 << (bcnt & 0x07)) - 1)
		skip -= q*quantum - uint32(bits.OnesCount8(buf[sb]&bmask))
	}
	// Skip start-bit bytes holding fewer 1-bits than we still need to pass.
	for {
		bcnt := uint32(bits.OnesCount8(buf[sb]))
		if bcnt >= skip {
			break
		}
		sb++
		skip -= bcnt
	}
	// The 1-bits are numbered from 1; the codeword spans [start, end).
	start := Bitselect(buf[sb:], skip+1)
	end := Bitselect(buf[sb:], skip+2)
	width := end - start
	// cwBits runs parallel to startBits, cwBytes bytes earlier in the buffer.
	cw := Retrieve(buf[sb-cwBytes:], start, width)
	// Reverse the writer's codeword formula cw = ix + 2 - (1 << width).
	cwIdx := cw - 2 + (uint32(1) << width)

	return uint32(engine.Uint16(buf[2+2*cwIdx:]))
}
