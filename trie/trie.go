// Package trie implements lookup and construction of the packed token trie
// at the heart of the grambo artifact.
//
// The trie maps token byte strings to small integer ids. Nodes are packed
// variable-length records addressed by absolute byte offsets within the
// artifact buffer; the root offset lives in the artifact header. Lookup is a
// pure function over the immutable buffer and is safe for concurrent use.
package trie

import (
	"fmt"

	"github.com/arloliu/grambo/endian"
	"github.com/arloliu/grambo/errs"
	"github.com/arloliu/grambo/section"
)

var engine = endian.GetLittleEndianEngine()

// Node header flags and fields. The header is a 32-bit word: bit 31 marks a
// single-character fragment packed into bits 23-29, bit 30 marks a childless
// node, and bits 0-22 carry the value (section.NoValue for interim nodes).
const (
	flagSingle    = 0x80000000
	flagChildless = 0x40000000
)

// Mapping returns the value attached to the trie node that exactly matches
// word, or section.NotFound if word is not stored or only exists as an
// interim prefix. artifact is the full artifact buffer; the trie root offset
// is taken from its header.
//
// The walk is a pure function of the buffer and word; it allocates nothing
// beyond a fixed child-offset scratch array and performs no bounds checking.
func Mapping(artifact []byte, word []byte) uint32 {
	root := engine.Uint32(artifact[section.SignatureSize:])

	return lookup(artifact, word, root, engine.Uint32(artifact[root:]))
}

func lookup(buf, word []byte, nodeOff, hdr uint32) uint32 {
	// frag counts the bytes of word already consumed by the walk.
	frag := uint32(0)
	for {
		if frag >= uint32(len(word)) {
			// Arrived at the destination node; interim nodes hold no value.
			v := hdr & 0x007FFFFF
			if v == section.NoValue {
				return section.NotFound
			}

			return v
		}
		if hdr&flagChildless != 0 {
			return section.NotFound
		}

		numChildren := uint32(buf[nodeOff+4])
		// Children are consecutive in the buffer; only the first child's
		// offset is stored. Materialize the rest by adding node sizes.
		var offsets [section.MaxTrieChildren]uint32
		offsets[0] = engine.Uint32(buf[nodeOff+5:])
		for i := uint32(1); i < numChildren; i++ {
			offsets[i] = offsets[i-1] + nodeSize(buf, offsets[i-1])
		}

		// Binary search for a child whose fragment continues the word.
		lo, hi := uint32(0), numChildren
		for {
			if lo >= hi {
				return section.NotFound
			}
			mid := (lo + hi) / 2
			midOff := offsets[mid]
			m := matches(buf, word, midOff, frag)
			if m > 0 {
				nodeOff = midOff
				hdr = engine.Uint32(buf[nodeOff:])
				frag += uint32(m)

				break
			}
			if m < 0 {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
	}
}

// nodeSize returns the serialized size of the node at off, derived from its
// header flags and fragment length.
func nodeSize(buf []byte, off uint32) uint32 {
	hdr := engine.Uint32(buf[off:])
	var childrenSize uint32
	if hdr&flagChildless == 0 {
		childrenSize = 1 + 4
	}
	var strLen uint32
	if hdr&flagSingle == 0 {
		p := off + 4 + childrenSize
		for buf[p] != 0 {
			p++
			strLen++
		}
		strLen++ // trailing NUL
	}

	return 4 + childrenSize + strLen
}

// matches compares the fragment of the child node at off against
// word[frag:]. It returns the number of bytes matched (> 0) on a
// continuation, 0 if the child orders after the word fragment, and -1 if it
// orders before, under ordinal byte comparison.
func matches(buf, word []byte, off, frag uint32) int {
	hdr := engine.Uint32(buf[off:])
	if hdr&flagSingle != 0 {
		ch := byte((hdr >> 23) & 0x7F)
		cw := word[frag]
		if ch == cw {
			return 1
		}
		if ch > cw {
			return 0
		}

		return -1
	}

	var p uint32
	if hdr&flagChildless != 0 {
		p = off + 4
	} else {
		p = off + 4 + 1 + 4
	}
	matched := 0
	wlen := len(word)
	for buf[p] != 0 && int(frag)+matched < wlen && buf[p] == word[int(frag)+matched] {
		p++
		matched++
	}
	if buf[p] == 0 {
		// Matched the entire fragment.
		return matched
	}
	if int(frag)+matched >= wlen {
		// The fragment is longer and thus greater than the word.
		return 0
	}
	if buf[p] > word[int(frag)+matched] {
		return 0
	}

	return -1
}

// Validate is the opt-in debug check for a packed trie. It walks every node
// reachable from the root verifying that each node header lies inside the
// buffer, the 127-child bound, and that sibling first bytes are strictly
// increasing. The header flag bits are not cross-checked against the node
// contents.
func Validate(artifact []byte) error {
	root := engine.Uint32(artifact[section.SignatureSize:])

	return validateNode(artifact, root)
}

func validateNode(buf []byte, off uint32) error {
	if off+4 > uint32(len(buf)) {
		return fmt.Errorf("node offset %d out of range: %w", off, errs.ErrInvalidListHeader)
	}
	hdr := engine.Uint32(buf[off:])
	if hdr&flagChildless != 0 {
		return nil
	}

	numChildren := uint32(buf[off+4])
	if numChildren > section.MaxTrieChildren {
		return fmt.Errorf("node at %d: %w", off, errs.ErrTooManyChildren)
	}
	childOff := engine.Uint32(buf[off+5:])
	prev := -1
	for i := uint32(0); i < numChildren; i++ {
		fb := int(firstByte(buf, childOff))
		if fb <= prev {
			return fmt.Errorf("node at %d: children out of order at %d", off, childOff)
		}
		prev = fb
		if err := validateNode(buf, childOff); err != nil {
			return err
		}
		childOff += nodeSize(buf, childOff)
	}

	return nil
}

// firstByte returns the first significant byte of the node's fragment, the
// key the siblings are ordered by.
func firstByte(buf []byte, off uint32) byte {
	hdr := engine.Uint32(buf[off:])
	if hdr&flagSingle != 0 {
		return byte((hdr >> 23) & 0x7F)
	}
	if hdr&flagChildless != 0 {
		return buf[off+4]
	}

	return buf[off+4+1+4]
}
