package trie

import (
	"fmt"

	"github.com/arloliu/grambo/errs"
	"github.com/arloliu/grambo/section"
)

// Builder assembles a radix (compact) trie in memory and serializes it into
// the packed node layout Mapping consumes. Each node carries the key
// fragment leading into it; inserting a key splits existing fragments as
// needed so that sibling fragments always differ in their first byte.
type Builder struct {
	root *node
}

type node struct {
	fragment []byte
	value    uint32
	hasValue bool
	children []*node
}

// NewBuilder creates an empty trie builder.
func NewBuilder() *Builder {
	return &Builder{root: &node{}}
}

// Add inserts key with the given value. The value must fit the 23-bit
// payload field; section.NoValue is reserved for interim nodes. An empty key
// is ignored (the empty token is implicit in the caller's id space), and a
// key that is already present keeps its original value.
func (b *Builder) Add(key []byte, value uint32) error {
	if value >= section.NoValue {
		return errs.ErrValueTooLarge
	}
	if len(key) == 0 {
		return nil
	}
	b.root.add(key, value)

	return nil
}

func (n *node) add(fragment []byte, value uint32) {
	if len(fragment) == 0 {
		// An interim node on the path of an earlier key; give it a value
		// unless the key already exists.
		if !n.hasValue {
			n.value = value
			n.hasValue = true
		}

		return
	}

	if n.children == nil {
		n.children = []*node{{fragment: fragment, value: value, hasValue: true}}

		return
	}

	// Binary search the sorted children for a shared first byte.
	lo, hi := 0, len(n.children)
	ch := fragment[0]
	mid := 0
	for hi > lo {
		mid = (lo + hi) / 2
		midCh := n.children[mid].fragment[0]
		if midCh < ch {
			lo = mid + 1
		} else if midCh > ch {
			hi = mid
		} else {
			break
		}
	}
	if hi == lo {
		// No common prefix with any child; insert into the sorted list.
		n.children = append(n.children, nil)
		copy(n.children[lo+1:], n.children[lo:])
		n.children[lo] = &node{fragment: fragment, value: value, hasValue: true}

		return
	}

	child := n.children[mid]
	common := 1
	for common < len(fragment) && common < len(child.fragment) &&
		fragment[common] == child.fragment[common] {
		common++
	}
	if common == len(child.fragment) {
		// The child's fragment is a prefix of ours; descend with the rest.
		child.add(fragment[common:], value)

		return
	}

	// Split the child at the common prefix.
	rest := child.fragment[common:]
	split := &node{fragment: rest, value: child.value, hasValue: child.hasValue, children: child.children}
	if common == len(fragment) {
		// The new key is a proper prefix of the child.
		n.children[mid] = &node{fragment: fragment, value: value, hasValue: true, children: []*node{split}}

		return
	}
	// The key and the child diverge after the common prefix; make an
	// interim parent with both remainders as children.
	added := &node{fragment: fragment[common:], value: value, hasValue: true}
	parent := &node{fragment: fragment[:common]}
	if added.fragment[0] < rest[0] {
		parent.children = []*node{added, split}
	} else {
		parent.children = []*node{split, added}
	}
	n.children[mid] = parent
}

// AppendTo serializes the trie onto buf and returns the extended buffer and
// the absolute offset of the root node. Child offsets inside the packed
// stream are absolute buffer offsets, so the caller must append the result
// at its final position within the artifact.
func (b *Builder) AppendTo(buf []byte) ([]byte, uint32, error) {
	type item struct {
		n         *node
		parentLoc int
	}
	rootLoc := uint32(len(buf))
	todo := []item{{n: b.root}}

	// Breadth-first order keeps each node's children consecutive in the
	// output, which is what lets the reader derive sibling offsets from the
	// first child alone.
	for len(todo) > 0 {
		it := todo[0]
		todo = todo[1:]
		n := it.n

		loc := len(buf)
		val := section.NoValue
		if n.hasValue {
			val = n.value
		}
		var childless uint32
		if len(n.children) == 0 {
			childless = flagChildless
		}
		var frag []byte
		if len(n.fragment) <= 1 && (len(n.fragment) == 0 || n.fragment[0] < 0x80) {
			// Single-character fragment packed into the header word. The
			// character ordinal occupies 7 bits and is zero only for the
			// root's empty fragment.
			var chix uint32
			if len(n.fragment) == 1 {
				chix = uint32(n.fragment[0])
			}
			buf = engine.AppendUint32(buf, flagSingle|childless|(chix<<23)|val)
		} else {
			buf = engine.AppendUint32(buf, childless|val)
			frag = n.fragment
		}
		if len(n.children) > 0 {
			if len(n.children) > section.MaxTrieChildren {
				return nil, 0, fmt.Errorf("node at %d has %d children: %w", loc, len(n.children), errs.ErrTooManyChildren)
			}
			buf = append(buf, byte(len(n.children)))
			// Placeholder for the first child offset, fixed up when the
			// child is written. Later siblings need no pointer.
			pos := len(buf)
			buf = engine.AppendUint32(buf, section.NotFound)
			for _, child := range n.children {
				todo = append(todo, item{n: child, parentLoc: pos})
				pos = 0
			}
		}
		if frag != nil {
			buf = append(buf, frag...)
			buf = append(buf, 0)
		}
		if it.parentLoc > 0 {
			engine.PutUint32(buf[it.parentLoc:], uint32(loc))
		}
	}

	return buf, rootLoc, nil
}
