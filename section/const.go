package section

const (
	// SignatureSize is the size of the artifact signature in bytes.
	SignatureSize = 16

	// NumSections is the number of section offsets in the artifact header
	// directory: trie, frequency buckets, unigram pointers, bigrams, bigram
	// pointers, trigrams, the three frequency-rank streams, and vocabulary.
	NumSections = 10

	// HeaderSize is the total size of the artifact header in bytes.
	HeaderSize = SignatureSize + 4*NumSections

	// MonoHeaderSize is the fixed part of a monotonic list header:
	// element count (u32), low-bit width (u16), high-bit width (u16).
	MonoHeaderSize = 8

	// MaxTrieChildren is the maximum number of children of a single trie
	// node. The child count is stored in 7 bits.
	MaxTrieChildren = 127
)

const (
	// NotFound is the sentinel returned by lookups and searches when no
	// match exists. It cannot collide with legitimate results: trie values
	// occupy 23 bits and list indices stay far below 2^32-1.
	NotFound uint32 = 0xFFFFFFFF

	// NoValue marks an interim trie node, a prefix that is not itself a
	// stored token. It is the all-ones pattern of the 23-bit value field.
	NoValue uint32 = 0x7FFFFF
)

// Default quantum sizes used by the canonical writer. The decoders accept any
// power-of-two quantum; these are carried out-of-band by the caller.
const (
	// DefaultListQuantum is the high-bits index sampling period of a
	// monotonic list.
	DefaultListQuantum = 128

	// DefaultPartitionQuantum is the chunk size of a partitioned list.
	DefaultPartitionQuantum = 1 << 11

	// DefaultFreqQuantum is the start-bit index sampling period of a
	// frequency stream.
	DefaultFreqQuantum = 1024
)

// Signature identifies a grambo artifact and its format version.
// It occupies exactly SignatureSize bytes at offset 0.
const Signature = "grambo 001.00.00"
