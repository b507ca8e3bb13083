// Package grambo provides read-side access to a static n-gram frequency
// store packed into a single immutable binary artifact.
//
// The artifact encodes a compressed trie mapping tokens to small integer
// ids, frequency-rank streams, and monotonic integer sequences in Elias-Fano
// and partitioned Elias-Fano form. The decoding primitives live in the
// encoding and trie packages; this package binds an artifact buffer to its
// parsed header and offers the common entry points.
//
// # Basic Usage
//
// Opening a store from an artifact buffer held by the caller (typically a
// read-only memory map):
//
//	store, err := grambo.NewStore(buf)
//	if err != nil {
//	    return err
//	}
//	id := store.WordID([]byte("hús"))
//	if id == grambo.NotFound {
//	    // token not in the vocabulary
//	}
//
// Artifacts shipped compressed are restored with a codec first:
//
//	store, err := grambo.Load(data, compress.NewZstdCodec())
//
// All lookups are pure functions of the immutable buffer; a Store may be
// shared across goroutines without synchronization for as long as the
// caller keeps the buffer alive.
package grambo

import (
	"github.com/arloliu/grambo/compress"
	"github.com/arloliu/grambo/internal/hash"
	"github.com/arloliu/grambo/section"
	"github.com/arloliu/grambo/trie"
)

// NotFound is the sentinel returned by lookups and searches when no match
// exists.
const NotFound = section.NotFound

// Store is a read-only view over an artifact buffer and its parsed header.
//
// The zero value is not usable; create one with NewStore or Load. Store
// holds no state beyond the buffer reference and header copy, so methods
// are safe for concurrent use.
type Store struct {
	buf []byte
	hdr section.Header
}

// NewStore binds an uncompressed artifact buffer. The buffer must start
// with a valid artifact header and must outlive the store and any lookups
// issued through it.
func NewStore(data []byte) (*Store, error) {
	hdr, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	return &Store{buf: data, hdr: hdr}, nil
}

// Load decompresses an artifact stored at rest and binds the result.
func Load(data []byte, dec compress.Decompressor) (*Store, error) {
	buf, err := dec.Decompress(data)
	if err != nil {
		return nil, err
	}

	return NewStore(buf)
}

// Bytes returns the underlying artifact buffer.
func (s *Store) Bytes() []byte {
	return s.buf
}

// Header returns the parsed artifact header.
func (s *Store) Header() section.Header {
	return s.hdr
}

// WordID resolves a token to its vocabulary id, or NotFound if the token is
// not stored (or only exists as a prefix of stored tokens).
func (s *Store) WordID(word []byte) uint32 {
	return trie.Mapping(s.buf, word)
}

// Checksum returns the xxHash64 of the artifact buffer. Callers use it to
// key caches and to detect that two stores were loaded from the same
// artifact; it is not a cryptographic integrity check.
func (s *Store) Checksum() uint64 {
	return hash.Sum(s.buf)
}

// Section returns the artifact bytes from the given section offset. The
// slice aliases the store's buffer and is intended as the base argument for
// the lookup primitives in the encoding package:
//
//	rank := encoding.LookupFrequency(store.Section(hdr.UnigramFreqs), q, id)
func (s *Store) Section(offset uint32) []byte {
	return s.buf[offset:]
}
