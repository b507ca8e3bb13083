package section

import (
	"bytes"

	"github.com/arloliu/grambo/endian"
	"github.com/arloliu/grambo/errs"
)

var engine = endian.GetLittleEndianEngine()

// Header represents the fixed-size header at the start of the artifact.
//
// The header consists of a 16-byte signature followed by ten 32-bit section
// offsets, the trie root first. Each offset is an absolute byte position
// within the artifact buffer. Offsets other than Trie are consumed by the
// n-gram layers above the lookup core; the core itself only needs the trie
// root.
type Header struct {
	// Trie is the byte offset of the trie root node.
	Trie uint32 // byte offset 16-19
	// Freqs is the byte offset of the per-order frequency bucket tables.
	Freqs uint32 // byte offset 20-23
	// UnigramPtrs is the byte offset of the unigram successor-range list.
	UnigramPtrs uint32 // byte offset 24-27
	// Bigrams is the byte offset of the bigram id list.
	Bigrams uint32 // byte offset 28-31
	// BigramPtrs is the byte offset of the bigram successor-range list.
	BigramPtrs uint32 // byte offset 32-35
	// Trigrams is the byte offset of the trigram id list.
	Trigrams uint32 // byte offset 36-39
	// UnigramFreqs is the byte offset of the unigram frequency stream.
	UnigramFreqs uint32 // byte offset 40-43
	// BigramFreqs is the byte offset of the bigram frequency stream.
	BigramFreqs uint32 // byte offset 44-47
	// TrigramFreqs is the byte offset of the trigram frequency stream.
	TrigramFreqs uint32 // byte offset 48-51
	// Vocab is the byte offset of the compressed vocabulary section.
	Vocab uint32 // byte offset 52-55
}

// Parse parses the artifact header from a byte slice.
//
// The slice must hold at least HeaderSize bytes and begin with the grambo
// signature. Only the header region is inspected; data may be the entire
// artifact buffer.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}
	if !bytes.Equal(data[:SignatureSize], []byte(Signature)) {
		return errs.ErrInvalidSignature
	}

	h.Trie = engine.Uint32(data[16:20])
	h.Freqs = engine.Uint32(data[20:24])
	h.UnigramPtrs = engine.Uint32(data[24:28])
	h.Bigrams = engine.Uint32(data[28:32])
	h.BigramPtrs = engine.Uint32(data[32:36])
	h.Trigrams = engine.Uint32(data[36:40])
	h.UnigramFreqs = engine.Uint32(data[40:44])
	h.BigramFreqs = engine.Uint32(data[44:48])
	h.TrigramFreqs = engine.Uint32(data[48:52])
	h.Vocab = engine.Uint32(data[52:56])

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, 0, HeaderSize)
	b = append(b, Signature...)
	b = engine.AppendUint32(b, h.Trie)
	b = engine.AppendUint32(b, h.Freqs)
	b = engine.AppendUint32(b, h.UnigramPtrs)
	b = engine.AppendUint32(b, h.Bigrams)
	b = engine.AppendUint32(b, h.BigramPtrs)
	b = engine.AppendUint32(b, h.Trigrams)
	b = engine.AppendUint32(b, h.UnigramFreqs)
	b = engine.AppendUint32(b, h.BigramFreqs)
	b = engine.AppendUint32(b, h.TrigramFreqs)
	b = engine.AppendUint32(b, h.Vocab)

	return b
}

// ParseHeader parses an artifact header from a byte slice.
func ParseHeader(data []byte) (Header, error) {
	h := Header{}
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
