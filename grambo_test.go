package grambo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/grambo"
	"github.com/arloliu/grambo/compress"
	"github.com/arloliu/grambo/encoding"
	"github.com/arloliu/grambo/section"
	"github.com/arloliu/grambo/trie"
)

// buildTestArtifact assembles a small but complete artifact: a token trie,
// a unigram frequency stream and a unigram successor-pointer list.
func buildTestArtifact(t *testing.T) ([]byte, map[string]uint32, []uint32, []uint64) {
	t.Helper()

	words := map[string]uint32{
		"af":     0,
		"og":     1,
		"hús":    2,
		"húsið":  3,
		"bók":    4,
		"bækur":  5,
		"dagur":  6,
		"dagana": 7,
	}
	ranks := []uint32{3, 3, 1, 0, 1, 0, 2, 3}
	ptrs := []uint64{0, 4, 9, 9, 15, 20, 28, 30, 31}

	b := trie.NewBuilder()
	for w, id := range words {
		require.NoError(t, b.Add([]byte(w), id))
	}
	buf := make([]byte, section.HeaderSize)
	buf, root, err := b.AppendTo(buf)
	require.NoError(t, err)

	fenc, err := encoding.NewFrequencyEncoder(section.DefaultFreqQuantum)
	require.NoError(t, err)
	fbuf, err := fenc.Encode(ranks)
	require.NoError(t, err)
	ufOff := uint32(len(buf))
	buf = append(buf, fbuf...)

	menc, err := encoding.NewMonotonicEncoder(section.DefaultListQuantum)
	require.NoError(t, err)
	mbuf, err := menc.Encode(ptrs)
	require.NoError(t, err)
	upOff := uint32(len(buf))
	buf = append(buf, mbuf...)

	hdr := section.Header{Trie: root, UnigramFreqs: ufOff, UnigramPtrs: upOff}
	copy(buf[:section.HeaderSize], hdr.Bytes())

	return buf, words, ranks, ptrs
}

func TestNewStore(t *testing.T) {
	buf, _, _, _ := buildTestArtifact(t)

	store, err := grambo.NewStore(buf)
	require.NoError(t, err)
	require.NotNil(t, store)
	require.Equal(t, buf, store.Bytes())

	t.Run("Rejects junk", func(t *testing.T) {
		_, err := grambo.NewStore([]byte("definitely not an artifact"))
		require.Error(t, err)
	})
}

func TestStore_WordID(t *testing.T) {
	buf, words, _, _ := buildTestArtifact(t)
	store, err := grambo.NewStore(buf)
	require.NoError(t, err)

	for w, id := range words {
		require.Equal(t, id, store.WordID([]byte(w)), "word %q", w)
	}
	require.Equal(t, grambo.NotFound, store.WordID([]byte("húsi")))
	require.Equal(t, grambo.NotFound, store.WordID([]byte("köttur")))
	require.Equal(t, grambo.NotFound, store.WordID(nil))
}

func TestStore_SectionLookups(t *testing.T) {
	buf, words, ranks, ptrs := buildTestArtifact(t)
	store, err := grambo.NewStore(buf)
	require.NoError(t, err)
	hdr := store.Header()

	t.Run("Frequency by word id", func(t *testing.T) {
		freqs := store.Section(hdr.UnigramFreqs)
		for w, id := range words {
			require.Equal(t, ranks[id],
				encoding.LookupFrequency(freqs, section.DefaultFreqQuantum, store.WordID([]byte(w))),
				"word %q", w)
		}
	})

	t.Run("Successor ranges", func(t *testing.T) {
		list := store.Section(hdr.UnigramPtrs)
		for i := 0; i+1 < len(ptrs); i++ {
			lo, hi := encoding.LookupPairMonotonic(list, section.DefaultListQuantum, uint32(i))
			require.Equal(t, ptrs[i], lo)
			require.Equal(t, ptrs[i+1], hi)
		}
	})
}

func TestLoad(t *testing.T) {
	buf, words, _, _ := buildTestArtifact(t)

	codecs := []struct {
		name  string
		codec compress.Codec
	}{
		{"noop", compress.NewNoOpCodec()},
		{"zstd", compress.NewZstdCodec()},
		{"s2", compress.NewS2Codec()},
	}
	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			stored, err := tc.codec.Compress(buf)
			require.NoError(t, err)

			store, err := grambo.Load(stored, tc.codec)
			require.NoError(t, err)
			require.Equal(t, uint32(2), store.WordID([]byte("hús")))
			for w, id := range words {
				require.Equal(t, id, store.WordID([]byte(w)))
			}
		})
	}

	t.Run("Corrupt input", func(t *testing.T) {
		_, err := grambo.Load([]byte{0xDE, 0xAD}, compress.NewZstdCodec())
		require.Error(t, err)
	})
}

func TestStore_Checksum(t *testing.T) {
	buf, _, _, _ := buildTestArtifact(t)
	store, err := grambo.NewStore(buf)
	require.NoError(t, err)

	require.Equal(t, store.Checksum(), store.Checksum())

	other := make([]byte, len(buf))
	copy(other, buf)
	other[len(other)-1] ^= 0xFF
	store2, err := grambo.NewStore(other)
	require.NoError(t, err)
	require.NotEqual(t, store.Checksum(), store2.Checksum())
}
