// Package compress provides the compression codecs used for grambo
// artifacts at rest.
//
// The lookup core operates on an uncompressed, memory-resident buffer, but
// shipped artifacts are usually compressed: the packed trie and the
// Elias-Fano streams still carry enough redundancy for a general-purpose
// compressor to cut the download size substantially. A Codec decompresses
// the artifact into the read-only buffer the decoders consume, and
// compresses it back when a writer publishes a new store.
//
// Available codecs:
//
//   - Zstd: best ratio, the default for published artifacts. Uses the cgo
//     libzstd binding when cgo is available and the pure-Go implementation
//     otherwise.
//   - S2: much faster decompression at a moderate ratio.
//   - LZ4: fastest decompression, lowest ratio.
//   - NoOp: pass-through for artifacts stored uncompressed.
//
// All codecs are safe for concurrent use.
package compress
