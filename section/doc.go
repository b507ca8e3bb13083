// Package section defines the packed binary layouts of the grambo artifact.
//
// The artifact is a single immutable byte buffer addressed by byte offsets.
// It starts with a fixed-size header: a 16-byte signature followed by a
// directory of section offsets, the trie root first. The sections themselves
// are self-describing packed structures (monotonic Elias-Fano lists,
// partitioned lists, frequency streams, the token trie). The list headers are
// documented on the types in this package; the frequency stream layout is
// documented on encoding.LookupFrequency and the trie node layout in the trie
// package.
//
// All multi-byte integers are little-endian and structures are packed with no
// padding between fields. The Parse/Bytes pairs here are the validating
// surface of the format; the hot-path decoders in the encoding and trie
// packages read the same layouts inline without validation.
package section
