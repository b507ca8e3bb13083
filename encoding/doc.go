// Package encoding implements the bit-level codecs of the grambo artifact:
// the raw bit-buffer accessors, monotonic (Elias-Fano) lists, partitioned
// monotonic lists, and the variable-width frequency-rank stream.
//
// Each structure comes as an encoder/decoder pair. The decoders are the hot
// path: pure functions over an immutable byte slice that perform no bounds
// checking, no heap allocation and no synchronization, so concurrent lookups
// on the same buffer are safe. Callers are responsible for passing offsets
// and indices that are in contract; out-of-range input is undefined
// behavior. "Not found" is reported with the section.NotFound sentinel.
//
// The encoders produce the canonical layouts the decoders consume. They are
// used by artifact writers and by the tests in this repository; lookup-only
// deployments never touch them.
//
// All bit streams are indexed LSB-first within each byte: bit 0 is the least
// significant bit of the first byte. This convention applies uniformly to
// Retrieve, Bitselect, the Elias-Fano low and high streams, and the
// frequency start-bit stream.
package encoding
