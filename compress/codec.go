package compress

// Compressor compresses an artifact buffer for storage or transmission.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The input slice is not modified. The returned slice is newly allocated
	// and owned by the caller, except for NoOpCodec, which returns the input
	// slice itself.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores an artifact buffer from its stored form.
//
// Implementations other than NoOpCodec return an error when the input cannot
// be decoded; NoOpCodec performs no checks.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// artifact bytes.
	//
	// The input slice is not modified. The returned slice is newly allocated
	// and owned by the caller, except for NoOpCodec, which returns the input
	// slice itself.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}
