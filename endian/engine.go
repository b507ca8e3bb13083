// Package endian provides byte order utilities for reading and writing the
// grambo binary artifact.
//
// The artifact format is strictly little-endian, so nearly all callers use
// GetLittleEndianEngine():
//
//	engine := endian.GetLittleEndianEngine()
//	n := engine.Uint32(buf[off : off+4])
//
// The EndianEngine interface combines ByteOrder and AppendByteOrder from
// encoding/binary so the same engine serves both the decoders (fixed-offset
// reads) and the builders (append-style writes) without extra allocation.
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
//
// This is the byte order of the grambo artifact format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
//
// The artifact format never uses big-endian; this exists for tools that need
// to interoperate with big-endian data outside the artifact.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
