// Package persist reads and writes durable snapshots of a constructive
// solid geometry space.
//
// A snapshot file is self-describing: the header records the codec name and
// compression algorithm, so files written with one configuration can be
// opened with any other. Changing the default codec is a breaking-change
// boundary only for files that predate the header format.
//
// # File layout
//
//	[magic "PCS0"][version uint16][compression uint8][name len uint8][codec name][payload block]
//
// The payload block carries its uncompressed and compressed sizes, so an
// incompressible payload is stored verbatim without a size penalty.
package persist
