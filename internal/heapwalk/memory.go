package heapwalk

import "encoding/binary"

// Memory is a read-only view of target memory. Loads are 32-bit
// little-endian, matching the Cortex-M targets the allocator runs on.
type Memory interface {
	// Word returns the 32-bit value stored at addr.
	Word(addr uint32) uint32
}

// Image is an in-memory capture of a region of target memory, addressed
// by the target's own addresses. It implements Memory over a plain byte
// slice so the walker can run against synthetic buffers.
type Image struct {
	base uint32
	data []byte
}

// NewImage wraps data as target memory starting at base.
func NewImage(base uint32, data []byte) *Image {
	return &Image{base: base, data: data}
}

// Base returns the target address of the first byte of the image.
func (img *Image) Base() uint32 {
	return img.base
}

// Len returns the number of bytes in the image.
func (img *Image) Len() uint32 {
	return uint32(len(img.data))
}

// Word returns the little-endian 32-bit value at addr. Reads outside
// the captured region return zero; the walker trusts the allocator's
// layout invariants and never bounds-checks its own loads, so a short
// capture shows up as zeroed data rather than a fault.
func (img *Image) Word(addr uint32) uint32 {
	off := addr - img.base
	if addr < img.base || off+4 > uint32(len(img.data)) {
		return 0
	}
	return binary.LittleEndian.Uint32(img.data[off : off+4])
}

// PutWord stores a little-endian 32-bit value at addr. Out-of-range
// stores are ignored. Used by capture tooling and tests that compose
// synthetic heaps; the walker itself never writes.
func (img *Image) PutWord(addr, v uint32) {
	off := addr - img.base
	if addr < img.base || off+4 > uint32(len(img.data)) {
		return
	}
	binary.LittleEndian.PutUint32(img.data[off:off+4], v)
}

// Data returns the backing bytes of the image.
func (img *Image) Data() []byte {
	return img.data
}
