package target

import (
	"encoding/binary"

	"github.com/embtools/mcudiag/internal/heapwalk"
)

// Builder composes a synthetic heap image chunk by chunk, maintaining
// the address-ordered free list exactly as the allocator would: each
// free chunk's second word is patched to point at the next free chunk
// added, and the last one is left pointing at zero. Used by tests and
// by capture tooling that fabricates fixtures.
type Builder struct {
	base uint32
	buf  []byte

	freeHead uint32
	lastFree uint32

	info Info
}

// NewBuilder starts an empty heap whose first chunk will sit at base.
func NewBuilder(base uint32) *Builder {
	return &Builder{base: base}
}

// Used appends an in-use chunk of rawSize total bytes (header and
// alignment overhead included, as the allocator records it).
func (b *Builder) Used(rawSize uint32) *Builder {
	b.appendChunk(rawSize)
	return b
}

// Free appends a free chunk of rawSize total bytes and links it onto
// the free list.
func (b *Builder) Free(rawSize uint32) *Builder {
	addr := b.appendChunk(rawSize)
	if b.freeHead == 0 {
		b.freeHead = addr
	} else {
		b.putWord(b.lastFree+4, addr)
	}
	b.putWord(addr+4, 0)
	b.lastFree = addr
	return b
}

// WithInfo attaches firmware build metadata to snapshots produced by
// the builder.
func (b *Builder) WithInfo(info Info) *Builder {
	b.info = info
	return b
}

func (b *Builder) appendChunk(rawSize uint32) uint32 {
	addr := b.base + uint32(len(b.buf))
	b.buf = append(b.buf, make([]byte, rawSize)...)
	b.putWord(addr, rawSize)
	return addr
}

func (b *Builder) putWord(addr, v uint32) {
	binary.LittleEndian.PutUint32(b.buf[addr-b.base:], v)
}

// Boundary returns the heap region the chunks occupy: base up to the
// current top.
func (b *Builder) Boundary() heapwalk.Boundary {
	return heapwalk.Boundary{Start: b.base, End: b.base + uint32(len(b.buf))}
}

// FreeListHead returns the address of the first free chunk, or zero
// when every chunk is in use.
func (b *Builder) FreeListHead() uint32 {
	return b.freeHead
}

// Image returns the composed bytes as walker-readable memory.
func (b *Builder) Image() *heapwalk.Image {
	return heapwalk.NewImage(b.base, b.buf)
}

// Snapshot wraps the composed heap as an offline Target with the given
// heap ceiling.
func (b *Builder) Snapshot(maxHeapAddr uint32) *Snapshot {
	bound := b.Boundary()
	return &Snapshot{
		mem:          b.Image(),
		heapStart:    bound.Start,
		heapTop:      bound.End,
		freeListHead: b.freeHead,
		maxHeapAddr:  maxHeapAddr,
		info:         b.info,
	}
}
