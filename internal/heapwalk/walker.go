// Package heapwalk reconstructs the layout of a newlib-nano style
// sequential-chunk heap from raw memory alone. The allocator stores a
// 32-bit total-size field at the start of every chunk, free or used,
// and threads free chunks through an address-ordered singly linked
// list overlaid on their payload space. Walking those two structures
// yields every chunk with an exact used/free accounting, without any
// cooperation from the allocator's API.
package heapwalk

// Chunk header geometry. The allocator over-allocates every request by
// chunkOverhead bytes: 4 for the size field and 4 of slack so the
// returned pointer can be rounded up to an 8-byte boundary.
const (
	sizeFieldBytes = 4
	chunkOverhead  = 8
	dataAlign      = 8
)

// Boundary marks the traversable heap region: Start is the link-time
// start-of-heap symbol, End the allocator's current high-water mark.
// Start <= End.
type Boundary struct {
	Start uint32
	End   uint32
}

// Span returns the number of bytes between heap start and current top.
func (b Boundary) Span() uint32 {
	return b.End - b.Start
}

// ChunkRecord describes one chunk as the walk encounters it. Records
// are transient: each is handed to the emit callback and not retained.
type ChunkRecord struct {
	Ordinal  uint32 // 1-based position in traversal order
	DataAddr uint32 // address of the usable payload
	Size     uint32 // usable bytes, header and alignment slack excluded
	Free     bool
}

// Totals is the used/free accounting accumulated over a walk, in
// payload bytes.
type Totals struct {
	Used uint32
	Free uint32
}

// Walk enumerates every chunk between b.Start and b.End in ascending
// address order, calling emit for each, and returns the accumulated
// totals. freeListHead is the address of the first entry of the
// allocator's free list, or zero when the list is empty.
//
// Walk trusts the allocator's invariants and does not validate them:
// the free list must be address-ordered and acyclic, every free-list
// entry must coincide with a chunk start, and chunk sizes must be
// non-zero (the one property forward progress relies on). Violating
// those invariants is exactly the corruption this tool exists to
// surface, so it shows up as wrong or out-of-range output, never as an
// error. A
// final chunk whose size overshoots b.End is still emitted as read;
// the loop bound is only re-checked at the top.
//
// Walk allocates nothing and reads only through mem, so it is a pure
// function of its inputs and safe to rerun; two walks over the same
// image produce identical records.
func Walk(mem Memory, b Boundary, freeListHead uint32, emit func(ChunkRecord)) Totals {
	var totals Totals

	cursor := b.Start
	freeCursor := freeListHead
	ordinal := uint32(1)

	for cursor < b.End {
		// First word of every chunk is its total size, header and
		// alignment overhead included.
		chunkSize := mem.Word(cursor)
		nextChunk := cursor + chunkSize

		// The free list is address-sorted, so the next free chunk in
		// the heap is always the one freeCursor points at.
		free := cursor == freeCursor
		if free {
			// Second word of a free chunk is the next-free pointer.
			freeCursor = mem.Word(cursor + sizeFieldBytes)
		}

		dataAddr := align(cursor+sizeFieldBytes, dataAlign)
		size := chunkSize - chunkOverhead

		if emit != nil {
			emit(ChunkRecord{
				Ordinal:  ordinal,
				DataAddr: dataAddr,
				Size:     size,
				Free:     free,
			})
		}

		if free {
			totals.Free += size
		} else {
			totals.Used += size
		}

		cursor = nextChunk
		ordinal++
	}

	return totals
}

func align(addr, to uint32) uint32 {
	return (addr + to - 1) &^ (to - 1)
}
