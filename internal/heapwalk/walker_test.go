package heapwalk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embtools/mcudiag/internal/heapwalk"
	"github.com/embtools/mcudiag/internal/target"
)

func collect(mem heapwalk.Memory, b heapwalk.Boundary, freeHead uint32) ([]heapwalk.ChunkRecord, heapwalk.Totals) {
	var recs []heapwalk.ChunkRecord
	totals := heapwalk.Walk(mem, b, freeHead, func(c heapwalk.ChunkRecord) {
		recs = append(recs, c)
	})
	return recs, totals
}

// The worked example: raw sizes [16, 24, 16] at 0x1000 with the middle
// chunk free.
func TestWalkUsedFreeUsed(t *testing.T) {
	b := target.NewBuilder(0x1000).Used(16).Free(24).Used(16)

	recs, totals := collect(b.Image(), b.Boundary(), b.FreeListHead())

	require.Len(t, recs, 3)

	assert.Equal(t, []heapwalk.ChunkRecord{
		{Ordinal: 1, DataAddr: 0x1008, Size: 8, Free: false},
		{Ordinal: 2, DataAddr: 0x1018, Size: 16, Free: true},
		{Ordinal: 3, DataAddr: 0x1030, Size: 8, Free: false},
	}, recs)

	assert.Equal(t, uint32(16), totals.Used)
	assert.Equal(t, uint32(16), totals.Free)
}

func TestWalkAllUsed(t *testing.T) {
	b := target.NewBuilder(0x1000).Used(16).Used(32).Used(24)

	recs, totals := collect(b.Image(), b.Boundary(), b.FreeListHead())

	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.False(t, r.Free, "chunk %d marked free on an all-used heap", r.Ordinal)
	}
	assert.Equal(t, uint32(0), totals.Free)
	assert.Equal(t, uint32(8+24+16), totals.Used)
}

func TestWalkAlternatingFreeList(t *testing.T) {
	b := target.NewBuilder(0x1000).Used(16).Free(16).Used(16).Free(16).Used(16)

	recs, totals := collect(b.Image(), b.Boundary(), b.FreeListHead())

	require.Len(t, recs, 5)
	for i, r := range recs {
		assert.Equal(t, i%2 == 1, r.Free, "chunk %d", r.Ordinal)
	}
	assert.Equal(t, uint32(3*8), totals.Used)
	assert.Equal(t, uint32(2*8), totals.Free)
}

func TestWalkAscendingAddresses(t *testing.T) {
	b := target.NewBuilder(0x1000).Used(24).Free(40).Used(16).Used(64).Free(16)

	recs, totals := collect(b.Image(), b.Boundary(), b.FreeListHead())

	var sum uint32
	for i, r := range recs {
		assert.Equal(t, uint32(i+1), r.Ordinal)
		if i > 0 {
			assert.Greater(t, r.DataAddr, recs[i-1].DataAddr)
		}
		sum += r.Size
	}
	assert.Equal(t, sum, totals.Used+totals.Free)
}

func TestWalkZeroSpanHeap(t *testing.T) {
	b := target.NewBuilder(0x2000)

	recs, totals := collect(b.Image(), heapwalk.Boundary{Start: 0x2000, End: 0x2000}, 0)

	assert.Empty(t, recs)
	assert.Equal(t, heapwalk.Totals{}, totals)
}

func TestWalkIdempotent(t *testing.T) {
	b := target.NewBuilder(0x1000).Used(16).Free(24).Free(16).Used(48)

	recs1, totals1 := collect(b.Image(), b.Boundary(), b.FreeListHead())
	recs2, totals2 := collect(b.Image(), b.Boundary(), b.FreeListHead())

	assert.Equal(t, recs1, recs2)
	assert.Equal(t, totals1, totals2)
}

// A final chunk whose size runs past the heap top is still processed
// and emitted as read; the bound is only checked at the loop top. This
// is preserved behavior: operators diagnose corruption from the raw
// numbers.
func TestWalkFinalChunkOvershoot(t *testing.T) {
	b := target.NewBuilder(0x1000).Used(16).Used(24)

	// Truncate the boundary into the middle of the second chunk.
	bound := heapwalk.Boundary{Start: 0x1000, End: 0x1000 + 32}
	recs, totals := collect(b.Image(), bound, 0)

	require.Len(t, recs, 2)
	assert.Equal(t, uint32(16), recs[1].Size)
	assert.Equal(t, uint32(8+16), totals.Used)
}

// Walk never consults the free list past the cursor, so a stale head
// that matches no chunk start leaves every chunk marked used.
func TestWalkFreeHeadMatchesNoChunk(t *testing.T) {
	b := target.NewBuilder(0x1000).Used(16).Used(16)

	recs, totals := collect(b.Image(), b.Boundary(), 0x1004)

	require.Len(t, recs, 2)
	assert.False(t, recs[0].Free)
	assert.False(t, recs[1].Free)
	assert.Equal(t, uint32(0), totals.Free)
}
