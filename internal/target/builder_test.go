package target

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embtools/mcudiag/internal/heapwalk"
)

func TestBuilderThreadsFreeList(t *testing.T) {
	b := NewBuilder(0x1000).Used(16).Free(24).Used(16).Free(16)

	img := b.Image()

	// Free chunks sit at base+16 and base+56; the list is threaded
	// through their second words in address order.
	assert.Equal(t, uint32(0x1010), b.FreeListHead())
	assert.Equal(t, uint32(0x1038), img.Word(0x1010+4))
	assert.Equal(t, uint32(0), img.Word(0x1038+4))
}

func TestBuilderChunkHeaders(t *testing.T) {
	b := NewBuilder(0x1000).Used(16).Free(24)

	img := b.Image()
	assert.Equal(t, uint32(16), img.Word(0x1000))
	assert.Equal(t, uint32(24), img.Word(0x1010))

	assert.Equal(t, heapwalk.Boundary{Start: 0x1000, End: 0x1028}, b.Boundary())
}

func TestBuilderEmptyHeap(t *testing.T) {
	b := NewBuilder(0x1000)

	assert.Equal(t, uint32(0), b.FreeListHead())
	assert.Equal(t, heapwalk.Boundary{Start: 0x1000, End: 0x1000}, b.Boundary())
}

func TestBuilderSnapshotTarget(t *testing.T) {
	snap := NewBuilder(0x1000).Used(16).Free(24).
		WithInfo(Info{Board: "alpha"}).
		Snapshot(0x8000)

	assert.Equal(t, uint32(0x1000), snap.HeapStart())
	assert.Equal(t, uint32(0x1028), snap.HeapTop())
	assert.Equal(t, uint32(0x1010), snap.FreeListHead())
	assert.Equal(t, uint32(0x8000), snap.MaxHeapAddr())
	assert.Equal(t, "alpha", snap.Info().Board)

	assert.ErrorIs(t, snap.Reset(), ErrOffline)
	assert.ErrorIs(t, snap.EnterDFU(), ErrOffline)
	assert.ErrorIs(t, snap.Break(), ErrOffline)
}
