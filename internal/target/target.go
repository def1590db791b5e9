// Package target abstracts the embedded controller under diagnosis.
// The shell and the heap walker never talk to hardware directly; they
// see a Target, which today is always a Snapshot captured from a
// device. Keeping the boundary values (heap start, heap top, free
// list head, heap ceiling) behind the interface is what lets the
// walker run unchanged against synthetic images in tests.
package target

import (
	"errors"

	"github.com/embtools/mcudiag/internal/heapwalk"
)

// ErrOffline is returned by device-control operations that need a live
// connection, which a snapshot cannot provide.
var ErrOffline = errors.New("not connected to a live target")

// Info describes the firmware build running on the captured target.
// Fields come from the snapshot's sidecar metadata and may be empty.
type Info struct {
	Board     string
	Build     string
	BuildDate string
	MCU       string
	ClockMHz  int
}

// Target is one embedded controller as seen by the diagnostic shell.
//
// The four address queries mirror what the on-device console reads
// from the runtime: HeapStart is the link-time start-of-heap symbol,
// HeapTop the allocator's current high-water mark (captured via a
// zero-byte sbrk, which reserves nothing), FreeListHead the
// allocator's published free-list head (zero when empty), and
// MaxHeapAddr the link-time ceiling the heap may ever grow to.
type Target interface {
	Memory() heapwalk.Memory
	HeapStart() uint32
	HeapTop() uint32
	FreeListHead() uint32
	MaxHeapAddr() uint32

	Info() Info

	// Device control. Offline targets return ErrOffline.
	Reset() error
	EnterDFU() error
	Break() error
}

// Boundary returns the walkable heap region of t.
func Boundary(t Target) heapwalk.Boundary {
	return heapwalk.Boundary{Start: t.HeapStart(), End: t.HeapTop()}
}
