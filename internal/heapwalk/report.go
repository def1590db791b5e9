package heapwalk

import (
	"fmt"
	"io"
)

// Report walks the heap and writes a human-readable accounting to w.
// The total span line comes first; with verbose set, one line per
// chunk follows in traversal order; the used/free totals close the
// report. The output format is fixed: operators diff it against
// known-good captures, so it carries no styling or structure beyond
// the literal lines.
func Report(w io.Writer, mem Memory, b Boundary, freeListHead uint32, verbose bool) Totals {
	fmt.Fprintf(w, "Used Heap Size: %d\n", b.Span())

	totals := Walk(mem, b, freeListHead, func(c ChunkRecord) {
		if !verbose {
			return
		}
		marker := ""
		if c.Free {
			marker = "CHUNK FREE"
		}
		fmt.Fprintf(w, "  Chunk: %d  Address: 0x%08X  Size: %d  %s\n",
			c.Ordinal, c.DataAddr, c.Size, marker)
	})

	fmt.Fprintf(w, "Allocated: %d, Free: %d\n", totals.Used, totals.Free)
	return totals
}
