package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/embtools/mcudiag/internal/heapwalk"
	"github.com/embtools/mcudiag/internal/target"
)

// memCommand reports heap usage: the capacity still unused below the
// link-time heap ceiling, then the walker's accounting of the region
// the allocator has already claimed. A 'v' anywhere in the first
// argument selects the per-chunk trace.
func (s *Shell) memCommand(args string, w io.Writer) error {
	arg, _ := shiftParam(args)
	verbose := strings.ContainsAny(arg, "vV")

	fmt.Fprintf(w, "Unused Heap: %d bytes\n", s.target.MaxHeapAddr()-s.target.HeapTop())

	heapwalk.Report(w, s.target.Memory(), target.Boundary(s.target), s.target.FreeListHead(), verbose)
	return nil
}
