package heapwalk_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embtools/mcudiag/internal/heapwalk"
	"github.com/embtools/mcudiag/internal/target"
)

func TestReportVerbose(t *testing.T) {
	b := target.NewBuilder(0x1000).Used(16).Free(24).Used(16)

	var out bytes.Buffer
	totals := heapwalk.Report(&out, b.Image(), b.Boundary(), b.FreeListHead(), true)

	assert.Equal(t, heapwalk.Totals{Used: 16, Free: 16}, totals)

	// The format is fixed; operators diff reports against known-good
	// captures, trailing padding included.
	want := strings.Join([]string{
		"Used Heap Size: 56",
		"  Chunk: 1  Address: 0x00001008  Size: 8  ",
		"  Chunk: 2  Address: 0x00001018  Size: 16  CHUNK FREE",
		"  Chunk: 3  Address: 0x00001030  Size: 8  ",
		"Allocated: 16, Free: 16",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestReportQuietSkipsChunkLines(t *testing.T) {
	b := target.NewBuilder(0x1000).Used(16).Free(24).Used(16)

	var out bytes.Buffer
	heapwalk.Report(&out, b.Image(), b.Boundary(), b.FreeListHead(), false)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Used Heap Size: 56", lines[0])
	assert.Equal(t, "Allocated: 16, Free: 16", lines[1])
}

func TestReportEmptyHeap(t *testing.T) {
	b := target.NewBuilder(0x2000)

	var out bytes.Buffer
	totals := heapwalk.Report(&out, b.Image(), b.Boundary(), 0, true)

	assert.Equal(t, heapwalk.Totals{}, totals)
	assert.Equal(t, "Used Heap Size: 0\nAllocated: 0, Free: 0\n", out.String())
}
