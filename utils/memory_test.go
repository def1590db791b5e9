package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySizeString(t *testing.T) {
	assert.Equal(t, "0B", MemorySize(0).String())
	assert.Equal(t, "512B", MemorySize(512).String())
	assert.Equal(t, "4K", (4 * KB).String())
	assert.Equal(t, "1.50K", MemorySize(1536).String())
	assert.Equal(t, "2M", (2 * MB).String())
}

func TestParseMemorySize(t *testing.T) {
	for in, want := range map[string]MemorySize{
		"1024": 1024,
		"16K":  16 * KB,
		"1.5M": MemorySize(1.5 * float64(MB)),
		"2g":   2 * GB,
		"64B":  64,
	} {
		got, err := ParseMemorySize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMemorySize("")
	assert.Error(t, err)
	_, err = ParseMemorySize("lots")
	assert.Error(t, err)
}
