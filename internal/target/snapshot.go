package target

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/embtools/mcudiag/internal/heapwalk"
)

// Snapshot capture format: a 16-byte magic, six little-endian 32-bit
// header fields, then the raw memory image.
const snapshotMagic = "mcudiag heap v1\n"

const snapshotHeaderLen = 6 * 4

// Snapshot is a Target reconstructed from a capture file. All memory
// queries are answered from the embedded image; device-control
// operations return ErrOffline.
type Snapshot struct {
	mem *heapwalk.Image

	heapStart    uint32
	heapTop      uint32
	freeListHead uint32
	maxHeapAddr  uint32

	info Info
}

func (s *Snapshot) Memory() heapwalk.Memory { return s.mem }
func (s *Snapshot) HeapStart() uint32       { return s.heapStart }
func (s *Snapshot) HeapTop() uint32         { return s.heapTop }
func (s *Snapshot) FreeListHead() uint32    { return s.freeListHead }
func (s *Snapshot) MaxHeapAddr() uint32     { return s.maxHeapAddr }
func (s *Snapshot) Info() Info              { return s.info }

func (s *Snapshot) Reset() error    { return ErrOffline }
func (s *Snapshot) EnterDFU() error { return ErrOffline }
func (s *Snapshot) Break() error    { return ErrOffline }

// Load reads a snapshot file and, when present, its sidecar metadata
// from <path>.env.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	if vals, err := godotenv.Read(path + ".env"); err == nil {
		snap.info = infoFromEnv(vals)
	}

	return snap, nil
}

// Decode parses the snapshot wire format from r.
func Decode(r io.Reader) (*Snapshot, error) {
	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != snapshotMagic {
		return nil, fmt.Errorf("not a mcudiag heap snapshot")
	}

	header := make([]byte, snapshotHeaderLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	s := &Snapshot{
		heapStart:    binary.LittleEndian.Uint32(header[0:]),
		heapTop:      binary.LittleEndian.Uint32(header[4:]),
		freeListHead: binary.LittleEndian.Uint32(header[8:]),
		maxHeapAddr:  binary.LittleEndian.Uint32(header[12:]),
	}
	imageBase := binary.LittleEndian.Uint32(header[16:])
	imageLen := binary.LittleEndian.Uint32(header[20:])

	if s.heapStart > s.heapTop {
		return nil, fmt.Errorf("heap start 0x%08X above heap top 0x%08X", s.heapStart, s.heapTop)
	}
	// keep the coverage arithmetic below free of uint32 wraparound
	if imageLen > math.MaxUint32-imageBase {
		return nil, fmt.Errorf("image length %d overflows the address space at base 0x%08X", imageLen, imageBase)
	}
	if imageBase > s.heapStart || imageBase+imageLen < s.heapTop {
		return nil, fmt.Errorf("image [0x%08X, 0x%08X) does not cover heap [0x%08X, 0x%08X)",
			imageBase, imageBase+imageLen, s.heapStart, s.heapTop)
	}

	data := make([]byte, imageLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("reading %d image bytes: %w", imageLen, err)
	}
	s.mem = heapwalk.NewImage(imageBase, data)

	return s, nil
}

// Encode writes the snapshot wire format to w.
func (s *Snapshot) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, snapshotMagic); err != nil {
		return err
	}

	header := make([]byte, snapshotHeaderLen)
	binary.LittleEndian.PutUint32(header[0:], s.heapStart)
	binary.LittleEndian.PutUint32(header[4:], s.heapTop)
	binary.LittleEndian.PutUint32(header[8:], s.freeListHead)
	binary.LittleEndian.PutUint32(header[12:], s.maxHeapAddr)
	binary.LittleEndian.PutUint32(header[16:], s.mem.Base())
	binary.LittleEndian.PutUint32(header[20:], s.mem.Len())
	if _, err := w.Write(header); err != nil {
		return err
	}

	_, err := w.Write(s.mem.Data())
	return err
}

func infoFromEnv(vals map[string]string) Info {
	clock, _ := strconv.Atoi(vals["CLOCK_MHZ"])
	return Info{
		Board:     vals["BOARD"],
		Build:     vals["BUILD"],
		BuildDate: vals["BUILD_DATE"],
		MCU:       vals["MCU"],
		ClockMHz:  clock,
	}
}
