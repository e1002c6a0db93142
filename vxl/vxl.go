// Package vxl implements the column-span codec for the Ace-of-Spades VXL
// map format: decode, encode, streaming I/O, size inference, and the
// border-closing pass that recovers the format's wrapped-edge convention.
package vxl

import "errors"

// ErrTruncated is returned when a byte stream ends before a span or its
// inline colors are fully present.
var ErrTruncated = errors.New("vxl: truncated span data")

// ErrInconsistentSpan is returned when a span's length field is
// inconsistent with its color-run boundaries.
var ErrInconsistentSpan = errors.New("vxl: inconsistent span length arithmetic")

// chunkSize is the edge length of the internal chunk grid the map is split
// into to speed up localized edits; it is unrelated to the store package's
// tile size N, though both happen to be 16 in practice.
const chunkSize = 16

// defaultColor is the color substituted for a solid voxel that has no
// stored color of its own — subterranean material never seen from the
// surface, or a border-closing insertion. 0x674028 is the format's
// reference value (an arbitrary brown), preserved verbatim; x,y,z are
// accepted for parity with the original macro but unused.
func defaultColor(x, y, z int) uint32 {
	return 0x674028
}

// block is one stored surface voxel: its packed position key and color.
type block struct {
	position uint32
	color    uint32
}

// chunk holds the surface blocks for one chunkSize x chunkSize column
// region, kept sorted by position key so lookups and edits can binary
// search. During decode, blocks are appended in strictly increasing
// position-key order (the traversal order guarantees this), so the sort
// invariant holds without extra work; interactive edits go through
// chunkInsertSorted/chunkRemoveSorted, which maintain it explicitly.
type chunk struct {
	blocks []block
}

func chunkPut(c *chunk, pos, color uint32) {
	c.blocks = append(c.blocks, block{position: pos, color: color})
}

// chunkFind returns the index of pos in c.blocks (sorted order) and
// whether it was found; if not found, the index is where it would be
// inserted.
func chunkFind(c *chunk, pos uint32) (int, bool) {
	lo, hi := 0, len(c.blocks)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case c.blocks[mid].position < pos:
			lo = mid + 1
		case c.blocks[mid].position > pos:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

func chunkInsertSorted(c *chunk, pos, color uint32) {
	idx, found := chunkFind(c, pos)
	if found {
		c.blocks[idx].color = color
		return
	}
	c.blocks = append(c.blocks, block{})
	copy(c.blocks[idx+1:], c.blocks[idx:])
	c.blocks[idx] = block{position: pos, color: color}
}

// chunkShrinkFactor mirrors LIBVXL_CHUNK_SHRINK: after a removal, if the
// live block count drops to a quarter of the backing array's capacity, the
// array is reallocated down so decoded-chunk memory tracks surface area
// rather than holding onto peak usage forever.
const chunkShrinkFactor = 4

func chunkRemoveSorted(c *chunk, pos uint32) {
	idx, found := chunkFind(c, pos)
	if !found {
		return
	}
	c.blocks = append(c.blocks[:idx], c.blocks[idx+1:]...)
	if len(c.blocks) > 0 && cap(c.blocks) >= len(c.blocks)*chunkShrinkFactor {
		shrunk := make([]block, len(c.blocks))
		copy(shrunk, c.blocks)
		c.blocks = shrunk
	}
}

// posKey packs (x,y,z) as 0xYYYXXXZZ: 12 bits Y, 12 bits X, 8 bits Z.
func posKey(x, y, z int) uint32 {
	return uint32(y)<<20 | uint32(x)<<8 | uint32(z)
}

func keyGetX(k uint32) int { return int((k >> 8) & 0xFFF) }
func keyGetY(k uint32) int { return int((k >> 20) & 0xFFF) }
func keyGetZ(k uint32) int { return int(k & 0xFF) }
func keyDiscardZ(k uint32) uint32 {
	return k &^ 0xFF
}

// wireColor applies the format's on-disk color convention: the top alpha
// byte is format-defined (0x7F), not the geometry's alpha.
func wireColor(rgb uint32) uint32 {
	return 0x7F000000 | (rgb & 0xFFFFFF)
}

// Span is one top-surface record: four one-byte fields followed by its
// inline RGBA words. length==0 marks the column's last span.
type Span struct {
	Length     uint8
	ColorStart uint8
	ColorEnd   uint8
	AirStart   uint8
}

// byteLength returns the total number of bytes this span occupies,
// including its 4-byte header and all inline color words.
func (s Span) byteLength() int {
	if s.Length > 0 {
		return int(s.Length) * 4
	}
	return (int(s.ColorEnd) + 2 - int(s.ColorStart)) * 4
}

// Map is the decoder's private in-memory representation: a geometry bitmap
// (one bit per voxel recording solidity) plus a grid of per-chunk sorted
// surface-color blocks.
type Map struct {
	Width, Height, Depth int

	chunks   []chunk
	geometry []uint64
	streamed int
}

func (m *Map) chunksX() int { return (m.Width + chunkSize - 1) / chunkSize }
func (m *Map) chunksY() int { return (m.Height + chunkSize - 1) / chunkSize }

func (m *Map) chunkAt(x, y int) *chunk {
	cx, cy := x/chunkSize, y/chunkSize
	return &m.chunks[cx+cy*m.chunksX()]
}

func (m *Map) geometryGet(x, y, z int) bool {
	offset := z + (x+y*m.Width)*m.Depth
	return m.geometry[offset/64]&(uint64(1)<<uint(offset%64)) != 0
}

func (m *Map) geometrySet(x, y, z int, state bool) {
	offset := z + (x+y*m.Width)*m.Depth
	word := &m.geometry[offset/64]
	bit := uint(offset % 64)
	if state {
		*word |= uint64(1) << bit
	} else {
		*word &^= uint64(1) << bit
	}
}

// New returns an empty map of the given dimensions: every column's bottom
// Z-layer solid with the default color, everything above it air. This
// matches libvxl_create's behavior when given no source data.
func New(width, height, depth int) *Map {
	m := &Map{Width: width, Height: height, Depth: depth}
	m.chunks = make([]chunk, m.chunksX()*m.chunksY())
	sg := (width*height*depth + 63) / 64
	m.geometry = make([]uint64, sg)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetVoxel(x, y, depth-1, defaultColor(x, y, depth-1))
		}
	}
	return m
}
