package vxl

import "encoding/binary"

func (m *Map) chunkIndex(x, y int) int {
	return x/chunkSize + (y/chunkSize)*m.chunksX()
}

// findSuccessiveSurface scans forward from blockOffset for a run of
// consecutive solid-surface blocks starting at z=start, returning the Z
// just past the run and the block index just past the last one consumed
// (or blockOffset unchanged, and start, if z=start wasn't itself a stored
// surface block).
func findSuccessiveSurface(c *chunk, blockOffset, x, y, start int) (int, int) {
	cur := blockOffset
	if cur < len(c.blocks) && c.blocks[cur].position == posKey(x, y, start) {
		for {
			nextZ := keyGetZ(c.blocks[cur].position) + 1
			cur++
			if cur >= len(c.blocks) || c.blocks[cur].position != posKey(x, y, nextZ) {
				return nextZ, cur
			}
		}
	}
	return start, blockOffset
}

func writeSpanHeader(buf []byte, off int, s Span) {
	buf[off] = s.Length
	buf[off+1] = s.ColorStart
	buf[off+2] = s.ColorEnd
	buf[off+3] = s.AirStart
}

func appendColor(out *[]byte, color uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], color)
	*out = append(*out, buf[:]...)
}

// columnEncode emits the span sequence for one (x,y) column, consuming
// blocks from its chunk in order and advancing chunkOffsets[chunkIndex].
func columnEncode(m *Map, chunkOffsets []int, x, y int, out *[]byte) {
	ci := m.chunkIndex(x, y)
	c := &m.chunks[ci]

	firstRun := true
	z := 0
	if chunkOffsets[ci] < len(c.blocks) {
		z = keyGetZ(c.blocks[chunkOffsets[ci]].position)
	}

	for {
		var topStart int
		switch {
		case m.geometryGet(x, y, z):
			topStart = z
		case chunkOffsets[ci] < len(c.blocks):
			topStart = keyGetZ(c.blocks[chunkOffsets[ci]].position)
		default:
			topStart = z
		}

		topEnd, lastIdx := findSuccessiveSurface(c, chunkOffsets[ci], x, y, topStart)

		bottomStart := m.Depth
		switch {
		case topEnd == m.Depth || !m.geometryGet(x, y, topEnd):
			bottomStart = topEnd
		case lastIdx < len(c.blocks) && keyDiscardZ(c.blocks[lastIdx].position) == posKey(x, y, 0):
			bottomStart = keyGetZ(c.blocks[lastIdx].position)
		}

		var desc Span
		desc.ColorStart = uint8(topStart)
		desc.ColorEnd = uint8(topEnd - 1)
		if firstRun {
			desc.AirStart = 0
		} else {
			desc.AirStart = uint8(z)
		}
		firstRun = false

		headerOff := len(*out)
		*out = append(*out, 0, 0, 0, 0)

		for k := topStart; k < topEnd; k++ {
			appendColor(out, wireColor(c.blocks[chunkOffsets[ci]].color))
			chunkOffsets[ci]++
		}

		if bottomStart == m.Depth {
			desc.Length = 0
			writeSpanHeader(*out, headerOff, desc)
			return
		}

		bottomEnd, _ := findSuccessiveSurface(c, chunkOffsets[ci], x, y, bottomStart)
		if bottomEnd < m.Depth {
			desc.Length = uint8(1 + (topEnd - topStart) + (bottomEnd - bottomStart))
			writeSpanHeader(*out, headerOff, desc)
			for k := bottomStart; k < bottomEnd; k++ {
				appendColor(out, wireColor(c.blocks[chunkOffsets[ci]].color))
				chunkOffsets[ci]++
			}
			z = bottomEnd
		} else {
			desc.Length = uint8(1 + (topEnd - topStart))
			writeSpanHeader(*out, headerOff, desc)
			z = bottomStart
		}
	}
}

// Encode compresses the whole map back to VXL wire format.
func Encode(m *Map) []byte {
	chunkOffsets := make([]int, m.chunksX()*m.chunksY())
	var out []byte
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			columnEncode(m, chunkOffsets, x, y, &out)
		}
	}
	return out
}
