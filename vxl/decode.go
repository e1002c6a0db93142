package vxl

import (
	"encoding/binary"
	"fmt"
)

// Decode parses a VXL byte stream of the given geometry into a Map.
// Malformed input is reported as a wrapped ErrTruncated/ErrInconsistentSpan,
// never a panic.
func Decode(width, height, depth int, data []byte) (*Map, error) {
	m := &Map{Width: width, Height: height, Depth: depth}
	m.chunks = make([]chunk, m.chunksX()*m.chunksY())
	sg := (width*height*depth + 63) / 64
	m.geometry = make([]uint64, sg)
	for i := range m.geometry {
		m.geometry[i] = ^uint64(0) // solid until spans say otherwise
	}

	offset := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := m.chunkAt(x, y)
			for {
				desc, err := readSpanHeader(data, offset, x, y)
				if err != nil {
					return nil, err
				}
				slen := desc.byteLength()
				if offset+slen > len(data) {
					return nil, fmt.Errorf("%w: span body at column (%d,%d)", ErrTruncated, x, y)
				}
				colorOff := offset + 4

				for z := int(desc.AirStart); z < int(desc.ColorStart); z++ {
					m.geometrySet(x, y, z, false)
				}
				for z := int(desc.ColorStart); z <= int(desc.ColorEnd); z++ {
					color := binary.LittleEndian.Uint32(data[colorOff+(z-int(desc.ColorStart))*4:])
					chunkPut(c, posKey(x, y, z), color)
				}

				topLen := int(desc.ColorEnd) - int(desc.ColorStart) + 1
				bottomLen := int(desc.Length) - 1 - topLen

				if desc.Length == 0 {
					offset += slen
					break
				}

				next, err := readSpanHeader(data, offset+slen, x, y)
				if err != nil {
					return nil, err
				}
				bottomStart := int(next.AirStart) - bottomLen
				if bottomLen < 0 || bottomStart < 0 {
					return nil, fmt.Errorf("%w: at column (%d,%d)", ErrInconsistentSpan, x, y)
				}
				for z := bottomStart; z < int(next.AirStart); z++ {
					color := binary.LittleEndian.Uint32(data[colorOff+(topLen+(z-bottomStart))*4:])
					chunkPut(c, posKey(x, y, z), color)
				}
				offset += slen
			}
		}
	}

	closeBorders(m)
	return m, nil
}

func readSpanHeader(data []byte, offset, x, y int) (Span, error) {
	if offset+4 > len(data) {
		return Span{}, fmt.Errorf("%w: span header at column (%d,%d)", ErrTruncated, x, y)
	}
	return Span{
		Length:     data[offset],
		ColorStart: data[offset+1],
		ColorEnd:   data[offset+2],
		AirStart:   data[offset+3],
	}, nil
}

// closeBorders recovers the on-disk format's wrapped-edge convention: where
// a solidity bit is set on one X (or Y) boundary of the map but not its
// opposite edge, and no color block already exists there, a default-color
// block is inserted on the solid side. This looks like a bug on first
// reading; it is not — it matches the reference encoder and must not be
// "fixed".
func closeBorders(m *Map) {
	for z := 0; z < m.Depth; z++ {
		for x := 0; x < m.Width; x++ {
			a := m.geometryGet(x, 0, z)
			b := m.geometryGet(x, m.Height-1, z)

			c1 := m.chunkAt(x, 0)
			_, found1 := chunkFind(c1, posKey(x, 0, z))
			c2 := m.chunkAt(x, m.Height-1)
			_, found2 := chunkFind(c2, posKey(x, m.Height-1, z))

			if a && !b && !found1 {
				chunkInsertSorted(c1, posKey(x, 0, z), defaultColor(x, 0, z))
			}
			if !a && b && !found2 {
				chunkInsertSorted(c2, posKey(x, m.Height-1, z), defaultColor(x, m.Height-1, z))
			}
		}
		for y := 0; y < m.Height; y++ {
			a := m.geometryGet(0, y, z)
			b := m.geometryGet(m.Width-1, y, z)

			c1 := m.chunkAt(0, y)
			_, found1 := chunkFind(c1, posKey(0, y, z))
			c2 := m.chunkAt(m.Width-1, y)
			_, found2 := chunkFind(c2, posKey(m.Width-1, y, z))

			if a && !b && !found1 {
				chunkInsertSorted(c1, posKey(0, y, z), defaultColor(0, y, z))
			}
			if !a && b && !found2 {
				chunkInsertSorted(c2, posKey(m.Width-1, y, z), defaultColor(m.Width-1, y, z))
			}
		}
	}
}
