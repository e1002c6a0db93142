package vxl

// This file is the interactive per-voxel surface: SetVoxel, ClearVoxel,
// IsSolid, OnSurface, ColorAt, GetTop, and CloneChunk. It trades one piece
// of the reference encoder's compactness for a much simpler, always-correct
// invariant: every solid voxel has a stored color block, not just surface
// voxels. Decode still produces the sparse (surface-only) representation
// the wire format implies, and Encode round-trips it correctly either way
// since columnEncode only depends on stored blocks and geometry bits
// agreeing, which both representations satisfy.

// SetVoxel makes (x,y,z) solid with the given color.
func (m *Map) SetVoxel(x, y, z int, color uint32) {
	m.geometrySet(x, y, z, true)
	chunkInsertSorted(m.chunkAt(x, y), posKey(x, y, z), color)
	m.streamed++
}

// ClearVoxel makes (x,y,z) air.
func (m *Map) ClearVoxel(x, y, z int) {
	m.geometrySet(x, y, z, false)
	chunkRemoveSorted(m.chunkAt(x, y), posKey(x, y, z))
	m.streamed++
}

// IsSolid reports whether (x,y,z) is occupied; out-of-bounds is always air.
func (m *Map) IsSolid(x, y, z int) bool {
	if x < 0 || y < 0 || z < 0 || x >= m.Width || y >= m.Height || z >= m.Depth {
		return false
	}
	return m.geometryGet(x, y, z)
}

// OnSurface reports whether (x,y,z) is solid and has at least one air (or
// out-of-bounds) face neighbor.
func (m *Map) OnSurface(x, y, z int) bool {
	if !m.IsSolid(x, y, z) {
		return false
	}
	neighbors := [6][3]int{
		{x - 1, y, z}, {x + 1, y, z},
		{x, y - 1, z}, {x, y + 1, z},
		{x, y, z - 1}, {x, y, z + 1},
	}
	for _, n := range neighbors {
		if !m.IsSolid(n[0], n[1], n[2]) {
			return true
		}
	}
	return false
}

// ColorAt returns the voxel's color and true if solid; for solid voxels
// with no stored block (can only arise from a decoded hollow interior) it
// falls back to defaultColor, matching libvxl_map_get.
func (m *Map) ColorAt(x, y, z int) (uint32, bool) {
	if !m.IsSolid(x, y, z) {
		return 0, false
	}
	c := m.chunkAt(x, y)
	if idx, found := chunkFind(c, posKey(x, y, z)); found {
		return c.blocks[idx].color, true
	}
	return defaultColor(x, y, z), true
}

// GetTop returns the Z of the topmost solid voxel in column (x,y).
func (m *Map) GetTop(x, y int) (int, bool) {
	for z := 0; z < m.Depth; z++ {
		if m.IsSolid(x, y, z) {
			return z, true
		}
	}
	return 0, false
}

// CloneChunk overwrites the chunk at grid position (cx,cy) in m with the
// corresponding chunk from src: a fast bulk duplication used by brush
// stamps and symmetric-copy tools, ported from libvxl_copy_chunk. src and
// m must share the same dimensions.
func (m *Map) CloneChunk(src *Map, cx, cy int) {
	si := cx + cy*src.chunksX()
	di := cx + cy*m.chunksX()
	srcChunk := &src.chunks[si]
	dstChunk := &m.chunks[di]
	dstChunk.blocks = append([]block(nil), srcChunk.blocks...)

	x0, y0 := cx*chunkSize, cy*chunkSize
	x1, y1 := x0+chunkSize, y0+chunkSize
	if x1 > m.Width {
		x1 = m.Width
	}
	if y1 > m.Height {
		y1 = m.Height
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			for z := 0; z < m.Depth; z++ {
				m.geometrySet(x, y, z, src.geometryGet(x, y, z))
			}
		}
	}
	m.streamed++
}
