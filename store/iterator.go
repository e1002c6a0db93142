package store

import "github.com/voxelcore/voxelcore/vmath"

// TileSeq yields each occupied tile origin once, in Go map iteration order:
// unspecified, and not guaranteed to repeat between two calls on the same
// volume state. When skipEmpty is set,
// tiles whose payload id is 0 (the canonical empty payload) are skipped.
func TileSeq(v *Volume, skipEmpty bool) func(yield func(Origin) bool) {
	return func(yield func(Origin) bool) {
		for o, p := range v.tm.m {
			if skipEmpty && p.isEmptySingleton() {
				continue
			}
			if !yield(o) {
				return
			}
		}
	}
}

// VoxelSeq yields every voxel coordinate and value in every tile, in (x,y,z)
// lexicographic order within a tile (x innermost); tile visitation order
// follows TileSeq.
func VoxelSeq(v *Volume, skipEmpty bool) func(yield func(x, y, z int32, val Voxel) bool) {
	return func(yield func(x, y, z int32, val Voxel) bool) {
		for o, p := range v.tm.m {
			if skipEmpty && p.isEmptySingleton() {
				continue
			}
			for lz := int32(0); lz < N; lz++ {
				for ly := int32(0); ly < N; ly++ {
					for lx := int32(0); lx < N; lx++ {
						val := p.voxels[lz*N*N+ly*N+lx]
						if skipEmpty && val.IsEmpty() {
							continue
						}
						if !yield(o.X+lx, o.Y+ly, o.Z+lz, val) {
							return
						}
					}
				}
			}
		}
	}
}

// UnionSeq yields every tile origin present in either a or b: first a's
// tiles, then b's tiles that are not already in a. Used to drive
// volume-merge.
func UnionSeq(a, b *Volume) func(yield func(Origin) bool) {
	return func(yield func(Origin) bool) {
		for o := range a.tm.m {
			if !yield(o) {
				return
			}
		}
		for o := range b.tm.m {
			if _, ok := a.tm.m[o]; ok {
				continue
			}
			if !yield(o) {
				return
			}
		}
	}
}

// IncludeNeighbors ensures every occupied tile's six face-neighbors exist
// in the map (inserting canonical-empty tiles where missing), so that
// border-reading operations like mesh extraction can see one voxel past
// the tile edge. The insertion does not bump the volume's version key.
func IncludeNeighbors(v *Volume) {
	offsets := [6][3]int32{
		{N, 0, 0}, {-N, 0, 0},
		{0, N, 0}, {0, -N, 0},
		{0, 0, N}, {0, 0, -N},
	}
	var toInsert []Origin
	for o := range v.tm.m {
		for _, d := range offsets {
			n := Origin{o.X + d[0], o.Y + d[1], o.Z + d[2]}
			if _, ok := v.tm.m[n]; !ok {
				toInsert = append(toInsert, n)
			}
		}
	}
	if len(toInsert) == 0 {
		return
	}
	savedKey := v.key
	v.prepareMapWrite()
	for _, o := range toInsert {
		if _, ok := v.tm.m[o]; !ok {
			v.tm.m[o] = emptyPayload
		}
	}
	v.key = savedKey
}

func floorf(f float64) int32 {
	i := int32(f)
	if f < float64(i) {
		i--
	}
	return i
}

func ceilf(f float64) int32 {
	i := int32(f)
	if f > float64(i) {
		i++
	}
	return i
}

// BoxWorldAABB returns the world-space axis-aligned box enclosing the
// unit-centered cube mapped through box.
func BoxWorldAABB(box vmath.Mat4) Box {
	lo, hi := boxWorldAABB(box)
	return Box{Lo: lo, Hi: hi}
}

// boxWorldAABB returns the world-space axis-aligned bounds of the
// unit-centered cube ([-1,1] on each axis) mapped through box.
func boxWorldAABB(box vmath.Mat4) ([3]int32, [3]int32) {
	corners := [8]vmath.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
	}
	lo := [3]float64{1e18, 1e18, 1e18}
	hi := [3]float64{-1e18, -1e18, -1e18}
	for _, c := range corners {
		p := box.MulPoint(c)
		for i := 0; i < 3; i++ {
			if p[i] < lo[i] {
				lo[i] = p[i]
			}
			if p[i] > hi[i] {
				hi[i] = p[i]
			}
		}
	}
	return [3]int32{floorf(lo[0]), floorf(lo[1]), floorf(lo[2])},
		[3]int32{ceilf(hi[0]), ceilf(hi[1]), ceilf(hi[2])}
}

// IntersectBox returns the overlap of two boxes (possibly Empty).
func IntersectBox(a, b Box) Box {
	lo, hi := intersectBoxes(a.Lo, a.Hi, b.Lo, b.Hi)
	return Box{Lo: lo, Hi: hi}
}

func intersectBoxes(alo, ahi, blo, bhi [3]int32) ([3]int32, [3]int32) {
	var lo, hi [3]int32
	for i := 0; i < 3; i++ {
		if alo[i] > blo[i] {
			lo[i] = alo[i]
		} else {
			lo[i] = blo[i]
		}
		if ahi[i] < bhi[i] {
			hi[i] = ahi[i]
		} else {
			hi[i] = bhi[i]
		}
	}
	return lo, hi
}

// BoxSeq yields every voxel coordinate (and current value) whose lattice
// center lies in the closed interior of the oriented box (the cube [-1,1]^3
// mapped through box). It walks the box's AABB, clipped to the volume's
// tile-granular AABB when skipEmpty is set (no non-empty voxel lies outside
// it), and tests each candidate voxel against the inverse box transform.
func BoxSeq(v *Volume, box vmath.Mat4, skipEmpty bool) func(yield func(x, y, z int32, val Voxel) bool) {
	return func(yield func(x, y, z int32, val Voxel) bool) {
		inv, ok := box.Invert()
		if !ok {
			return
		}
		lo, hi := boxWorldAABB(box)
		if skipEmpty {
			vb := v.BoundingBox(false)
			lo, hi = intersectBoxes(lo, hi, vb.Lo, vb.Hi)
		}
		if lo[0] >= hi[0] || lo[1] >= hi[1] || lo[2] >= hi[2] {
			return
		}
		acc := NewAccessor(v)
		const eps = 1e-9
		for z := lo[2]; z < hi[2]; z++ {
			for y := lo[1]; y < hi[1]; y++ {
				for x := lo[0]; x < hi[0]; x++ {
					p := inv.MulPoint(vmath.Vec3{float64(x) + 0.5, float64(y) + 0.5, float64(z) + 0.5})
					if p[0] < -1-eps || p[0] > 1+eps ||
						p[1] < -1-eps || p[1] > 1+eps ||
						p[2] < -1-eps || p[2] > 1+eps {
						continue
					}
					val := acc.GetAt(x, y, z)
					if skipEmpty && val.IsEmpty() {
						continue
					}
					if !yield(x, y, z, val) {
						return
					}
				}
			}
		}
	}
}
