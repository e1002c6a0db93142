package store

// Origin identifies a tile by its lattice-aligned corner coordinates (each
// component a multiple of N).
type Origin struct {
	X, Y, Z int32
}

// floorDiv is integer division that rounds toward negative infinity, needed
// because tile origins and in-tile offsets must decompose correctly for
// negative world coordinates (the core places no bound on coordinates).
func floorDiv(a, n int32) int32 {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

func floorMod(a, n int32) int32 {
	m := a % n
	if m != 0 && (m < 0) != (n < 0) {
		m += n
	}
	return m
}

// OriginOf returns the tile origin containing the world coordinate (x,y,z).
func OriginOf(x, y, z int32) Origin {
	return Origin{floorDiv(x, N) * N, floorDiv(y, N) * N, floorDiv(z, N) * N}
}

// localIndex returns the within-tile voxel index for a world coordinate
// known to fall inside the tile at origin o. Ordering is (x,y,z)
// lexicographic with x innermost, matching the iteration order contract.
func localIndex(o Origin, x, y, z int32) int {
	lx := floorMod(x, N)
	ly := floorMod(y, N)
	lz := floorMod(z, N)
	return int(lz)*N*N + int(ly)*N + int(lx)
}

// tilePayload is the refcounted dense N^3 voxel array backing one tile.
// A payload with refs > 1 is shared and immutable; writers must clone it
// first (copy-on-write).
type tilePayload struct {
	voxels [voxelsPerTile]Voxel
	id     uint64
	refs   int32
}

// emptyPayload is the singleton "all-empty" payload shared by the neighbor
// tiles IncludeNeighbors inserts and by CopyTile from an absent source tile.
// A tile created by a write gets its own payload, and a tile whose voxels
// all become transparent keeps its payload until RemoveEmptyTiles drops it.
// Its id is 0 by contract; its refs field is never consulted for the
// all-empty fast path because it is unconditionally treated as shared.
var emptyPayload = &tilePayload{id: 0}

func newEmptyPayload() *tilePayload {
	return emptyPayload
}

func (p *tilePayload) isEmptySingleton() bool {
	return p == emptyPayload
}

// clone returns a fresh payload with p's voxel data copied and a new id.
func (p *tilePayload) clone() *tilePayload {
	np := &tilePayload{id: nextPayloadID(), refs: 1}
	np.voxels = p.voxels
	return np
}

// allEmpty reports whether every voxel in the payload is transparent; used
// by RemoveEmptyTiles.
func (p *tilePayload) allEmpty() bool {
	if p.isEmptySingleton() {
		return true
	}
	for i := range p.voxels {
		if !p.voxels[i].IsEmpty() {
			return false
		}
	}
	return true
}
