// Package mesh extracts a renderable surface from a tile's voxel contents.
// It is intentionally a naive per-face quad emitter, not a marching-cubes
// implementation: every exposed axis-aligned face of every solid voxel
// becomes one quad. This matches the coarse cube-faced look the reference
// editor falls back to before a smoother iso-surface pass, and is enough
// to exercise the store's neighbor-aware iteration.
package mesh

import "github.com/voxelcore/voxelcore/store"

// Vertex is one corner of an emitted quad.
type Vertex struct {
	Pos    [3]float32
	Normal [3]float32
	Color  [4]uint8
}

// face describes one of the six axis-aligned directions a voxel can expose.
type face struct {
	normal [3]int32
	corners [4][3]float32
}

// faces lists the unit-cube corner offsets for each of the six directions,
// wound so the quad's front face points along normal.
var faces = [6]face{
	{normal: [3]int32{1, 0, 0}, corners: [4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	{normal: [3]int32{-1, 0, 0}, corners: [4][3]float32{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}}},
	{normal: [3]int32{0, 1, 0}, corners: [4][3]float32{{1, 1, 0}, {0, 1, 0}, {0, 1, 1}, {1, 1, 1}}},
	{normal: [3]int32{0, -1, 0}, corners: [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{normal: [3]int32{0, 0, 1}, corners: [4][3]float32{{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}}},
	{normal: [3]int32{0, 0, -1}, corners: [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
}

// ExtractSurface emits one quad (four vertices, caller triangulates as
// 0-1-2, 0-2-3) per exposed face of every solid voxel in the tile at
// origin. Occlusion is checked against v directly, including voxels
// outside the tile, so faces at a tile boundary are culled correctly
// against an occupied neighbor tile.
func ExtractSurface(v *store.Volume, origin store.Origin) ([]Vertex, error) {
	data, id := v.TileData(origin)
	if id == 0 {
		return nil, nil
	}

	acc := store.NewAccessor(v)
	var verts []Vertex
	for lz := int32(0); lz < store.N; lz++ {
		for ly := int32(0); ly < store.N; ly++ {
			for lx := int32(0); lx < store.N; lx++ {
				vx := data[lz*store.N*store.N+ly*store.N+lx]
				if vx.IsEmpty() {
					continue
				}
				x, y, z := origin.X+lx, origin.Y+ly, origin.Z+lz
				for _, f := range faces {
					if !acc.GetAt(x+f.normal[0], y+f.normal[1], z+f.normal[2]).IsEmpty() {
						continue
					}
					n := [3]float32{float32(f.normal[0]), float32(f.normal[1]), float32(f.normal[2])}
					col := [4]uint8{vx.R, vx.G, vx.B, vx.A}
					for _, c := range f.corners {
						verts = append(verts, Vertex{
							Pos:    [3]float32{float32(x) + c[0], float32(y) + c[1], float32(z) + c[2]},
							Normal: n,
							Color:  col,
						})
					}
				}
			}
		}
	}
	return verts, nil
}
