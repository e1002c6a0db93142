package paint

import (
	"fmt"
	"math"

	"github.com/voxelcore/voxelcore/shape"
	"github.com/voxelcore/voxelcore/store"
	"github.com/voxelcore/voxelcore/vmath"
)

// VolumeBlit performs a bulk dense write from a caller-owned buffer in
// (z,y,x) order into v starting at pos, spanning size.
func VolumeBlit(v *store.Volume, data []store.Voxel, pos, size [3]int32) error {
	want := int64(size[0]) * int64(size[1]) * int64(size[2])
	if int64(len(data)) < want {
		return fmt.Errorf("paint: blit: data too short: have %d, need %d", len(data), want)
	}
	i := 0
	for z := pos[2]; z < pos[2]+size[2]; z++ {
		for y := pos[1]; y < pos[1]+size[1]; y++ {
			for x := pos[0]; x < pos[0]+size[0]; x++ {
				v.SetAt(x, y, z, data[i])
				i++
			}
		}
	}
	return nil
}

// VolumeCrop intersects v with a full-opacity cube spanning box: syntactic
// sugar over VolumeOp with the Intersect blend mode.
func VolumeCrop(v *store.Volume, box vmath.Mat4) {
	VolumeOp(v, Painter{
		Mode:  Intersect,
		Shape: shape.KindCube,
		Color: [4]uint8{255, 255, 255, 255},
	}, box)
}

// VolumeMove rewrites v under an affine transform, nearest-neighbor
// sampling from a snapshot of the input.
func VolumeMove(v *store.Volume, mat vmath.Mat4) {
	snapshot := v.Copy()
	v.Clear()

	inv, ok := mat.Invert()
	if !ok {
		return
	}

	srcBox := snapshot.BoundingBox(false)
	if srcBox.Empty() {
		return
	}
	destBox := transformBox(srcBox, mat)

	acc := store.NewAccessor(snapshot)
	for z := destBox.Lo[2]; z < destBox.Hi[2]; z++ {
		for y := destBox.Lo[1]; y < destBox.Hi[1]; y++ {
			for x := destBox.Lo[0]; x < destBox.Hi[0]; x++ {
				src := inv.MulPoint(vmath.Vec3{float64(x) + 0.5, float64(y) + 0.5, float64(z) + 0.5})
				sx := int32(math.Floor(src[0]))
				sy := int32(math.Floor(src[1]))
				sz := int32(math.Floor(src[2]))
				val := acc.GetAt(sx, sy, sz)
				if !val.IsEmpty() {
					v.SetAt(x, y, z, val)
				}
			}
		}
	}
}

// transformBox returns the axis-aligned box enclosing box's eight corners
// mapped through mat.
func transformBox(box store.Box, mat vmath.Mat4) store.Box {
	corners := [8][3]float64{
		{float64(box.Lo[0]), float64(box.Lo[1]), float64(box.Lo[2])},
		{float64(box.Hi[0]), float64(box.Lo[1]), float64(box.Lo[2])},
		{float64(box.Lo[0]), float64(box.Hi[1]), float64(box.Lo[2])},
		{float64(box.Hi[0]), float64(box.Hi[1]), float64(box.Lo[2])},
		{float64(box.Lo[0]), float64(box.Lo[1]), float64(box.Hi[2])},
		{float64(box.Hi[0]), float64(box.Lo[1]), float64(box.Hi[2])},
		{float64(box.Lo[0]), float64(box.Hi[1]), float64(box.Hi[2])},
		{float64(box.Hi[0]), float64(box.Hi[1]), float64(box.Hi[2])},
	}
	lo := [3]float64{1e18, 1e18, 1e18}
	hi := [3]float64{-1e18, -1e18, -1e18}
	for _, c := range corners {
		p := mat.MulPoint(vmath.Vec3(c))
		for i := 0; i < 3; i++ {
			if p[i] < lo[i] {
				lo[i] = p[i]
			}
			if p[i] > hi[i] {
				hi[i] = p[i]
			}
		}
	}
	return store.Box{
		Lo: [3]int32{int32(math.Floor(lo[0])), int32(math.Floor(lo[1])), int32(math.Floor(lo[2]))},
		Hi: [3]int32{int32(math.Ceil(hi[0])), int32(math.Ceil(hi[1])), int32(math.Ceil(hi[2]))},
	}
}
