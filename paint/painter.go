package paint

import (
	"context"
	"fmt"

	"github.com/voxelcore/voxelcore/shape"
	"github.com/voxelcore/voxelcore/store"
	"github.com/voxelcore/voxelcore/vmath"
)

// Painter is the aggregate driving a bulk op: shape, blend mode, color,
// smoothness, symmetry, and an optional clip box.
type Painter struct {
	Mode           Mode
	Shape          shape.Kind
	Color          [4]uint8
	Smoothness     float64
	SymmetryBits   uint8 // bit 0=X, 1=Y, 2=Z
	SymmetryOrigin [3]float64
	HasClip        bool
	Clip           store.Box
}

const (
	SymX uint8 = 1 << iota
	SymY
	SymZ
)

// mirrorAxisMatrix returns the affine matrix reflecting world points through
// the plane perpendicular to axis passing through origin.
func mirrorAxisMatrix(origin [3]float64, axis int) vmath.Mat4 {
	scale := vmath.Identity()
	scale[axis][axis] = -1
	t := vmath.Translation(vmath.Vec3(origin))
	tinv := vmath.Translation(vmath.Vec3{-origin[0], -origin[1], -origin[2]})
	return t.Mul(scale).Mul(tinv)
}

// mirrorForMask composes the mirror transforms for every axis set in mask.
// The per-axis mirrors commute (each touches a different coordinate), so
// composition order does not matter.
func mirrorForMask(origin [3]float64, mask uint8) vmath.Mat4 {
	m := vmath.Identity()
	for axis := 0; axis < 3; axis++ {
		if mask&(1<<uint(axis)) != 0 {
			m = mirrorAxisMatrix(origin, axis).Mul(m)
		}
	}
	return m
}

// VolumeOp applies painter p over box to v, replicating through symmetry
// and consulting the painter memoization cache.
func VolumeOp(v *store.Volume, p Painter, box vmath.Mat4) {
	_ = VolumeOpWithOptions(v, p, box, nil)
}

// VolumeOpWithOptions is VolumeOp with cancellation, progress reporting
// (once per symmetry replica applied), and reentrant locking around a
// caller-supplied mutex. opts may be nil, equivalent to VolumeOp.
func VolumeOpWithOptions(v *store.Volume, p Painter, box vmath.Mat4, opts *Options) error {
	opts.lock()
	defer opts.unlock()

	key := paintKey{volumeKey: v.Key(), box: box, painter: p}
	if cached, ok := paintCache.Get(key); ok {
		v.Set(cached)
		return nil
	}

	result := v.Copy()
	// Symmetry combines multiplicatively: every subset of the enabled
	// symmetry bits is applied exactly once, including the empty subset
	// (the original, unmirrored box).
	replicas := 0
	for mask := uint8(0); mask < 8; mask++ {
		if mask&^p.SymmetryBits == 0 {
			replicas++
		}
	}
	done := 0
	for mask := uint8(0); mask < 8; mask++ {
		if mask&^p.SymmetryBits != 0 {
			continue // not a subset of the enabled bits
		}
		if opts.cancelled() {
			return fmt.Errorf("paint: op: %w", context.Canceled)
		}
		mirrored := mirrorForMask(p.SymmetryOrigin, mask).Mul(box)
		applyOpOnce(result, p, mirrored)
		done++
		opts.report("paint", replicas, done)
	}

	snapshot := result.Copy()
	paintCache.Add(key, snapshot)
	v.Set(result)
	return nil
}

func applyOpOnce(v *store.Volume, p Painter, box vmath.Mat4) {
	if p.Mode == Intersect || p.Mode == IntersectFill {
		clearOutsideAABB(v, box)
	}

	inv, ok := box.Invert()
	if !ok {
		return
	}
	acc := store.NewAccessor(v)
	color := store.Voxel{R: p.Color[0], G: p.Color[1], B: p.Color[2], A: p.Color[3]}

	// Per-voxel skip rules mirror the reference combine() dispatch
	// (skip_src_empty / skip_dst_empty): a zero-coverage source is a true
	// no-op only for sub/sub_clamp/mult_alpha. intersect/intersect_fill must
	// still run on zero coverage to clear a solid destination voxel that
	// falls outside the shape, and max must still run to overwrite color
	// even when its own coverage is zero — neither is the tile-granular
	// canSkipTile rule (that one governs whole-tile shortcuts, not
	// individual zero-coverage voxels within a touched tile).
	skipSrcEmpty := p.Mode == Sub || p.Mode == SubClamp || p.Mode == MultAlpha
	skipDstEmpty := skipSrcEmpty || p.Mode == Intersect || p.Mode == IntersectFill

	store.BoxSeq(v, box, false)(func(x, y, z int32, existing store.Voxel) bool {
		if p.HasClip && outsideClip(p.Clip, x, y, z) {
			return true
		}
		if existing.A == 0 && skipDstEmpty {
			return true
		}
		local := inv.MulPoint(vmath.Vec3{float64(x) + 0.5, float64(y) + 0.5, float64(z) + 0.5})
		f := shape.Eval(p.Shape, local, [3]float64{1, 1, 1})
		coverage := shape.Coverage(f, p.Smoothness)
		src := color
		src.A = uint8(float64(color.A) * coverage)
		if src.A == 0 && skipSrcEmpty {
			return true
		}
		out := blend(p.Mode, existing, src)
		if out != existing {
			acc.SetAt(x, y, z, out)
		}
		return true
	})
}

func outsideClip(clip store.Box, x, y, z int32) bool {
	return x < clip.Lo[0] || x >= clip.Hi[0] ||
		y < clip.Lo[1] || y >= clip.Hi[1] ||
		z < clip.Lo[2] || z >= clip.Hi[2]
}

// clearOutsideAABB drops every tile lying entirely outside box's AABB: an
// intersect pre-pass, without which intersect/intersect_fill would leave
// phantom tiles behind the brush.
func clearOutsideAABB(v *store.Volume, box vmath.Mat4) {
	aabb := store.BoxWorldAABB(box)
	var toDrop []store.Origin
	for o := range store.TileSeq(v, false) {
		tlo := [3]int32{o.X, o.Y, o.Z}
		thi := [3]int32{o.X + store.N, o.Y + store.N, o.Z + store.N}
		if thi[0] <= aabb.Lo[0] || tlo[0] >= aabb.Hi[0] ||
			thi[1] <= aabb.Lo[1] || tlo[1] >= aabb.Hi[1] ||
			thi[2] <= aabb.Lo[2] || tlo[2] >= aabb.Hi[2] {
			toDrop = append(toDrop, o)
		}
	}
	for _, o := range toDrop {
		v.ClearTile(o)
	}
}
