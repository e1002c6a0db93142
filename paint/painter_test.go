package paint

import (
	"context"
	"io"
	"testing"

	"github.com/voxelcore/voxelcore/progress"
	"github.com/voxelcore/voxelcore/shape"
	"github.com/voxelcore/voxelcore/store"
	"github.com/voxelcore/voxelcore/vmath"
)

func paintAt(center [3]float64) vmath.Mat4 {
	return vmath.Translation(vmath.Vec3(center))
}

// TestSymmetryAppliesEachSubsetExactlyOnce is the regression test for the
// bug this package's symmetry replication used to have: naive recursive
// mirroring double-counted the case where more than one axis bit is set.
// With two symmetry bits enabled and well-separated replica centers, each
// of the four mirror combinations should paint its own distinct replica —
// including the one matching both axes flipped — and nothing else.
func TestSymmetryAppliesEachSubsetExactlyOnce(t *testing.T) {
	v := store.New()
	p := Painter{
		Mode:           Over,
		Shape:          shape.KindCube,
		Color:          [4]uint8{255, 255, 255, 255},
		SymmetryBits:   SymX | SymY,
		SymmetryOrigin: [3]float64{0, 0, 0},
	}
	VolumeOp(v, p, paintAt([3]float64{10, 10, 10}))

	wantSolid := [][3]int32{{10, 10, 10}, {-10, 10, 10}, {10, -10, 10}, {-10, -10, 10}}
	for _, c := range wantSolid {
		if got := v.GetAt(c[0], c[1], c[2]); got.IsEmpty() {
			t.Errorf("expected replica at %v to be solid, got empty", c)
		}
	}

	// Z was never in SymmetryBits: the Z-mirrored position must stay empty.
	if got := v.GetAt(10, 10, -10); !got.IsEmpty() {
		t.Errorf("voxel at (10,10,-10) is solid, but Z symmetry was not enabled")
	}
}

func TestVolumeOpIsMemoized(t *testing.T) {
	v := store.New()
	p := Painter{Mode: Paint, Shape: shape.KindSphere, Color: [4]uint8{1, 2, 3, 255}}
	box := paintAt([3]float64{0, 0, 0})

	VolumeOp(v, p, box)
	snapshot := v.Copy()

	v2 := store.New()
	VolumeOp(v2, p, box) // same key: should hit paintCache
	store.VoxelSeq(snapshot, true)(func(x, y, z int32, val store.Voxel) bool {
		if got := v2.GetAt(x, y, z); got != val {
			t.Errorf("cached VolumeOp result differs at (%d,%d,%d): %v vs %v", x, y, z, got, val)
		}
		return true
	})
}

func TestVolumeOpWithOptionsCancellation(t *testing.T) {
	v := store.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := Painter{Mode: Paint, Shape: shape.KindCube, Color: [4]uint8{1, 1, 1, 255}, SymmetryBits: SymX | SymY | SymZ}

	err := VolumeOpWithOptions(v, p, paintAt([3]float64{0, 0, 0}), &Options{Ctx: ctx})
	if err == nil {
		t.Fatal("VolumeOpWithOptions with an already-cancelled context should return an error")
	}
}

// TestIntersectClearsVoxelOutsideShapeWithinBox is the regression test for
// applyOpOnce's old unconditional zero-coverage skip: intersect/
// intersect_fill must still clear a solid destination voxel whose shape
// coverage is zero, as long as it falls inside the op's bounding box. A
// sphere painted with Intersect over a cubic box must carve away the
// corners, not just leave everything inside the box untouched.
func TestIntersectClearsVoxelOutsideShapeWithinBox(t *testing.T) {
	v := store.New()
	v.SetAt(0, 0, 0, store.Voxel{A: 255}) // inside the sphere: must survive
	v.SetAt(3, 3, 3, store.Voxel{A: 255}) // inside the box, outside the sphere: must be cleared

	box := vmath.Translation(vmath.Vec3{0, 0, 0}).Mul(vmath.Scaling(4, 4, 4))
	VolumeOp(v, Painter{
		Mode:  Intersect,
		Shape: shape.KindSphere,
		Color: [4]uint8{255, 255, 255, 255},
	}, box)

	if got := v.GetAt(0, 0, 0); got.IsEmpty() {
		t.Error("voxel inside the sphere was cleared by Intersect, want it to survive")
	}
	if got := v.GetAt(3, 3, 3); !got.IsEmpty() {
		t.Errorf("voxel outside the sphere (but inside the box) = %v, want cleared by Intersect", got)
	}
}

func TestVolumeOpWithOptionsProgress(t *testing.T) {
	v := store.New()
	p := Painter{Mode: Paint, Shape: shape.KindCube, Color: [4]uint8{1, 1, 1, 255}, SymmetryBits: SymX}
	bar := progress.NewBar(io.Discard)
	var calls int
	opts := &Options{Progress: func(title string, total, current int) {
		calls++
		bar.Report(title, total, current)
	}}
	if err := VolumeOpWithOptions(v, p, paintAt([3]float64{1, 1, 1}), opts); err != nil {
		t.Fatalf("VolumeOpWithOptions: %v", err)
	}
	bar.Finish()
	if calls != 2 { // identity + X mirror
		t.Errorf("progress reported %d times, want 2", calls)
	}
}
