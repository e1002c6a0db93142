package paint

import (
	"testing"

	"github.com/voxelcore/voxelcore/store"
	"github.com/voxelcore/voxelcore/vmath"
)

func TestVolumeBlit(t *testing.T) {
	v := store.New()
	size := [3]int32{2, 2, 2}
	data := make([]store.Voxel, 8)
	for i := range data {
		data[i] = store.Voxel{R: uint8(i), A: 255}
	}
	if err := VolumeBlit(v, data, [3]int32{0, 0, 0}, size); err != nil {
		t.Fatalf("VolumeBlit: %v", err)
	}
	if got := v.GetAt(1, 1, 1); got.R != 7 {
		t.Errorf("GetAt(1,1,1) = %v, want R=7 (last written voxel)", got)
	}
}

func TestVolumeBlitShortBuffer(t *testing.T) {
	v := store.New()
	err := VolumeBlit(v, make([]store.Voxel, 1), [3]int32{0, 0, 0}, [3]int32{2, 2, 2})
	if err == nil {
		t.Error("VolumeBlit with too few voxels should return an error")
	}
}

func TestVolumeCrop(t *testing.T) {
	v := store.New()
	v.SetAt(0, 0, 0, store.Voxel{A: 255})
	v.SetAt(100, 100, 100, store.Voxel{A: 255})

	box := vmath.Translation(vmath.Vec3{0, 0, 0}).Mul(vmath.Scaling(4, 4, 4))
	VolumeCrop(v, box)

	if got := v.GetAt(100, 100, 100); !got.IsEmpty() {
		t.Error("VolumeCrop left a voxel outside the crop box")
	}
}

func TestVolumeMoveTranslates(t *testing.T) {
	v := store.New()
	v.SetAt(0, 0, 0, store.Voxel{R: 42, A: 255})

	VolumeMove(v, vmath.Translation(vmath.Vec3{5, 0, 0}))

	if got := v.GetAt(5, 0, 0); got.R != 42 {
		t.Errorf("GetAt(5,0,0) after move = %v, want R=42", got)
	}
	if got := v.GetAt(0, 0, 0); !got.IsEmpty() {
		t.Error("VolumeMove left the original voxel behind")
	}
}
