package paint

import (
	"context"
	"testing"

	"github.com/voxelcore/voxelcore/store"
)

func TestVolumeMergeOverAliasesEmptyDst(t *testing.T) {
	src := store.New()
	src.SetAt(0, 0, 0, store.Voxel{R: 7, A: 255})
	dst := store.New()

	VolumeMerge(dst, src, Over, nil)

	if got := dst.GetAt(0, 0, 0); got.R != 7 || got.A != 255 {
		t.Errorf("GetAt(0,0,0) after merge = %v, want src's voxel", got)
	}
}

func TestVolumeMergeOverSkipsEmptySrcTile(t *testing.T) {
	dst := store.New()
	dst.SetAt(0, 0, 0, store.Voxel{R: 1, A: 255})
	src := store.New() // no tiles at all

	VolumeMerge(dst, src, Over, nil)
	if got := dst.GetAt(0, 0, 0); got.R != 1 {
		t.Errorf("GetAt(0,0,0) after no-op merge = %v, want unchanged", got)
	}
}

func TestVolumeMergeWithTint(t *testing.T) {
	src := store.New()
	src.SetAt(0, 0, 0, store.Voxel{R: 1, G: 1, B: 1, A: 255})
	dst := store.New()
	tint := [4]uint8{200, 100, 50, 255}

	VolumeMerge(dst, src, Over, &tint)
	got := dst.GetAt(0, 0, 0)
	if got.R != tint[0] || got.G != tint[1] || got.B != tint[2] {
		t.Errorf("tinted merge result = %v, want color %v", got, tint)
	}
}

func TestVolumeMergeWithOptionsCancellation(t *testing.T) {
	src := store.New()
	src.SetAt(0, 0, 0, store.Voxel{A: 255})
	dst := store.New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := VolumeMergeWithOptions(dst, src, Over, nil, &Options{Ctx: ctx})
	if err == nil {
		t.Fatal("VolumeMergeWithOptions with a cancelled context should return an error")
	}
}
