package store

import "testing"

func TestSetGetRoundTrip(t *testing.T) {
	v := New()
	want := Voxel{R: 10, G: 20, B: 30, A: 255}
	v.SetAt(5, 5, 5, want)
	if got := v.GetAt(5, 5, 5); got != want {
		t.Errorf("GetAt(5,5,5) = %v, want %v", got, want)
	}
	if got := v.GetAt(100, 100, 100); !got.IsEmpty() {
		t.Errorf("GetAt outside any tile = %v, want empty", got)
	}
}

func TestNegativeCoordinates(t *testing.T) {
	v := New()
	want := Voxel{R: 1, G: 2, B: 3, A: 255}
	v.SetAt(-1, -17, -33, want)
	if got := v.GetAt(-1, -17, -33); got != want {
		t.Errorf("GetAt(-1,-17,-33) = %v, want %v", got, want)
	}
}

func TestCopyIsCOW(t *testing.T) {
	a := New()
	a.SetAt(0, 0, 0, Voxel{A: 255})
	b := a.Copy()

	b.SetAt(1, 1, 1, Voxel{A: 255})
	if !a.GetAt(1, 1, 1).IsEmpty() {
		t.Error("writing to a Copy() mutated the original")
	}
	if got := b.GetAt(0, 0, 0); got.IsEmpty() {
		t.Error("Copy() lost a voxel present before the copy")
	}
}

func TestKeyBumpsOnWrite(t *testing.T) {
	v := New()
	k0 := v.Key()
	v.SetAt(0, 0, 0, Voxel{A: 255})
	if v.Key() == k0 {
		t.Error("Key() did not change after a structural write")
	}
}

func TestClearResetsKey(t *testing.T) {
	v := New()
	v.SetAt(0, 0, 0, Voxel{A: 255})
	v.Clear()
	if v.Key() != 1 {
		t.Errorf("Key() after Clear() = %d, want 1", v.Key())
	}
	if !v.IsEmpty() {
		t.Error("IsEmpty() after Clear() = false")
	}
}

func TestRemoveEmptyTilesPreservesKey(t *testing.T) {
	v := New()
	v.SetAt(0, 0, 0, Voxel{A: 255})
	v.SetAt(0, 0, 0, Empty)
	k := v.Key()
	n := v.RemoveEmptyTiles()
	if n != 1 {
		t.Errorf("RemoveEmptyTiles() = %d, want 1", n)
	}
	if v.Key() != k {
		t.Errorf("Key() changed across RemoveEmptyTiles: %d -> %d", k, v.Key())
	}
}

func TestTileSeqSkipEmpty(t *testing.T) {
	v := New()
	v.SetAt(0, 0, 0, Voxel{A: 255})
	v.ClearTile(OriginOf(100, 0, 0)) // no-op, absent tile

	count := 0
	for range TileSeq(v, true) {
		count++
	}
	if count != 1 {
		t.Errorf("TileSeq(skipEmpty) yielded %d tiles, want 1", count)
	}
}

func TestVoxelSeqOrderAndSkip(t *testing.T) {
	v := New()
	v.SetAt(1, 0, 0, Voxel{A: 255})
	v.SetAt(0, 1, 0, Voxel{A: 255})

	var xs, ys []int32
	VoxelSeq(v, true)(func(x, y, _ int32, _ Voxel) bool {
		xs, ys = append(xs, x), append(ys, y)
		return true
	})
	if n := len(xs); n != 2 {
		t.Errorf("VoxelSeq(skipEmpty) yielded %d voxels, want 2", n)
	}
	// x is innermost within a tile, so (1,0,0) comes before (0,1,0).
	if len(xs) == 2 && (xs[0] != 1 || ys[0] != 0) {
		t.Errorf("VoxelSeq first voxel = (%d,%d,0), want (1,0,0)", xs[0], ys[0])
	}
}

func TestUnionSeq(t *testing.T) {
	a := New()
	a.SetAt(0, 0, 0, Voxel{A: 255})
	b := New()
	b.SetAt(0, 0, 0, Voxel{A: 255})
	b.SetAt(N, 0, 0, Voxel{A: 255})

	var origins []Origin
	for o := range UnionSeq(a, b) {
		origins = append(origins, o)
	}
	if len(origins) != 2 {
		t.Errorf("UnionSeq yielded %d origins, want 2", len(origins))
	}
}

func TestBoundingBox(t *testing.T) {
	v := New()
	if bb := v.BoundingBox(true); !bb.Empty() {
		t.Errorf("BoundingBox() of an empty volume = %v, want Empty", bb)
	}
	v.SetAt(3, 3, 3, Voxel{A: 255})
	bb := v.BoundingBox(true)
	if bb.Lo != [3]int32{3, 3, 3} || bb.Hi != [3]int32{4, 4, 4} {
		t.Errorf("exact BoundingBox() = %+v, want Lo=(3,3,3) Hi=(4,4,4)", bb)
	}
}

func TestAccessorAgreesWithDirectAccess(t *testing.T) {
	v := New()
	acc := NewAccessor(v)
	for i := int32(0); i < 40; i++ {
		acc.SetAt(i, 0, 0, Voxel{R: uint8(i), A: 255})
	}
	for i := int32(0); i < 40; i++ {
		want := Voxel{R: uint8(i), A: 255}
		if got := acc.GetAt(i, 0, 0); got != want {
			t.Errorf("accessor GetAt(%d,0,0) = %v, want %v", i, got, want)
		}
		if got := v.GetAt(i, 0, 0); got != want {
			t.Errorf("volume GetAt(%d,0,0) = %v, want %v", i, got, want)
		}
	}
}

func TestCopyTileAlias(t *testing.T) {
	src := New()
	src.SetAt(0, 0, 0, Voxel{A: 255})
	dst := New()
	dst.CopyTile(src, Origin{}, Origin{})
	if got := dst.GetAt(0, 0, 0); got.IsEmpty() {
		t.Error("CopyTile did not alias src's tile into dst")
	}
	src.SetAt(0, 0, 0, Voxel{R: 9, A: 255})
	if got := dst.GetAt(0, 0, 0); got.R == 9 {
		t.Error("mutating src after CopyTile leaked into dst (COW broken)")
	}
}
