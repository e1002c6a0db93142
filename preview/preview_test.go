package preview

import (
	"testing"

	"github.com/voxelcore/voxelcore/store"
)

func TestRenderTopDownPicksTopmostVoxel(t *testing.T) {
	v := store.New()
	v.SetAt(0, 0, 0, store.Voxel{R: 1, A: 255})
	v.SetAt(0, 0, 1, store.Voxel{R: 2, A: 255}) // higher Z: should win

	img := RenderTopDown(v)
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Fatalf("image bounds = %v, want 1x1", img.Bounds())
	}
	r, _, _, a := img.At(0, 0).RGBA()
	if r>>8 != 2 || a>>8 != 255 {
		t.Errorf("top pixel = R:%d A:%d, want R:2 A:255", r>>8, a>>8)
	}
}

func TestRenderTopDownEmptyVolume(t *testing.T) {
	img := RenderTopDown(store.New())
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Errorf("empty volume should render a 1x1 placeholder, got %v", img.Bounds())
	}
}

func TestEncodeDecodeWebPRoundTrip(t *testing.T) {
	v := store.New()
	v.SetAt(0, 0, 0, store.Voxel{R: 10, G: 20, B: 30, A: 255})
	v.SetAt(1, 0, 0, store.Voxel{R: 40, G: 50, B: 60, A: 255})
	img := RenderTopDown(v)

	data, err := EncodeWebP(img)
	if err != nil {
		t.Fatalf("EncodeWebP: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("EncodeWebP produced no bytes")
	}

	decoded, err := DecodeWebP(data)
	if err != nil {
		t.Fatalf("DecodeWebP: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}
