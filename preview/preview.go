// Package preview renders a top-down thumbnail of a volume and encodes it
// as WebP, mirroring the reference editor's project-thumbnail feature.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/gen2brain/webp"

	"github.com/voxelcore/voxelcore/store"
)

// RenderTopDown rasterizes v's topmost visible voxel per (x,y) column into
// an RGBA image sized to v's exact bounding box. An empty volume renders as
// a single transparent pixel.
func RenderTopDown(v *store.Volume) *image.RGBA {
	bb := v.BoundingBox(true)
	if bb.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	w := int(bb.Hi[0] - bb.Lo[0])
	h := int(bb.Hi[1] - bb.Lo[1])
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	acc := store.NewAccessor(v)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var top store.Voxel
			for z := bb.Hi[2] - 1; z >= bb.Lo[2]; z-- {
				vx := acc.GetAt(bb.Lo[0]+int32(x), bb.Lo[1]+int32(y), z)
				if !vx.IsEmpty() {
					top = vx
					break
				}
			}
			// Flip Y: voxel-space Y grows away from the viewer, image-space Y
			// grows downward.
			img.Set(x, h-1-y, color.RGBA{R: top.R, G: top.G, B: top.B, A: 255})
		}
	}
	return img
}

// EncodeWebP encodes img as a WebP thumbnail.
func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("preview: encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeWebP decodes a previously-encoded thumbnail.
func DecodeWebP(data []byte) (image.Image, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preview: decode webp: %w", err)
	}
	return img, nil
}
