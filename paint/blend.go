// Package paint implements the scalar-field-driven bulk mutation engine:
// shape evaluation, blend-mode arithmetic, symmetry replication, and
// memoized volume/tile operations.
package paint

import (
	"fmt"

	"github.com/voxelcore/voxelcore/store"
)

// Mode is the closed set of blend modes governing how an op's per-voxel ink
// (source, "b") combines with the existing voxel ("a").
type Mode int

const (
	Over Mode = iota
	Sub
	SubClamp
	Paint
	Max
	Intersect
	IntersectFill
	MultAlpha
	Replace
)

func clamp255(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f + 0.5)
}

// blend combines destination voxel a with source voxel b under mode,
// including the color-preservation rule for sub/sub_clamp/mult_alpha when
// the source has zero coverage.
func blend(mode Mode, a, b store.Voxel) store.Voxel {
	af := float64(a.A) / 255
	bf := float64(b.A) / 255

	switch mode {
	case Over:
		if b.A == 0 {
			return a
		}
		outA := bf + af*(1-bf)
		var r, g, bch float64
		if outA > 0 {
			r = (float64(b.R)*bf + float64(a.R)*af*(1-bf)) / outA
			g = (float64(b.G)*bf + float64(a.G)*af*(1-bf)) / outA
			bch = (float64(b.B)*bf + float64(a.B)*af*(1-bf)) / outA
		}
		return store.Voxel{R: clamp255(r), G: clamp255(g), B: clamp255(bch), A: clamp255(outA * 255)}

	case Sub:
		if b.A == 0 {
			return a
		}
		outA := af - bf
		if outA < 0 {
			outA = 0
		}
		return store.Voxel{R: a.R, G: a.G, B: a.B, A: clamp255(outA * 255)}

	case SubClamp:
		if b.A == 0 {
			return a
		}
		maxAllowed := 1 - bf
		outA := af
		if outA > maxAllowed {
			outA = maxAllowed
		}
		return store.Voxel{R: a.R, G: a.G, B: a.B, A: clamp255(outA * 255)}

	case Paint:
		if b.A == 0 {
			return a
		}
		r := float64(a.R)*(1-bf) + float64(b.R)*bf
		g := float64(a.G)*(1-bf) + float64(b.G)*bf
		bch := float64(a.B)*(1-bf) + float64(b.B)*bf
		return store.Voxel{R: clamp255(r), G: clamp255(g), B: clamp255(bch), A: a.A}

	case Max:
		// Color always comes from b, even when b's coverage is zero — only
		// alpha is a max, not a skip.
		outA := af
		if bf > outA {
			outA = bf
		}
		return store.Voxel{R: b.R, G: b.G, B: b.B, A: clamp255(outA * 255)}

	case Intersect:
		if a.A == 0 {
			return a
		}
		outA := af
		if bf < outA {
			outA = bf
		}
		return store.Voxel{R: a.R, G: a.G, B: a.B, A: clamp255(outA * 255)}

	case IntersectFill:
		if a.A == 0 {
			return a
		}
		outA := af
		if bf < outA {
			outA = bf
		}
		if outA <= 0 {
			return store.Voxel{}
		}
		return store.Voxel{R: b.R, G: b.G, B: b.B, A: clamp255(outA * 255)}

	case MultAlpha:
		if b.A == 0 {
			// Contractual: alpha goes to zero, but color channels are left
			// untouched rather than multiplied away.
			return store.Voxel{R: a.R, G: a.G, B: a.B, A: 0}
		}
		outA := af * bf
		return store.Voxel{
			R: clamp255(float64(a.R) * bf),
			G: clamp255(float64(a.G) * bf),
			B: clamp255(float64(a.B) * bf),
			A: clamp255(outA * 255),
		}

	case Replace:
		return b

	default:
		panic(fmt.Sprintf("paint: unhandled blend mode %v", mode))
	}
}

// canSkipTile reports whether an entire tile can be left untouched for the
// given mode, given whether the source tile and the destination tile are
// fully empty. over/sub/sub_clamp/paint/max skip on an empty source tile
// (for max this is a merge shortcut: an absent source tile contributes
// nothing, although blend(Max) itself takes b's color); intersect,
// intersect_fill and mult_alpha skip on an empty destination tile, where
// their blend leaves the voxel empty.
func canSkipTile(mode Mode, srcAllEmpty, dstAllEmpty bool) bool {
	switch mode {
	case Over, Sub, SubClamp, Paint, Max:
		return srcAllEmpty
	case Intersect, IntersectFill, MultAlpha:
		return dstAllEmpty
	case Replace:
		return false
	default:
		return false
	}
}
