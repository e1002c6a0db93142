package paint

import (
	"context"
	"fmt"

	"github.com/voxelcore/voxelcore/store"
)

// VolumeMerge walks the tile-union of dst and src, combining each pair of
// tiles under mode (optionally tinted by color).
func VolumeMerge(dst, src *store.Volume, mode Mode, color *[4]uint8) {
	_ = VolumeMergeWithOptions(dst, src, mode, color, nil)
}

// VolumeMergeWithOptions is VolumeMerge with cancellation, progress
// reporting, and reentrant locking around a caller-supplied mutex. opts
// may be nil, equivalent to VolumeMerge.
func VolumeMergeWithOptions(dst, src *store.Volume, mode Mode, color *[4]uint8, opts *Options) error {
	opts.lock()
	defer opts.unlock()

	origins := make([]store.Origin, 0)
	for o := range store.UnionSeq(dst, src) {
		origins = append(origins, o)
	}

	var toSet []setOp
	for i, o := range origins {
		if opts.cancelled() {
			return fmt.Errorf("paint: merge: %w", context.Canceled)
		}
		opts.report("merge", len(origins), i+1)

		dstData, dstID := dst.TileData(o)
		srcData, srcID := src.TileData(o)

		// Whole-tile shortcut: skip the per-voxel blend entirely when the
		// mode's combine is a no-op given one side's tile is fully empty.
		if canSkipTile(mode, srcID == 0, dstID == 0) {
			continue
		}
		// over/max with an empty dst tile and no tint: point dst's tile at
		// src's payload directly (refcount share, no per-voxel work).
		if (mode == Over || mode == Max) && dstID == 0 && color == nil {
			toSet = append(toSet, setOp{o: o, alias: true})
			continue
		}

		merged := mergeTile(dstID, dstData, srcID, srcData, mode, color)
		toSet = append(toSet, setOp{o: o, data: merged})
	}

	for _, op := range toSet {
		if op.alias {
			dst.CopyTile(src, op.o, op.o)
			continue
		}
		dst.SetTileData(op.o, op.data)
	}
	return nil
}

type setOp struct {
	o     store.Origin
	alias bool
	data  []store.Voxel
}

// mergeTile computes the blended contents of one tile pair, memoized by
// (dstID, srcID, mode, color).
func mergeTile(dstID uint64, dstData []store.Voxel, srcID uint64, srcData []store.Voxel, mode Mode, color *[4]uint8) []store.Voxel {
	var colorKey [4]uint8
	if color != nil {
		colorKey = *color
	}
	key := mergeKey{srcID: dstID, otherID: srcID, mode: mode, color: colorKey}
	if cached, ok := mergeCache.Get(key); ok {
		return cached
	}

	out := make([]store.Voxel, store.TileLen)
	for i := range out {
		a := store.Empty
		if dstData != nil {
			a = dstData[i]
		}
		b := store.Empty
		if srcData != nil {
			b = srcData[i]
		}
		if color != nil {
			b.R, b.G, b.B = color[0], color[1], color[2]
		}
		out[i] = blend(mode, a, b)
	}

	mergeCache.Add(key, out)
	return out
}
