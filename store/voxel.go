// Package store implements the tiled sparse voxel volume: a hash map from
// tile origin to copy-on-write tile payload, plus the caching accessors and
// iterators that traverse it.
package store

import "sync/atomic"

// N is the edge length of a tile, in voxels. Tile origins are always
// multiples of N; N is the only value the rest of the engine is tuned for.
const N = 16

// voxelsPerTile is the number of voxels in one tile's dense payload.
const voxelsPerTile = N * N * N

// TileLen is voxelsPerTile exported for callers (e.g. package paint) that
// need to size a buffer matching one tile's dense payload.
const TileLen = voxelsPerTile

// SolidAlphaThreshold is the alpha value at and above which a voxel is
// considered solid. Below it, the voxel is empty; alpha 0 is canonical
// empty. Color channels are meaningless on an empty voxel.
const SolidAlphaThreshold = 128

// Voxel is four unsigned 8-bit channels: red, green, blue, alpha.
type Voxel struct {
	R, G, B, A uint8
}

// Empty is the canonical empty voxel (all channels zero).
var Empty = Voxel{}

// IsSolid reports whether v's alpha clears the solid threshold.
func (v Voxel) IsSolid() bool { return v.A >= SolidAlphaThreshold }

// IsEmpty reports whether v is fully transparent (the only state that
// counts as "no voxel here" for occupancy purposes).
func (v Voxel) IsEmpty() bool { return v.A == 0 }

// idCounter and keyCounter are the two process-wide monotone counters: one
// mints payload/tile ids, the other mints volume version keys. Both start
// at 2 — 0 and 1 are reserved (the singleton empty payload, and the
// canonical empty volume's key, respectively).
var (
	idCounter  atomic.Uint64
	keyCounter atomic.Uint64
)

func init() {
	idCounter.Store(2)
	keyCounter.Store(2)
}

func nextPayloadID() uint64 {
	return idCounter.Add(1) - 1
}

func nextVersionKey() uint64 {
	return keyCounter.Add(1) - 1
}
