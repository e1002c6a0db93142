package paint

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/voxelcore/voxelcore/store"
	"github.com/voxelcore/voxelcore/vmath"
)

// Painter caches are process-wide LRU maps keyed by a packed comparable
// struct: painterCacheCapacity for whole-volume paint ops, mergeCacheCapacity
// for tile-pair merges. github.com/hashicorp/golang-lru/v2 backs both — see
// DESIGN.md for why this library was chosen over a hand-rolled cache.
const (
	painterCacheCapacity = 32
	mergeCacheCapacity   = 512
)

// paintKey identifies a (volume state, region, brush) triple.
type paintKey struct {
	volumeKey uint64
	box       vmath.Mat4
	painter   Painter
}

// mergeKey identifies a tile-pair merge: two source payload ids, the blend
// mode, and an optional tint color.
type mergeKey struct {
	srcID   uint64
	otherID uint64
	mode    Mode
	color   [4]uint8
}

var (
	paintCache *lru.Cache[paintKey, *store.Volume]
	mergeCache *lru.Cache[mergeKey, []store.Voxel]
)

func init() {
	var err error
	paintCache, err = lru.New[paintKey, *store.Volume](painterCacheCapacity)
	if err != nil {
		panic("paint: failed to construct painter cache: " + err.Error())
	}
	mergeCache, err = lru.New[mergeKey, []store.Voxel](mergeCacheCapacity)
	if err != nil {
		panic("paint: failed to construct tile-merge cache: " + err.Error())
	}
}
