package store

import (
	"fmt"
	"log/slog"
)

// tileMap is the indirection that lets Volume.Copy share a tile mapping in
// O(1) without a deep copy: multiple volumes may point at the same tileMap
// until one of them writes, at which point it clones the map (payloads
// stay shared; only the map of origin -> payload is duplicated).
type tileMap struct {
	m    map[Origin]*tilePayload
	refs int32
}

func newTileMap() *tileMap {
	return &tileMap{m: make(map[Origin]*tilePayload), refs: 1}
}

// Volume is the sparse map of tile-origin -> tile payload: the user-visible
// "voxel image".
type Volume struct {
	tm  *tileMap
	key uint64
}

// New returns an empty volume with version key 1, per the contract that no
// other state ever uses key 1.
func New() *Volume {
	return &Volume{tm: newTileMap(), key: 1}
}

// Copy returns a volume sharing V's tile map; O(1), no deep copy. The first
// write to either volume clones the shared map.
func (v *Volume) Copy() *Volume {
	v.tm.refs++
	return &Volume{tm: v.tm, key: v.key}
}

// Set makes v take w's tile map, releasing v's prior one. A no-op if v and
// w already share the same map.
func (v *Volume) Set(w *Volume) {
	if v.tm == w.tm {
		return
	}
	v.release()
	w.tm.refs++
	v.tm = w.tm
	v.key = w.key
}

func (v *Volume) release() {
	if v.tm != nil {
		v.tm.refs--
	}
}

// Clear drops all tiles and resets the version key to 1.
func (v *Volume) Clear() {
	v.release()
	v.tm = newTileMap()
	v.key = 1
}

// Key returns the volume's 64-bit version key.
func (v *Volume) Key() uint64 { return v.key }

// IsEmpty reports whether the volume holds no tiles at all (not even
// explicit all-empty ones).
func (v *Volume) IsEmpty() bool { return len(v.tm.m) == 0 }

// prepareMapWrite ensures v's tile map is uniquely owned before a
// structural mutation (tile insert/delete/alias), cloning it if shared, and
// bumps the volume's version key. Per-voxel writers call this once per
// logical mutation, not once per voxel.
func (v *Volume) prepareMapWrite() {
	if v.tm.refs > 1 {
		nm := make(map[Origin]*tilePayload, len(v.tm.m))
		for o, p := range v.tm.m {
			if !p.isEmptySingleton() {
				p.refs++
			}
			nm[o] = p
		}
		v.tm.refs--
		v.tm = &tileMap{m: nm, refs: 1}
	}
	v.key = nextVersionKey()
}

// prepareTileWrite returns a uniquely-owned, writable payload at origin,
// creating or cloning it as needed. This is the copy-on-write discipline: a
// shared payload (refs > 1) is cloned before being mutated, and its id is
// always bumped to a fresh value.
func (v *Volume) prepareTileWrite(o Origin) *tilePayload {
	v.prepareMapWrite()
	p, ok := v.tm.m[o]
	if !ok || p.isEmptySingleton() {
		np := &tilePayload{id: nextPayloadID(), refs: 1}
		v.tm.m[o] = np
		return np
	}
	if p.refs > 1 {
		np := p.clone()
		p.refs--
		v.tm.m[o] = np
		return np
	}
	p.id = nextPayloadID()
	return p
}

// GetAt returns the voxel at (x,y,z); empty if no tile covers it. Never
// fails.
func (v *Volume) GetAt(x, y, z int32) Voxel {
	o := OriginOf(x, y, z)
	p, ok := v.tm.m[o]
	if !ok {
		return Empty
	}
	return p.voxels[localIndex(o, x, y, z)]
}

// SetAt writes a single voxel, allocating or cloning the covering tile as
// needed.
func (v *Volume) SetAt(x, y, z int32, val Voxel) {
	o := OriginOf(x, y, z)
	p := v.prepareTileWrite(o)
	p.voxels[localIndex(o, x, y, z)] = val
}

// ClearTile removes the tile at origin o; a no-op if absent.
func (v *Volume) ClearTile(o Origin) {
	if _, ok := v.tm.m[o]; !ok {
		return
	}
	v.prepareMapWrite()
	delete(v.tm.m, o)
}

// TileData returns the raw payload slice and its id for zero-copy reads, or
// (nil, 0) if the tile is absent. Callers must not retain the slice across
// a mutation of v.
func (v *Volume) TileData(o Origin) ([]Voxel, uint64) {
	p, ok := v.tm.m[o]
	if !ok {
		return nil, 0
	}
	return p.voxels[:], p.id
}

// SetTileData replaces the whole tile at origin o with data, allocating a
// fresh uniquely-owned payload (a fresh id is always minted). len(data)
// must equal TileLen. Used by bulk operations (volume merge) that compute a
// whole tile's contents at once rather than voxel-by-voxel.
func (v *Volume) SetTileData(o Origin, data []Voxel) {
	v.prepareMapWrite()
	np := &tilePayload{id: nextPayloadID(), refs: 1}
	copy(np.voxels[:], data)
	if old, ok := v.tm.m[o]; ok && !old.isEmptySingleton() {
		old.refs--
	}
	v.tm.m[o] = np
}

// CopyTile makes the destination tile at pd an O(1) refcounted alias of
// src's tile at ps (or the canonical empty payload if src has no tile
// there).
func (v *Volume) CopyTile(src *Volume, ps Origin, pd Origin) {
	p, ok := src.tm.m[ps]
	if !ok {
		p = emptyPayload
	}
	v.prepareMapWrite()
	if old, ok := v.tm.m[pd]; ok && !old.isEmptySingleton() {
		old.refs--
	}
	if !p.isEmptySingleton() {
		p.refs++
	}
	v.tm.m[pd] = p
}

// RemoveEmptyTiles drops tiles whose payload is fully zero-alpha. The
// logical voxel mapping and version key are unchanged.
func (v *Volume) RemoveEmptyTiles() int {
	var dropped []Origin
	for o, p := range v.tm.m {
		if p.allEmpty() {
			dropped = append(dropped, o)
		}
	}
	if len(dropped) == 0 {
		return 0
	}
	// Structural change without a version-key bump: clone the map in place
	// (if shared) but restore the prior key, since this operation is
	// defined to preserve it.
	savedKey := v.key
	v.prepareMapWrite()
	for _, o := range dropped {
		delete(v.tm.m, o)
	}
	v.key = savedKey
	slog.Debug("store: dropped empty tiles", slog.Int("tiles_dropped", len(dropped)))
	return len(dropped)
}

// Box is an axis-aligned integer half-open box [Lo, Hi).
type Box struct {
	Lo, Hi [3]int32
}

// Empty reports whether the box spans no volume.
func (b Box) Empty() bool {
	return b.Lo[0] >= b.Hi[0] || b.Lo[1] >= b.Hi[1] || b.Lo[2] >= b.Hi[2]
}

// BoundingBox returns the axis-aligned box covering every occupied voxel.
// exact=false returns tile-granular bounds (fast, O(tiles)); exact=true
// scans every voxel of every tile for a tight box.
func (v *Volume) BoundingBox(exact bool) Box {
	if len(v.tm.m) == 0 {
		return Box{}
	}
	var lo, hi [3]int32
	first := true
	for o := range v.tm.m {
		tlo := [3]int32{o.X, o.Y, o.Z}
		thi := [3]int32{o.X + N, o.Y + N, o.Z + N}
		if first {
			lo, hi = tlo, thi
			first = false
			continue
		}
		for i := 0; i < 3; i++ {
			if tlo[i] < lo[i] {
				lo[i] = tlo[i]
			}
			if thi[i] > hi[i] {
				hi[i] = thi[i]
			}
		}
	}
	if !exact {
		return Box{Lo: lo, Hi: hi}
	}
	return v.exactBoundingBox(lo, hi)
}

func (v *Volume) exactBoundingBox(tlo, thi [3]int32) Box {
	var lo, hi [3]int32
	found := false
	for o, p := range v.tm.m {
		for lz := int32(0); lz < N; lz++ {
			for ly := int32(0); ly < N; ly++ {
				for lx := int32(0); lx < N; lx++ {
					vx := p.voxels[lz*N*N+ly*N+lx]
					if vx.IsEmpty() {
						continue
					}
					x, y, z := o.X+lx, o.Y+ly, o.Z+lz
					if !found {
						lo = [3]int32{x, y, z}
						hi = [3]int32{x + 1, y + 1, z + 1}
						found = true
						continue
					}
					if x < lo[0] {
						lo[0] = x
					}
					if y < lo[1] {
						lo[1] = y
					}
					if z < lo[2] {
						lo[2] = z
					}
					if x+1 > hi[0] {
						hi[0] = x + 1
					}
					if y+1 > hi[1] {
						hi[1] = y + 1
					}
					if z+1 > hi[2] {
						hi[2] = z + 1
					}
				}
			}
		}
	}
	if !found {
		return Box{}
	}
	return Box{Lo: lo, Hi: hi}
}

// Read copies a dense block of voxels starting at pos, of the given size,
// into out, in (z,y,x) order; for example a single tile plus a one-voxel
// border ((N+2)^3).
func (v *Volume) Read(pos, size [3]int32, out []Voxel) error {
	want := int(size[0]) * int(size[1]) * int(size[2])
	if len(out) < want {
		return fmt.Errorf("store: read: output buffer too small: have %d, need %d", len(out), want)
	}
	i := 0
	for z := pos[2]; z < pos[2]+size[2]; z++ {
		for y := pos[1]; y < pos[1]+size[1]; y++ {
			for x := pos[0]; x < pos[0]+size[0]; x++ {
				out[i] = v.GetAt(x, y, z)
				i++
			}
		}
	}
	return nil
}
