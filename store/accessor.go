package store

// Accessor is a caching handle over a volume that amortizes tile-map
// lookups across neighboring coordinate accesses. It is a value, not a
// reference — callers copy it freely, and each copy tracks its own cached
// tile independently.
type Accessor struct {
	vol     *Volume
	origin  Origin
	valid   bool
	payload *tilePayload // nil means "known empty at this origin"
	id      uint64
}

// NewAccessor returns an accessor bound to v.
func NewAccessor(v *Volume) *Accessor {
	return &Accessor{vol: v}
}

// refresh re-synchronizes the accessor's cached tile for origin o against
// the volume's current state, transparently picking up any write that has
// replaced or cloned the tile since the last access.
func (a *Accessor) refresh(o Origin) {
	p, ok := a.vol.tm.m[o]
	if !ok {
		a.origin, a.valid, a.payload, a.id = o, true, nil, 0
		return
	}
	a.origin, a.valid, a.payload, a.id = o, true, p, p.id
}

func (a *Accessor) tileAt(o Origin) *tilePayload {
	if !a.valid || a.origin != o {
		a.refresh(o)
		return a.payload
	}
	// Same cached origin: verify the payload id still matches what the map
	// holds, in case another accessor replaced the tile under us.
	p, ok := a.vol.tm.m[o]
	cur := uint64(0)
	if ok {
		cur = p.id
	}
	if cur != a.id {
		a.refresh(o)
	}
	return a.payload
}

// GetAt returns the voxel at (x,y,z), using the cached tile when possible.
func (a *Accessor) GetAt(x, y, z int32) Voxel {
	o := OriginOf(x, y, z)
	p := a.tileAt(o)
	if p == nil {
		return Empty
	}
	return p.voxels[localIndex(o, x, y, z)]
}

// SetAt writes a single voxel through the accessor, invalidating and
// refreshing the cache as needed.
func (a *Accessor) SetAt(x, y, z int32, val Voxel) {
	o := OriginOf(x, y, z)
	p := a.vol.prepareTileWrite(o)
	p.voxels[localIndex(o, x, y, z)] = val
	a.origin, a.valid, a.payload, a.id = o, true, p, p.id
}
