package vxl

import (
	"errors"
	"io"
)

// ErrStreamMutated is returned by Encoder.Read when the underlying Map was
// edited mid-stream: libvxl_stream guards against exactly this by
// invalidating outstanding encode state on any map mutation, rather than
// risk handing out a torn column.
var ErrStreamMutated = errors.New("vxl: map mutated during streaming encode")

// Encoder streams a Map's VXL encoding column by column, so a caller can
// write it to a socket or file without holding the whole encoded form in
// memory at once. It satisfies io.Reader.
type Encoder struct {
	m            *Map
	chunkOffsets []int
	x, y         int
	pending      []byte
	done         bool
	streamAt     int
}

// NewEncoder returns a streaming encoder over m. m must not be mutated
// while the Encoder is in use; doing so makes subsequent Read calls return
// ErrStreamMutated.
func NewEncoder(m *Map) *Encoder {
	return &Encoder{
		m:            m,
		chunkOffsets: make([]int, m.chunksX()*m.chunksY()),
		streamAt:     m.streamed,
	}
}

// Read implements io.Reader, filling p with as much encoded data as is
// ready. Each call may encode zero or more additional columns internally.
func (e *Encoder) Read(p []byte) (int, error) {
	if e.m.streamed != e.streamAt {
		return 0, ErrStreamMutated
	}
	for len(e.pending) == 0 {
		if e.done {
			return 0, io.EOF
		}
		if e.y >= e.m.Height {
			e.done = true
			return 0, io.EOF
		}
		columnEncode(e.m, e.chunkOffsets, e.x, e.y, &e.pending)
		e.x++
		if e.x >= e.m.Width {
			e.x = 0
			e.y++
		}
	}
	n := copy(p, e.pending)
	e.pending = e.pending[n:]
	return n, nil
}
