package paint

import (
	"context"
	"sync"
)

// Options carries the ambient concerns a long-running bulk op may honor:
// cancellation, progress reporting, and reentrancy-safe locking around a
// caller-supplied mutex. These are host-injected, not core to an op's
// result — a nil *Options (or the zero value) disables all of them, and
// the plain VolumeOp/VolumeMerge entry points run with exactly that.
type Options struct {
	Ctx      context.Context
	Mutex    *sync.Mutex
	Progress func(title string, total, current int)

	depth int32
}

// lock acquires o.Mutex unless this call is already nested inside one that
// holds it; depth is an explicit counter rather than relying on
// sync.Mutex's own (non-reentrant) behavior, matching the "recursion depth
// is tracked" contract for the host-supplied process-wide mutex.
func (o *Options) lock() {
	if o == nil || o.Mutex == nil {
		return
	}
	if o.depth == 0 {
		o.Mutex.Lock()
	}
	o.depth++
}

func (o *Options) unlock() {
	if o == nil || o.Mutex == nil {
		return
	}
	o.depth--
	if o.depth == 0 {
		o.Mutex.Unlock()
	}
}

func (o *Options) cancelled() bool {
	if o == nil || o.Ctx == nil {
		return false
	}
	select {
	case <-o.Ctx.Done():
		return true
	default:
		return false
	}
}

func (o *Options) report(title string, total, current int) {
	if o == nil || o.Progress == nil {
		return
	}
	o.Progress(title, total, current)
}
