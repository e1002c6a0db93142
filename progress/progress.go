// Package progress renders a terminal progress bar compatible with the
// paint package's progress-callback signature. Adapted from the
// tile-generation progress bar: same ticker-refresh-and-atomic-counter
// design, generalized from "tiles" to any titled unit of work.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Bar renders an in-place progress bar to w, refreshed on a fixed
// interval. Report is safe for concurrent use and matches the
// func(title string, total, current int) shape paint.Options.Progress
// expects.
type Bar struct {
	w         io.Writer
	barWidth  int
	mu        sync.Mutex
	title     string
	total     int64
	processed atomic.Int64
	start     time.Time
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// NewBar starts a bar writing to w. Call Report for each progress update
// and Finish once the work is done.
func NewBar(w io.Writer) *Bar {
	b := &Bar{w: w, barWidth: 30, done: make(chan struct{})}
	return b
}

// Report implements the paint package's progress callback shape. The
// first call for a given title starts the refresh loop and timer; later
// calls just update the counters.
func (b *Bar) Report(title string, total, current int) {
	b.mu.Lock()
	if b.title != title || b.start.IsZero() {
		b.title = title
		b.total = int64(total)
		b.start = time.Now()
		if b.ticker == nil {
			b.ticker = time.NewTicker(100 * time.Millisecond)
			go b.run()
		}
	}
	b.mu.Unlock()
	b.processed.Store(int64(current))
}

func (b *Bar) run() {
	for {
		select {
		case <-b.done:
			return
		case <-b.ticker.C:
			b.draw()
		}
	}
}

// Finish stops the refresh loop and prints the final bar state.
func (b *Bar) Finish() {
	b.closeOnce.Do(func() {
		close(b.done)
		if b.ticker != nil {
			b.ticker.Stop()
		}
		b.draw()
		fmt.Fprint(b.w, "\n")
	})
}

func (b *Bar) draw() {
	b.mu.Lock()
	defer b.mu.Unlock()

	processed := b.processed.Load()
	total := b.total

	var frac float64
	if total > 0 {
		frac = float64(processed) / float64(total)
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(float64(b.barWidth) * frac)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.barWidth-filled)

	elapsed := time.Since(b.start)
	rate := float64(0)
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(processed) / secs
	}

	fmt.Fprintf(b.w, "\r%s [%s] %3.0f%%  %d/%d  %.0f/s  %s\033[K",
		b.title, bar, frac*100, processed, total, rate, formatDuration(elapsed))
}

func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) - m*60
	return fmt.Sprintf("%dm%02ds", m, s)
}
