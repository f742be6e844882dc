// Package progress provides hashing throughput and ETA reporting helpers.
package progress

import (
	"fmt"
	"io"
	"time"
)

// Event describes hashing status at a point in time.
type Event struct {
	Bytes      uint64
	Total      uint64
	InstantBps float64
	AverageBps float64
	ETA        time.Duration
	Elapsed    time.Duration
	Done       bool
}

// Reporter emits human-readable progress updates for one input. It is not
// safe for concurrent use.
type Reporter struct {
	w          io.Writer
	label      string
	total      uint64
	start      time.Time
	lastTick   time.Time
	lastBytes  uint64
	minTickGap time.Duration
	now        func() time.Time
}

// NewReporter creates a reporter with update throttling. total may be 0 when
// the input size is unknown.
func NewReporter(w io.Writer, label string, total uint64) *Reporter {
	r := &Reporter{w: w, label: label, total: total, minTickGap: 150 * time.Millisecond, now: time.Now}
	r.start = r.now()
	r.lastTick = r.start
	return r
}

// Update prints progress at throttled intervals.
func (r *Reporter) Update(bytes uint64) {
	now := r.now()
	if now.Sub(r.lastTick) < r.minTickGap && (r.total == 0 || bytes < r.total) {
		return
	}
	e := r.buildEvent(bytes, now, false)
	if r.total > 0 {
		_, _ = fmt.Fprintf(r.w, "\r%s %s/%s inst:%s avg:%s eta:%s", r.label, humanBytes(e.Bytes), humanBytes(e.Total), humanRate(e.InstantBps), humanRate(e.AverageBps), humanDuration(e.ETA))
	} else {
		_, _ = fmt.Fprintf(r.w, "\r%s %s inst:%s avg:%s", r.label, humanBytes(e.Bytes), humanRate(e.InstantBps), humanRate(e.AverageBps))
	}
	r.lastTick = now
	r.lastBytes = bytes
}

// Done prints the final summary and returns it.
func (r *Reporter) Done(bytes uint64) Event {
	e := r.buildEvent(bytes, r.now(), true)
	_, _ = fmt.Fprintf(r.w, "\r%s hashed %s in %s avg:%s\n", r.label, humanBytes(e.Bytes), humanDuration(e.Elapsed), humanRate(e.AverageBps))
	return e
}

func (r *Reporter) buildEvent(bytes uint64, now time.Time, done bool) Event {
	elapsed := now.Sub(r.start)
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}
	chunkDur := now.Sub(r.lastTick)
	if chunkDur <= 0 {
		chunkDur = time.Millisecond
	}
	inst := float64(bytes-r.lastBytes) / chunkDur.Seconds()
	avg := float64(bytes) / elapsed.Seconds()
	var remaining uint64
	if bytes < r.total {
		remaining = r.total - bytes
	}
	var eta time.Duration
	if avg > 0 && remaining > 0 {
		eta = time.Duration(float64(remaining)/avg) * time.Second
	}
	return Event{Bytes: bytes, Total: r.total, InstantBps: inst, AverageBps: avg, ETA: eta, Elapsed: elapsed, Done: done}
}

func humanBytes(v uint64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	val := float64(v)
	u := 0
	for val >= 1024 && u < len(units)-1 {
		val /= 1024
		u++
	}
	return fmt.Sprintf("%.1f%s", val, units[u])
}

func humanRate(bps float64) string {
	if bps < 0 {
		bps = 0
	}
	return humanBytes(uint64(bps)) + "/s"
}

func humanDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Second).String()
}
