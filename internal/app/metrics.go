package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics counts what the event loop did. All methods are safe for
// concurrent use.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64

	eventCount     atomic.Uint64
	resizesMerged  atomic.Uint64
	reloadCount    atomic.Uint64
	reloadFailures atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records how long one draw took.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records one handled backend event.
func (m *Metrics) RecordEvent() {
	m.eventCount.Add(1)
}

// RecordMergedResizes records resize events superseded by a later one.
func (m *Metrics) RecordMergedResizes(n int) {
	if n > 0 {
		m.resizesMerged.Add(uint64(n))
	}
}

// RecordReload records a configuration reload attempt.
func (m *Metrics) RecordReload(ok bool) {
	if ok {
		m.reloadCount.Add(1)
	} else {
		m.reloadFailures.Add(1)
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()
	var avg time.Duration
	if frames > 0 {
		avg = time.Duration(m.frameTotalNs.Load() / int64(frames))
	}
	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frames,
		AvgFrameTime:   avg,
		MaxFrameTime:   time.Duration(m.frameMaxNs.Load()),
		EventCount:     m.eventCount.Load(),
		ResizesMerged:  m.resizesMerged.Load(),
		Reloads:        m.reloadCount.Load(),
		ReloadFailures: m.reloadFailures.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTime   time.Duration
	MaxFrameTime   time.Duration
	EventCount     uint64
	ResizesMerged  uint64
	Reloads        uint64
	ReloadFailures uint64
}

func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime=%s frames=%d avg=%s max=%s events=%d merged-resizes=%d reloads=%d/%d",
		s.Uptime.Round(time.Millisecond), s.FrameCount, s.AvgFrameTime, s.MaxFrameTime,
		s.EventCount, s.ResizesMerged, s.Reloads, s.Reloads+s.ReloadFailures)
}
