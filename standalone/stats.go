//go:build !libretro

package standalone

import (
	"expvar"
	"sync"

	"github.com/bji/libretromame/session"
)

var (
	framesAdvanced  = expvar.NewInt("frames_advanced")
	framesDelivered = expvar.NewInt("frames_delivered")
	framesDropped   = expvar.NewInt("frames_dropped")
	audioBuffered   = expvar.NewInt("audio_buffered_bytes")
)

// HostStats is what the debug server reports about a running host.
type HostStats struct {
	Session       session.Stats `json:"session"`
	Turbo         int           `json:"turbo"`
	Paused        bool          `json:"paused"`
	AudioBuffered int           `json:"audio_buffered_bytes"`
	WAVFrames     int           `json:"wav_frames,omitempty"`
}

// StatsBoard holds the latest snapshot, written by the ebiten goroutine
// and read by the debug server. A Session itself must only be touched
// from its driver goroutine.
type StatsBoard struct {
	mu    sync.Mutex
	stats HostStats
}

// Set replaces the snapshot and mirrors the counters into expvar.
func (sb *StatsBoard) Set(st HostStats) {
	sb.mu.Lock()
	sb.stats = st
	sb.mu.Unlock()

	framesAdvanced.Set(int64(st.Session.Advanced))
	framesDelivered.Set(int64(st.Session.Delivered))
	framesDropped.Set(int64(st.Session.Dropped))
	audioBuffered.Set(int64(st.AudioBuffered))
}

// Get returns the latest snapshot.
func (sb *StatsBoard) Get() HostStats {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.stats
}
