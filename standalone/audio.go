//go:build !libretro

package standalone

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// bytesPerFrame is one interleaved stereo frame of signed 16-bit samples.
const bytesPerFrame = 4

// queueBytes returns the ring buffer size for sampleRate: a sixth of a
// second of audio, as a whole number of stereo frames. Older frames are
// dropped beyond that.
func queueBytes(sampleRate int) int {
	frames := sampleRate / 6
	if frames < 1 {
		frames = 1
	}
	return frames * bytesPerFrame
}

// sampleQueue turns the session's interleaved int16 audio into the
// little-endian byte stream oto pulls from.
type sampleQueue struct {
	ring    *AudioRingBuffer
	scratch []byte
}

func newSampleQueue(sampleRate int) *sampleQueue {
	return &sampleQueue{
		ring:    NewAudioRingBuffer(queueBytes(sampleRate)),
		scratch: make([]byte, 0, 4096),
	}
}

// push queues whole stereo frames. A trailing unpaired sample is dropped
// so the stream stays frame aligned.
func (q *sampleQueue) push(samples []int16) {
	samples = samples[:len(samples)&^1]
	if len(samples) == 0 {
		return
	}
	q.scratch = q.scratch[:0]
	for _, s := range samples {
		q.scratch = binary.LittleEndian.AppendUint16(q.scratch, uint16(s))
	}
	q.ring.Write(q.scratch)
}

// AudioPlayer plays the session's audio through oto. oto reads from the
// queue's ring buffer on its own goroutine.
type AudioPlayer struct {
	player *oto.Player
	queue  *sampleQueue
}

// oto allows one context per process; its rate is fixed by the first
// caller.
var (
	otoCtx      *oto.Context
	otoCtxRate  int
	otoInitOnce sync.Once
	otoInitErr  error
)

func ensureOtoContext(sampleRate int) (*oto.Context, error) {
	otoInitOnce.Do(func() {
		otoCtxRate = sampleRate
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		})
		if otoInitErr != nil {
			return
		}
		<-ready
	})
	return otoCtx, otoInitErr
}

// NewAudioPlayer starts playback at the engine's sample rate. Volume is
// applied before Play so a muted host never pops.
func NewAudioPlayer(sampleRate int, volume float64) (*AudioPlayer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	ctx, err := ensureOtoContext(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}
	if otoCtxRate != sampleRate {
		return nil, fmt.Errorf("audio already running at %d Hz, cannot play %d Hz", otoCtxRate, sampleRate)
	}

	q := newSampleQueue(sampleRate)
	player := ctx.NewPlayer(q.ring)
	// 50ms of frames instead of oto's default half second.
	player.SetBufferSize(sampleRate / 20 * bytesPerFrame)
	player.SetVolume(clampVolume(volume))
	player.Play()

	return &AudioPlayer{player: player, queue: q}, nil
}

// QueueSamples queues one advance worth of interleaved stereo samples.
func (a *AudioPlayer) QueueSamples(samples []int16) {
	a.queue.push(samples)
}

// BufferLevel returns the bytes waiting in the ring buffer and in oto.
func (a *AudioPlayer) BufferLevel() int {
	return a.queue.ring.Buffered() + a.player.BufferedSize()
}

// ClearQueue drops queued audio so nothing stale plays after a pause.
func (a *AudioPlayer) ClearQueue() {
	a.queue.ring.Clear()
}

func clampVolume(vol float64) float64 {
	return min(max(vol, 0), 2)
}

// Close stops playback. Closing the ring first releases oto's reader.
func (a *AudioPlayer) Close() {
	a.queue.ring.Close()
	a.player.Close()
}
