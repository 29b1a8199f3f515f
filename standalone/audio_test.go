//go:build !libretro

package standalone

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"time"
)

func readFrames(t *testing.T, r io.Reader, n int) []int16 {
	t.Helper()
	raw := make([]byte, n*bytesPerFrame)
	if _, err := io.ReadFull(r, raw); err != nil {
		t.Fatalf("read %d frames: %v", n, err)
	}
	out := make([]int16, 0, n*2)
	for i := 0; i < len(raw); i += 2 {
		out = append(out, int16(binary.LittleEndian.Uint16(raw[i:])))
	}
	return out
}

func TestQueueBytes(t *testing.T) {
	tests := []struct {
		rate int
		want int
	}{
		{48000, 8000 * bytesPerFrame},
		{44100, 7350 * bytesPerFrame},
		{11025, 1837 * bytesPerFrame},
		{1, bytesPerFrame},
	}
	for _, tt := range tests {
		if got := queueBytes(tt.rate); got != tt.want {
			t.Errorf("queueBytes(%d) = %d, want %d", tt.rate, got, tt.want)
		}
	}
}

func TestSampleQueueLittleEndian(t *testing.T) {
	q := newSampleQueue(48000)
	q.push([]int16{1, -2, 0x1234, -32768})

	raw := make([]byte, 8)
	if _, err := io.ReadFull(q.ring, raw); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x01, 0x00, 0xFE, 0xFF, 0x34, 0x12, 0x00, 0x80}
	for i := range want {
		if raw[i] != want[i] {
			t.Fatalf("bytes = % x, want % x", raw, want)
		}
	}
}

func TestSampleQueueOneAdvance(t *testing.T) {
	// One 60Hz frame at 48kHz is 800 stereo frames.
	q := newSampleQueue(48000)
	q.push(make([]int16, 1600))

	if got := q.ring.Buffered(); got != 800*bytesPerFrame {
		t.Fatalf("Buffered() = %d, want %d", got, 800*bytesPerFrame)
	}
}

func TestSampleQueueDropsUnpairedSample(t *testing.T) {
	q := newSampleQueue(48000)
	q.push([]int16{7, 8, 9})
	q.push([]int16{5})

	if got := q.ring.Buffered(); got != bytesPerFrame {
		t.Fatalf("Buffered() = %d, want one frame", got)
	}
	if got := readFrames(t, q.ring, 1); got[0] != 7 || got[1] != 8 {
		t.Fatalf("frame = %v, want [7 8]", got)
	}
}

func TestSampleQueueOverflowKeepsNewestFrames(t *testing.T) {
	// 60Hz holds ten frames.
	q := newSampleQueue(60)
	var samples []int16
	for i := int16(0); i < 24; i++ {
		samples = append(samples, i)
	}
	q.push(samples[:16])
	q.push(samples[16:])

	if got := q.ring.Buffered(); got != 10*bytesPerFrame {
		t.Fatalf("Buffered() = %d, want %d", got, 10*bytesPerFrame)
	}
	got := readFrames(t, q.ring, 10)
	for i, s := range got {
		if s != int16(i+4) {
			t.Fatalf("samples = %v, want 4..23", got)
		}
	}
}

func TestSampleQueueClearOnPause(t *testing.T) {
	q := newSampleQueue(48000)
	q.push([]int16{1, 1, 2, 2})
	q.ring.Clear()
	if got := q.ring.Buffered(); got != 0 {
		t.Fatalf("Buffered() after Clear = %d", got)
	}

	q.push([]int16{3, 3})
	if got := readFrames(t, q.ring, 1); got[0] != 3 || got[1] != 3 {
		t.Fatalf("frame after resume = %v, want [3 3]", got)
	}
}

func TestAudioRingBufferCloseUnblocksReader(t *testing.T) {
	rb := NewAudioRingBuffer(queueBytes(48000))
	done := make(chan error, 1)
	go func() {
		_, err := rb.Read(make([]byte, bytesPerFrame))
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	rb.Close()

	select {
	case err := <-done:
		if !errors.Is(err, io.EOF) {
			t.Fatalf("Read error = %v, want io.EOF", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Read still blocked after Close")
	}
}

func TestAudioRingBufferDrainsAfterClose(t *testing.T) {
	q := newSampleQueue(48000)
	q.push([]int16{4, 5})
	q.ring.Close()
	q.push([]int16{6, 7})

	if got := readFrames(t, q.ring, 1); got[0] != 4 || got[1] != 5 {
		t.Fatalf("frame = %v, want [4 5]", got)
	}
	if _, err := q.ring.Read(make([]byte, bytesPerFrame)); !errors.Is(err, io.EOF) {
		t.Fatalf("Read error = %v, want io.EOF", err)
	}
}

func TestSampleQueueConcurrentStaysFrameAligned(t *testing.T) {
	// A small queue forces drops while oto-style reads run concurrently.
	q := newSampleQueue(60)
	const total = 1000

	go func() {
		batch := make([]int16, 0, 10)
		for i := 0; i < total; i++ {
			batch = append(batch, int16(i), int16(i))
			if len(batch) == cap(batch) {
				q.push(batch)
				batch = batch[:0]
			}
		}
		q.ring.Close()
	}()

	last := -1
	raw := make([]byte, bytesPerFrame)
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("reader did not finish")
		default:
		}
		if _, err := io.ReadFull(q.ring, raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("read: %v", err)
		}
		left := int16(binary.LittleEndian.Uint16(raw))
		right := int16(binary.LittleEndian.Uint16(raw[2:]))
		if left != right {
			t.Fatalf("misaligned frame %d/%d", left, right)
		}
		if int(left) <= last {
			t.Fatalf("frame %d after %d", left, last)
		}
		last = int(left)
	}
	if last != total-1 {
		t.Fatalf("last frame = %d, want %d", last, total-1)
	}
}
