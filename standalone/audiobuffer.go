//go:build !libretro

package standalone

import (
	"io"
	"sync"
)

// AudioRingBuffer is a fixed-size byte FIFO between the ebiten goroutine
// (writer) and oto's player (reader). When full, the oldest bytes are
// dropped so latency stays bounded. Read blocks until data arrives or the
// buffer is closed.
type AudioRingBuffer struct {
	mu       sync.Mutex
	cond     *sync.Cond
	buf      []byte
	readPos  int
	writePos int
	count    int
	closed   bool
}

// NewAudioRingBuffer creates a ring buffer holding up to capacity bytes.
func NewAudioRingBuffer(capacity int) *AudioRingBuffer {
	rb := &AudioRingBuffer{buf: make([]byte, capacity)}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write appends data, discarding the oldest buffered bytes on overflow.
// Writes after Close are ignored.
func (rb *AudioRingBuffer) Write(data []byte) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	if rb.closed || len(data) == 0 {
		return
	}

	capacity := len(rb.buf)
	if len(data) >= capacity {
		copy(rb.buf, data[len(data)-capacity:])
		rb.readPos = 0
		rb.writePos = 0
		rb.count = capacity
		rb.cond.Broadcast()
		return
	}

	if overflow := rb.count + len(data) - capacity; overflow > 0 {
		rb.readPos = (rb.readPos + overflow) % capacity
		rb.count -= overflow
	}

	n := copy(rb.buf[rb.writePos:], data)
	if n < len(data) {
		copy(rb.buf, data[n:])
	}
	rb.writePos = (rb.writePos + len(data)) % capacity
	rb.count += len(data)
	rb.cond.Broadcast()
}

// Read implements io.Reader. It returns io.EOF once the buffer is closed
// and drained.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	rb.mu.Lock()
	defer rb.mu.Unlock()
	for rb.count == 0 && !rb.closed {
		rb.cond.Wait()
	}
	if rb.count == 0 {
		return 0, io.EOF
	}

	n := len(p)
	if n > rb.count {
		n = rb.count
	}
	first := copy(p[:n], rb.buf[rb.readPos:])
	if first < n {
		copy(p[first:n], rb.buf)
	}
	rb.readPos = (rb.readPos + n) % len(rb.buf)
	rb.count -= n
	return n, nil
}

// Buffered returns the number of bytes waiting to be read.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Clear drops all buffered bytes.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	rb.readPos = 0
	rb.writePos = 0
	rb.count = 0
	rb.mu.Unlock()
}

// Close wakes any blocked reader. Buffered bytes can still be read.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	rb.closed = true
	rb.cond.Broadcast()
	rb.mu.Unlock()
}
