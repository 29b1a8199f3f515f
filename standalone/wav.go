//go:build !libretro

package standalone

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVRecorder streams forwarded stereo audio to a 16-bit PCM WAV file.
type WAVRecorder struct {
	f      *os.File
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	frames int
}

// NewWAVRecorder creates path and writes a WAV header for sampleRate.
func NewWAVRecorder(path string, sampleRate int) (*WAVRecorder, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate %d", sampleRate)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return &WAVRecorder{
		f:   f,
		enc: wav.NewEncoder(f, sampleRate, 16, 2, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// Write appends interleaved stereo samples.
func (w *WAVRecorder) Write(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	w.buf.Data = w.buf.Data[:0]
	for _, s := range samples {
		w.buf.Data = append(w.buf.Data, int(s))
	}
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	w.frames += len(samples) / 2
	return nil
}

// Frames returns the number of stereo frames written.
func (w *WAVRecorder) Frames() int {
	return w.frames
}

// Close finalizes the header sizes and closes the file.
func (w *WAVRecorder) Close() error {
	encErr := w.enc.Close()
	fileErr := w.f.Close()
	if encErr != nil {
		return fmt.Errorf("wav: %w", encErr)
	}
	return fileErr
}
