//go:build !libretro

package standalone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWAVRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.wav")
	rec, err := NewWAVRecorder(path, 44100)
	if err != nil {
		t.Fatalf("NewWAVRecorder failed: %v", err)
	}

	if err := rec.Write([]int16{100, -100, 200, -200}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := rec.Write([]int16{300, -300}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := rec.Write(nil); err != nil {
		t.Fatalf("empty Write failed: %v", err)
	}
	if rec.Frames() != 3 {
		t.Fatalf("Frames = %d, want 3", rec.Frames())
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dec.SampleRate != 44100 || dec.NumChans != 2 || dec.BitDepth != 16 {
		t.Fatalf("format = %d Hz, %d ch, %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
	want := []int{100, -100, 200, -200, 300, -300}
	if len(buf.Data) != len(want) {
		t.Fatalf("samples = %v, want %v", buf.Data, want)
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestWAVRecorder_InvalidRate(t *testing.T) {
	if _, err := NewWAVRecorder(filepath.Join(t.TempDir(), "x.wav"), 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}
