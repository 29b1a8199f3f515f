package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bji/libretromame/config"
)

func TestRotatingWriterRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "core.log")
	w, err := newRotatingWriter(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer w.Close()

	chunk := bytes.Repeat([]byte("x"), 512*1024)
	for i := 0; i < 3; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write chunk %d: %v", i, err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if info.Size() != int64(len(chunk)) {
		t.Fatalf("current log size = %d, want %d", info.Size(), len(chunk))
	}
	old, err := os.Stat(path + ".1")
	if err != nil {
		t.Fatalf("stat rotated log: %v", err)
	}
	if old.Size() != 2*int64(len(chunk)) {
		t.Fatalf("rotated log size = %d, want %d", old.Size(), 2*len(chunk))
	}
}

func TestRotatingWriterReopensAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "core.log")
	w, err := newRotatingWriter(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	w.Close()

	if _, err := w.Write([]byte("again\n")); err != nil {
		t.Fatalf("write after close: %v", err)
	}
	w.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if string(data) != "again\n" {
		t.Fatalf("log contents = %q", data)
	}
}

func TestInitWritesToFile(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	defer func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	}()

	path := filepath.Join(t.TempDir(), "core.log")
	closer, err := Init(config.LogConfig{Level: "debug", File: path, MaxMB: 1})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	logger := Component("session")
	logger.Debug().Str("game", "pacman").Msg("loaded")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, want := range []string{`"component":"session"`, `"game":"pacman"`, `"message":"loaded"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %s", line, want)
		}
	}
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	defer func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	}()

	if _, err := Init(config.LogConfig{Level: "shouty"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %v, want info", zerolog.GlobalLevel())
	}
}
