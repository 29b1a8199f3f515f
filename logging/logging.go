// Package logging configures the process-wide zerolog logger.
//
// A libretro core shares stdout with its frontend, so output can be sent
// to a size-capped file instead.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bji/libretromame/config"
)

var output io.Writer = os.Stderr

// Init replaces the global logger according to cfg. The returned closer
// releases the log file, if one was opened.
func Init(cfg config.LogConfig) (io.Closer, error) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var closer io.Closer = nopCloser{}
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		fw, err := newRotatingWriter(cfg.File, cfg.MaxMB)
		if err != nil {
			return nil, err
		}
		w = fw
		closer = fw
	}
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, NoColor: cfg.File != ""}
	}
	output = w

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(w).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
	return closer, nil
}

// Writer returns the destination chosen by the last Init.
func Writer() io.Writer {
	return output
}

// Component returns a child of the global logger tagged with name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
