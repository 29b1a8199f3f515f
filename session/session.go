// Package session drives an emulation engine one frame per driver call.
//
// A Session owns at most one worker goroutine. Load starts it, every
// AdvanceFrame lets the engine run up to its next yield point and waits
// for it, and Unload stops and joins it. Video and audio for a frame are
// converted and handed to the driver's callbacks on the worker goroutine
// while the driver is blocked in AdvanceFrame, so the driver always sees
// whole frames.
//
// All Session methods must be called from a single driver goroutine.
package session

import (
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	emucore "github.com/bji/libretromame/api"
	"github.com/bji/libretromame/frame"
	"github.com/bji/libretromame/rendezvous"
)

// ErrNoSuchGame is returned by Load when the engine does not know the
// game name.
var ErrNoSuchGame = errors.New("no such game")

// VideoRefreshFunc receives one converted RGB565 frame. pitch is in bytes.
// pixels aliases the session's frame buffer and is only valid during the
// call.
type VideoRefreshFunc func(pixels []uint16, width, height, pitch int)

// InputPollFunc asks the driver to latch input.
type InputPollFunc func()

// InputStateFunc queries latched input.
type InputStateFunc func(port, device, index, id uint) int16

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for session and engine output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.baseLog = l
	}
}

// Session is the driver-facing controller for one engine.
type Session struct {
	engine  emucore.Engine
	rv      *rendezvous.Rendezvous
	buf     *frame.Buffer
	baseLog zerolog.Logger
	log     zerolog.Logger

	video       VideoRefreshFunc
	audioSample frame.AudioSampleFunc
	audioBatch  frame.AudioBatchFunc
	inputPoll   InputPollFunc
	// inputState is stored but never queried: engine controls are not
	// mapped to driver input, so PollAllControls leaves them untouched.
	inputState InputStateFunc

	id       ulid.ULID
	name     string
	info     emucore.GameInfo
	opts     emucore.RunOptions
	runner   *runner
	done     chan struct{}
	advanced uint64
	lastErr  error
}

// New creates a session for engine. The engine must already be
// initialized.
func New(engine emucore.Engine, opts ...Option) *Session {
	s := &Session{
		engine:  engine,
		rv:      rendezvous.New(),
		buf:     frame.NewBuffer(),
		baseLog: log.With().Str("component", "session").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.baseLog
	return s
}

// SetVideoRefresh registers the video delivery function.
func (s *Session) SetVideoRefresh(fn VideoRefreshFunc) { s.video = fn }

// SetAudioSample registers the single stereo frame delivery function.
func (s *Session) SetAudioSample(fn frame.AudioSampleFunc) { s.audioSample = fn }

// SetAudioSampleBatch registers the batch audio delivery function. It
// takes precedence over the single sample function.
func (s *Session) SetAudioSampleBatch(fn frame.AudioBatchFunc) { s.audioBatch = fn }

// SetInputPoll registers the input poll function.
func (s *Session) SetInputPoll(fn InputPollFunc) { s.inputPoll = fn }

// SetInputState registers the input state function. The driver ABI
// requires it, but the session does not map engine controls to it.
func (s *Session) SetInputState(fn InputStateFunc) { s.inputState = fn }

// Load resolves name and starts a worker for it. It returns once the
// worker exists; the engine itself starts on the first AdvanceFrame. A
// name the engine does not know leaves the session exactly as it was,
// including any game already loaded.
func (s *Session) Load(name string, opts emucore.RunOptions) error {
	number := s.engine.GameNumber(name)
	if number < 0 {
		return fmt.Errorf("%w: %q", ErrNoSuchGame, name)
	}
	if s.Loaded() {
		s.Unload()
	}

	s.id = ulid.Make()
	s.name = name
	s.info = s.engine.GameInfo(number)
	s.opts = opts.Clone()
	s.lastErr = nil
	s.advanced = 0
	s.log = s.baseLog.With().
		Str("session", s.id.String()).
		Str("game", name).
		Logger()

	s.runner = newRunner(s, s.info, s.log)
	s.done = make(chan struct{})
	s.rv.Start()
	go s.runner.run(s.engine, number, s.opts.Clone(), s.done)

	s.log.Info().Int("number", number).Msg("game loaded")
	return nil
}

// Loaded reports whether a game is loaded.
func (s *Session) Loaded() bool {
	return s.runner != nil
}

// AdvanceFrame runs the engine for one frame. It is a no-op when no game
// is loaded. If the worker exits during the frame the session reverts to
// having no game.
func (s *Session) AdvanceFrame() {
	if s.runner == nil {
		return
	}
	s.advanced++
	if !s.rv.Advance() {
		s.finish()
	}
}

// Stop asks the worker to exit at its next yield point and waits until it
// has acknowledged. The game stays loaded until the next AdvanceFrame or
// Unload observes the exit.
func (s *Session) Stop() {
	if s.runner == nil {
		return
	}
	s.rv.RequestStop()
}

// Unload stops the worker, waits for it to exit and clears the cached
// video and audio metadata.
func (s *Session) Unload() {
	if s.runner == nil {
		return
	}
	s.rv.RequestStop()
	s.rv.AwaitExit()
	s.finish()
}

// finish joins an exited worker and reverts to having no game.
func (s *Session) finish() {
	<-s.done
	r := s.runner
	s.lastErr = r.exitErr
	s.log.Info().
		Uint64("advanced", s.advanced).
		Uint64("delivered", r.delivered).
		Uint64("dropped", r.dropped).
		Msg("game unloaded")

	s.runner = nil
	s.done = nil
	s.name = ""
	s.info = emucore.GameInfo{}
	s.buf.Reset()
	s.log = s.baseLog
}

// Reset requests a soft reset, applied at the worker's next yield point.
func (s *Session) Reset() {
	if s.runner == nil {
		return
	}
	s.rv.RequestReset(rendezvous.ResetSoft)
}

// HardReset requests a full machine re-initialization. The engine
// applies it at its next opportunity after the next yield point.
func (s *Session) HardReset() {
	if s.runner == nil {
		return
	}
	s.rv.RequestReset(rendezvous.ResetHard)
}

// AVInfo reports geometry and timing. Dimensions and sample rate are only
// known once the first frame has been produced; all values are zero when
// no game is loaded.
func (s *Session) AVInfo() emucore.AVInfo {
	w, h := s.buf.Width(), s.buf.Height()
	var fps float64
	if s.runner != nil {
		fps = s.info.RefreshRateHz
	}
	return emucore.AVInfo{
		Geometry: emucore.Geometry{
			BaseWidth:  w,
			BaseHeight: h,
			MaxWidth:   w,
			MaxHeight:  h,
		},
		Timing: emucore.Timing{
			FPS:        fps,
			SampleRate: float64(s.buf.SampleRate()),
		},
	}
}

// GameInfo returns metadata for the loaded game, or the zero value.
func (s *Session) GameInfo() emucore.GameInfo {
	return s.info
}

// LastError returns the error the most recent run ended with, if any.
func (s *Session) LastError() error {
	return s.lastErr
}

// Stats is a snapshot of the session for diagnostics.
type Stats struct {
	Session    string `json:"session,omitempty"`
	Game       string `json:"game,omitempty"`
	State      string `json:"state"`
	Advanced   uint64 `json:"frames_advanced"`
	Delivered  uint64 `json:"frames_delivered"`
	Dropped    uint64 `json:"frames_dropped"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SampleRate int    `json:"sample_rate"`
	LastError  string `json:"last_error,omitempty"`
}

// Stats returns a snapshot of the session.
func (s *Session) Stats() Stats {
	st := Stats{
		State:      "Unloaded",
		Width:      s.buf.Width(),
		Height:     s.buf.Height(),
		SampleRate: s.buf.SampleRate(),
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	if s.runner == nil {
		return st
	}
	st.Session = s.id.String()
	st.Game = s.name
	st.State = s.runner.state.String()
	st.Advanced = s.advanced
	st.Delivered = s.runner.delivered
	st.Dropped = s.runner.dropped
	return st
}

// Close unloads any game. The session must not be used afterwards.
func (s *Session) Close() {
	s.Unload()
}
