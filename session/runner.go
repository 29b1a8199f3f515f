package session

import (
	"errors"

	"github.com/rs/zerolog"

	emucore "github.com/bji/libretromame/api"
	"github.com/bji/libretromame/frame"
	"github.com/bji/libretromame/rendezvous"
)

// State is the runner's lifecycle state.
type State int

const (
	NotStarted State = iota
	Running
	Stopping
	Resetting
	Exited
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Stopping:
		return "Stopping"
	case Resetting:
		return "Resetting"
	case Exited:
		return "Exited"
	default:
		return "Unknown"
	}
}

// runner executes the engine on the worker goroutine and implements the
// engine's callback interface. Everything it touches besides the
// rendezvous is owned by the worker while it holds the turn.
type runner struct {
	s    *Session
	rv   *rendezvous.Rendezvous
	buf  *frame.Buffer
	log  zerolog.Logger
	info emucore.GameInfo

	game     emucore.RunningGame
	state    State
	stopping bool
	exitErr  error

	delivered uint64
	dropped   uint64
}

func newRunner(s *Session, info emucore.GameInfo, log zerolog.Logger) *runner {
	return &runner{
		s:     s,
		rv:    s.rv,
		buf:   s.buf,
		log:   log,
		info:  info,
		state: NotStarted,
	}
}

// run is the worker goroutine. The engine is not started until the
// driver's first advance.
func (r *runner) run(engine emucore.Engine, number int, opts emucore.RunOptions, done chan<- struct{}) {
	defer close(done)
	defer r.exit()

	cmd := r.rv.Wait()
	if cmd.Stop {
		r.log.Debug().Msg("stopped before the game started")
		return
	}
	// Reset intents from before the start are moot: a new run is a full
	// initialization.

	r.state = Running
	r.log.Info().Str("name", r.info.FullName).Msg("starting game")
	if err := engine.RunGame(number, opts, r); err != nil {
		r.exitErr = err
		r.logStartupError(err)
		return
	}
	r.log.Info().Msg("game exited")
}

func (r *runner) exit() {
	r.buf.Reset()
	r.game = nil
	r.state = Exited
	r.rv.Exit()
}

func (r *runner) logStartupError(err error) {
	var msg string
	switch {
	case errors.Is(err, emucore.ErrInvalidGame):
		msg = "invalid game number"
	case errors.Is(err, emucore.ErrFailedValidity):
		msg = "game failed its validity checks"
	case errors.Is(err, emucore.ErrMissingFiles):
		msg = "game files are missing"
	case errors.Is(err, emucore.ErrInvalidConfig):
		msg = "engine configuration is invalid"
	default:
		msg = "engine failed to run the game"
	}
	r.log.Error().Err(err).Msg(msg)
}

// StatusText implements emucore.RunCallbacks.
func (r *runner) StatusText(msg string) {
	r.log.Info().Str("source", "engine").Msg(msg)
}

// StartingUp implements emucore.RunCallbacks.
// A stop that arrived before the engine had a running game is scheduled
// as soon as the handle appears.
func (r *runner) StartingUp(phase emucore.StartupPhase, pct int, game emucore.RunningGame) {
	if r.stopping && r.game == nil && game != nil {
		game.ScheduleExit()
		r.log.Debug().Msg("exit scheduled at startup")
	}
	r.game = game
	r.log.Debug().
		Str("phase", phase.String()).
		Int("pct", pct).
		Msgf("Starting up: %s", r.info.FullName)
}

// PollAllControls implements emucore.RunCallbacks. Only the driver's
// poll is triggered; per-control state is left untouched.
func (r *runner) PollAllControls(state *emucore.ControlsState) {
	if r.stopping {
		return
	}
	if poll := r.s.inputPoll; poll != nil {
		poll()
	}
}

// UpdateVideo implements emucore.RunCallbacks.
func (r *runner) UpdateVideo(list *emucore.RenderPrimitive) {
	if r.stopping {
		return
	}
	if !r.buf.Convert(list) {
		r.dropped++
		return
	}
	r.delivered++
	if video := r.s.video; video != nil {
		video(r.buf.Pixels(), r.buf.Width(), r.buf.Height(), r.buf.Pitch())
	}
}

// UpdateAudio implements emucore.RunCallbacks.
func (r *runner) UpdateAudio(sampleRate int, samples []int16) {
	if r.stopping {
		return
	}
	if sampleRate != r.buf.SampleRate() {
		r.log.Debug().Int("rate", sampleRate).Msg("audio sample rate changed")
	}
	r.buf.SetSampleRate(sampleRate)
	frame.ForwardAudio(samples, r.s.audioBatch, r.s.audioSample)
}

// SetMasterVolume implements emucore.RunCallbacks.
func (r *runner) SetMasterVolume(attenuation int) {}

// Paused implements emucore.RunCallbacks.
func (r *runner) Paused() {}

// MakeRunningGameCalls implements emucore.RunCallbacks. It is the yield
// point: the frame just produced is handed to the driver and the worker
// blocks until the next advance.
func (r *runner) MakeRunningGameCalls() {
	if r.stopping {
		return
	}
	r.apply(r.rv.Yield())
}

func (r *runner) apply(cmd rendezvous.Commands) {
	if cmd.Stop {
		r.state = Stopping
		r.stopping = true
		if r.game == nil {
			r.log.Debug().Msg("exit pending until startup")
			return
		}
		r.game.ScheduleExit()
		r.log.Debug().Msg("exit scheduled")
		return
	}
	if r.game == nil {
		return
	}
	switch {
	case cmd.HardReset:
		r.state = Resetting
		r.game.ScheduleHardReset()
		r.log.Info().Msg("hard reset scheduled")
	case cmd.SoftReset:
		r.state = Resetting
		r.game.ScheduleSoftReset()
		r.log.Info().Msg("soft reset scheduled")
	}
	r.state = Running
}
