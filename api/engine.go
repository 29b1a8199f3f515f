package emucore

import "errors"

// Startup failure categories reported by Engine.RunGame. Engines wrap one
// of these with additional detail using fmt.Errorf("...: %w", err).
var (
	ErrInvalidGame    = errors.New("invalid game number")
	ErrFailedValidity = errors.New("game failed validity check")
	ErrMissingFiles   = errors.New("missing game files")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrGeneral        = errors.New("general engine failure")
)

// Engine is the emulation engine the core drives. An engine owns its own
// run loop; RunGame does not return until the game exits and it calls back
// into RunCallbacks from the goroutine that invoked it.
type Engine interface {
	// Initialize sets up process-wide engine state.
	Initialize() error

	// Deinitialize releases process-wide engine state.
	Deinitialize()

	// GameNumber resolves a short game name to an internal game number.
	// Returns -1 if the name is unknown.
	GameNumber(name string) int

	// GameInfo returns metadata for a resolved game number.
	GameInfo(number int) GameInfo

	// RunGame runs the game until it exits. Errors returned before the
	// game starts running wrap one of the startup failure categories.
	RunGame(number int, opts RunOptions, cb RunCallbacks) error
}

// RunningGame is the handle to a game inside Engine.RunGame. Its methods
// only schedule work; the engine applies it at its next opportunity.
type RunningGame interface {
	// ScheduleSoftReset reloads game state without full re-initialization.
	ScheduleSoftReset()

	// ScheduleHardReset fully re-initializes the machine.
	ScheduleHardReset()

	// ScheduleExit makes RunGame return after the current frame.
	ScheduleExit()
}

// RunCallbacks is implemented by the core and handed to Engine.RunGame.
// All methods are called synchronously from the engine's run loop.
type RunCallbacks interface {
	// StatusText delivers engine status or log text.
	StatusText(msg string)

	// StartingUp reports startup progress. The game handle is valid from
	// the first call until RunGame returns.
	StartingUp(phase StartupPhase, pctComplete int, game RunningGame)

	// PollAllControls asks the core to latch input state into state.
	PollAllControls(state *ControlsState)

	// UpdateVideo delivers the render primitives for one frame.
	UpdateVideo(list *RenderPrimitive)

	// UpdateAudio delivers one frame of interleaved stereo samples.
	UpdateAudio(sampleRate int, samples []int16)

	// SetMasterVolume reports a master volume attenuation in dB.
	SetMasterVolume(attenuation int)

	// MakeRunningGameCalls is called once per frame and is the only place
	// the core may act on the running game.
	MakeRunningGameCalls()

	// Paused is called repeatedly while the engine is paused.
	Paused()
}

// GameInfo holds per-game metadata.
type GameInfo struct {
	Name          string
	FullName      string
	RefreshRateHz float64
	MaxPlayers    int
}

// RunOptions is the engine tuning used for a single run.
type RunOptions struct {
	RomPaths      []string
	Sound         bool
	SampleRate    int
	FrameSkip     int
	AutoFrameSkip bool
	Throttle      bool
}

// Clone returns a copy that shares no memory with o.
func (o RunOptions) Clone() RunOptions {
	c := o
	c.RomPaths = append([]string(nil), o.RomPaths...)
	return c
}

// StartupPhase identifies a stage of game startup.
type StartupPhase int

const (
	StartupPreparing StartupPhase = iota
	StartupLoadingRoms
	StartupInitializingMachine
)

// String returns the display name of the phase.
func (p StartupPhase) String() string {
	switch p {
	case StartupPreparing:
		return "Preparing"
	case StartupLoadingRoms:
		return "Loading Roms"
	case StartupInitializingMachine:
		return "Initializing Machine"
	default:
		return "UNKNOWN"
	}
}

// ControlsState receives latched input for all controls. Input mapping is
// not implemented, so the core leaves it zeroed.
type ControlsState struct {
	Buttons [MaxPlayers]uint32
}

// MaxPlayers is the number of player slots in ControlsState.
const MaxPlayers = 8
