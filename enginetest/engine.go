// Package enginetest provides an in-process emucore.Engine for tests and
// for running the host without a real emulation engine.
//
// The engine mimics the shape of an arcade engine's run loop: startup
// progress, then per frame an input poll, a video update, an audio update
// and a yield via MakeRunningGameCalls. Scheduled resets and exits are
// applied at the top of the following frame.
package enginetest

import (
	"fmt"
	"math"
	"sync"

	emucore "github.com/bji/libretromame/api"
)

// Game describes one game the engine knows about.
type Game struct {
	Name          string
	FullName      string
	RefreshRateHz float64
	MaxPlayers    int
	Width         int
	Height        int

	// StartErr is returned from RunGame after the Preparing phase.
	StartErr error

	// Frames makes the run end on its own after that many frames.
	// Zero runs until an exit is scheduled.
	Frames int

	// Video builds the render list for a frame. Nil draws TestCard.
	Video func(frame int) *emucore.RenderPrimitive

	// IgnoreExit makes the game keep running after ScheduleExit for the
	// given number of extra frames.
	IgnoreExit int

	// EarlyYields makes RunGame reach its yield point that many times
	// before it reports any startup phase.
	EarlyYields int
}

// Engine is a scriptable emucore.Engine. It is safe to inspect from
// another goroutine while a game runs.
type Engine struct {
	games []Game

	mu          sync.Mutex
	initialized bool
	runs        int
	frames      int
	softResets  int
	hardResets  int
	exits       int
	lastOptions emucore.RunOptions
}

// New creates an engine that knows the given games. Zero fields are
// filled with defaults: 60 Hz, 2 players, 320x240.
func New(games ...Game) *Engine {
	e := &Engine{}
	for _, g := range games {
		if g.FullName == "" {
			g.FullName = g.Name
		}
		if g.RefreshRateHz == 0 {
			g.RefreshRateHz = 60
		}
		if g.MaxPlayers == 0 {
			g.MaxPlayers = 2
		}
		if g.Width == 0 {
			g.Width = 320
		}
		if g.Height == 0 {
			g.Height = 240
		}
		e.games = append(e.games, g)
	}
	return e
}

// Initialize implements emucore.Engine.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initialized = true
	return nil
}

// Deinitialize implements emucore.Engine.
func (e *Engine) Deinitialize() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initialized = false
}

// Initialized reports whether Initialize has been called without a
// matching Deinitialize.
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// GameNumber implements emucore.Engine.
func (e *Engine) GameNumber(name string) int {
	for i, g := range e.games {
		if g.Name == name {
			return i
		}
	}
	return -1
}

// GameInfo implements emucore.Engine.
func (e *Engine) GameInfo(number int) emucore.GameInfo {
	if number < 0 || number >= len(e.games) {
		return emucore.GameInfo{}
	}
	g := e.games[number]
	return emucore.GameInfo{
		Name:          g.Name,
		FullName:      g.FullName,
		RefreshRateHz: g.RefreshRateHz,
		MaxPlayers:    g.MaxPlayers,
	}
}

// RunGame implements emucore.Engine.
func (e *Engine) RunGame(number int, opts emucore.RunOptions, cb emucore.RunCallbacks) error {
	if number < 0 || number >= len(e.games) {
		return fmt.Errorf("game %d: %w", number, emucore.ErrInvalidGame)
	}
	g := e.games[number]

	e.mu.Lock()
	e.runs++
	e.lastOptions = opts.Clone()
	e.mu.Unlock()

	rg := &runningGame{engine: e}
	cb.StatusText(fmt.Sprintf("%s: starting\n", g.Name))
	for i := 0; i < g.EarlyYields; i++ {
		cb.MakeRunningGameCalls()
	}
	cb.StartingUp(emucore.StartupPreparing, 0, rg)
	if g.StartErr != nil {
		return g.StartErr
	}
	cb.StartingUp(emucore.StartupLoadingRoms, 50, rg)
	cb.StartingUp(emucore.StartupInitializingMachine, 100, rg)

	rate := opts.SampleRate
	if rate <= 0 {
		rate = 48000
	}
	tone := newTone(rate, g.RefreshRateHz)

	var controls emucore.ControlsState
	frameNum := 0
	extra := g.IgnoreExit
	for {
		if rg.exit {
			if extra == 0 {
				return nil
			}
			extra--
		}
		if rg.hardReset {
			rg.hardReset = false
			rg.softReset = false
			e.count(&e.hardResets)
			cb.StartingUp(emucore.StartupInitializingMachine, 100, rg)
			frameNum = 0
		}
		if rg.softReset {
			rg.softReset = false
			e.count(&e.softResets)
			frameNum = 0
		}

		cb.PollAllControls(&controls)
		if g.Video != nil {
			cb.UpdateVideo(g.Video(frameNum))
		} else {
			cb.UpdateVideo(TestCard(g.Width, g.Height, frameNum))
		}
		if opts.Sound {
			cb.UpdateAudio(rate, tone.next())
		}
		cb.MakeRunningGameCalls()

		e.count(&e.frames)
		frameNum++
		if g.Frames > 0 && frameNum >= g.Frames {
			return nil
		}
	}
}

func (e *Engine) count(n *int) {
	e.mu.Lock()
	*n++
	e.mu.Unlock()
}

// Runs returns the number of RunGame calls.
func (e *Engine) Runs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runs
}

// Frames returns the number of frames run across all games.
func (e *Engine) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// SoftResets returns the number of soft resets applied.
func (e *Engine) SoftResets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.softResets
}

// HardResets returns the number of hard resets applied.
func (e *Engine) HardResets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hardResets
}

// Exits returns the number of runs that had an exit scheduled.
func (e *Engine) Exits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exits
}

// LastOptions returns the options passed to the most recent RunGame.
func (e *Engine) LastOptions() emucore.RunOptions {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastOptions.Clone()
}

// runningGame is only touched from the RunGame goroutine.
type runningGame struct {
	engine    *Engine
	softReset bool
	hardReset bool
	exit      bool
}

func (g *runningGame) ScheduleSoftReset() { g.softReset = true }
func (g *runningGame) ScheduleHardReset() { g.hardReset = true }

func (g *runningGame) ScheduleExit() {
	if !g.exit {
		g.exit = true
		g.engine.count(&g.engine.exits)
	}
}

// tone produces a 440 Hz stereo sine, one frame of samples at a time.
type tone struct {
	perFrame int
	phase    float64
	step     float64
	buf      []int16
}

func newTone(rate int, fps float64) *tone {
	perFrame := int(float64(rate) / fps)
	return &tone{
		perFrame: perFrame,
		step:     2 * math.Pi * 440 / float64(rate),
		buf:      make([]int16, perFrame*2),
	}
}

func (t *tone) next() []int16 {
	for i := 0; i < t.perFrame; i++ {
		v := int16(math.Sin(t.phase) * 8000)
		t.buf[2*i] = v
		t.buf[2*i+1] = v
		t.phase += t.step
		if t.phase > 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
	return t.buf
}
