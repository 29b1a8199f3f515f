//go:build !libretro

// Package standalone runs a session in an ebiten window. The ebiten
// goroutine is the session's driver: each tick advances the engine by one
// frame (more in turbo) and the frame's video and audio arrive through
// the session callbacks before AdvanceFrame returns.
package standalone

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	emucore "github.com/bji/libretromame/api"
	"github.com/bji/libretromame/config"
	"github.com/bji/libretromame/logging"
	"github.com/bji/libretromame/romloader"
	"github.com/bji/libretromame/session"
)

// action is a host command bound to a key.
type action int

const (
	actionNone action = iota
	actionFullscreen
	actionScreenshot
	actionCopyScreenshot
	actionSoftReset
	actionHardReset
	actionTurbo
	actionPause
	actionQuit
)

// actionFor maps a just-pressed key to its host command.
func actionFor(key ebiten.Key, shift bool) action {
	switch key {
	case ebiten.KeyF11:
		return actionFullscreen
	case ebiten.KeyF12:
		if shift {
			return actionCopyScreenshot
		}
		return actionScreenshot
	case ebiten.KeyF1:
		if shift {
			return actionHardReset
		}
		return actionSoftReset
	case ebiten.KeyTab:
		return actionTurbo
	case ebiten.KeyP:
		return actionPause
	case ebiten.KeyEscape:
		return actionQuit
	}
	return actionNone
}

var hotkeys = []ebiten.Key{
	ebiten.KeyF11, ebiten.KeyF12, ebiten.KeyF1, ebiten.KeyTab, ebiten.KeyP, ebiten.KeyEscape,
}

// Host implements ebiten.Game around a session.
type Host struct {
	sess *session.Session
	cfg  config.HostConfig
	log  zerolog.Logger
	game string

	fb          *Framebuffer
	renderer    *FramebufferRenderer
	audioPlayer *AudioPlayer
	wav         *WAVRecorder
	turbo       TurboState
	board       StatsBoard
	debug       *DebugServer

	audioAcc []int16
	polls    int
	paused   bool
	quit     bool
	sized    bool
}

// newHost creates a host for an initialized engine and wires the session
// callbacks.
func newHost(engine emucore.Engine, cfg config.HostConfig, log zerolog.Logger) *Host {
	h := &Host{
		sess:     session.New(engine, session.WithLogger(logging.Component("session"))),
		cfg:      cfg,
		log:      log,
		fb:       NewFramebuffer(),
		renderer: NewFramebufferRenderer(),
	}
	h.sess.SetVideoRefresh(h.fb.Store)
	h.sess.SetAudioSampleBatch(h.queueAudio)
	h.sess.SetInputPoll(func() { h.polls++ })
	h.sess.SetInputState(func(port, device, index, id uint) int16 { return 0 })
	return h
}

func (h *Host) queueAudio(samples []int16) int {
	h.audioAcc = append(h.audioAcc, samples...)
	return len(samples) / 2
}

// Run loads the romset at romPath and runs it until the window is closed
// or the game ends. With an empty romPath the user is asked to pick one.
func Run(engine emucore.Engine, romPath string, cfg config.AppConfig) error {
	log := logging.Component("host")

	if romPath == "" {
		p, err := PickRomset()
		if err != nil {
			return err
		}
		romPath = p
	}

	g, err := romloader.Identify(romPath)
	if err != nil {
		return fmt.Errorf("failed to identify romset: %w", err)
	}

	if err := engine.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Deinitialize()

	h := newHost(engine, cfg.Host, log)
	defer h.Close()

	if err := h.load(g.Name, cfg.Run.Options(g.RomDir)); err != nil {
		return err
	}

	info := h.sess.GameInfo()
	ebiten.SetWindowTitle(fmt.Sprintf("%s [%s]", info.FullName, info.Name))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ticksPerSecond(info.RefreshRateHz))
	ebiten.SetWindowSize(320*h.scale(), 240*h.scale())

	if cfg.Run.Sound {
		if h.audioPlayer, err = NewAudioPlayer(cfg.Run.SampleRate, cfg.Host.Volume); err != nil {
			log.Warn().Err(err).Msg("audio initialization failed")
		}
		if cfg.Host.WavFile != "" {
			if h.wav, err = NewWAVRecorder(cfg.Host.WavFile, cfg.Run.SampleRate); err != nil {
				log.Warn().Err(err).Msg("wav capture disabled")
			}
		}
	}
	if cfg.Host.DebugAddr != "" {
		h.debug = StartDebugServer(cfg.Host.DebugAddr, NewDebugRouter(&h.board), log)
	}

	return ebiten.RunGame(h)
}

// load starts a game in the session.
func (h *Host) load(name string, opts emucore.RunOptions) error {
	if err := h.sess.Load(name, opts); err != nil {
		return err
	}
	h.game = name
	h.sized = false
	return nil
}

// ticksPerSecond rounds a refresh rate to an ebiten tick rate.
func ticksPerSecond(hz float64) int {
	if hz <= 0 {
		return 60
	}
	return int(math.Round(hz))
}

func (h *Host) scale() int {
	if h.cfg.Scale < 1 {
		return 1
	}
	return h.cfg.Scale
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	h.handleKeys()
	if err := h.step(); err != nil {
		return err
	}
	if w, hgt := h.fb.Size(); !h.sized && w > 0 {
		ebiten.SetWindowSize(w*h.scale(), hgt*h.scale())
		h.sized = true
	}
	return nil
}

// step runs one host tick. It returns ebiten.Termination once the user
// quits or the game ends cleanly.
func (h *Host) step() error {
	if h.quit {
		return ebiten.Termination
	}
	if !h.paused {
		h.tick(h.turbo.Read())
	}
	h.publishStats()

	if !h.sess.Loaded() {
		if err := h.sess.LastError(); err != nil {
			return fmt.Errorf("game %s ended: %w", h.game, err)
		}
		h.log.Info().Str("game", h.game).Msg("game ended")
		return ebiten.Termination
	}
	return nil
}

// tick advances the session by multiplier frames and plays their audio
// squeezed into one frame's worth.
func (h *Host) tick(multiplier int) {
	h.audioAcc = h.audioAcc[:0]
	advanced := 0
	for i := 0; i < multiplier && h.sess.Loaded(); i++ {
		h.sess.AdvanceFrame()
		advanced++
	}
	if len(h.audioAcc) == 0 {
		return
	}
	samples := averageAudio(h.audioAcc, advanced)
	if h.audioPlayer != nil {
		h.audioPlayer.QueueSamples(samples)
	}
	if h.wav != nil {
		if err := h.wav.Write(samples); err != nil {
			h.log.Error().Err(err).Msg("wav capture stopped")
			h.wav.Close()
			h.wav = nil
		}
	}
}

func (h *Host) handleKeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, k := range hotkeys {
		if inpututil.IsKeyJustPressed(k) {
			h.perform(actionFor(k, shift))
		}
	}
}

func (h *Host) perform(a action) {
	switch a {
	case actionFullscreen:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	case actionScreenshot, actionCopyScreenshot:
		h.capture(a)
	case actionSoftReset:
		h.sess.Reset()
	case actionHardReset:
		h.sess.HardReset()
	case actionTurbo:
		h.log.Info().Int("multiplier", h.turbo.CycleMultiplier()).Msg("turbo")
	case actionPause:
		h.paused = !h.paused
		if h.paused && h.audioPlayer != nil {
			h.audioPlayer.ClearQueue()
		}
	case actionQuit:
		h.quit = true
	}
}

func (h *Host) capture(a action) {
	img := h.fb.Image()
	if img == nil {
		h.log.Warn().Msg("no frame to capture")
		return
	}
	if a == actionCopyScreenshot {
		if err := CopyScreenshot(img, h.cfg.ScreenshotScale); err != nil {
			h.log.Error().Err(err).Msg("screenshot copy failed")
			return
		}
		h.log.Info().Msg("screenshot copied to clipboard")
		return
	}
	path, err := SaveScreenshot(h.cfg.ScreenshotDir, h.game, img, h.cfg.ScreenshotScale, time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("screenshot failed")
		return
	}
	h.log.Info().Str("path", path).Msg("screenshot saved")
}

func (h *Host) publishStats() {
	st := HostStats{
		Session: h.sess.Stats(),
		Turbo:   h.turbo.Read(),
		Paused:  h.paused,
	}
	if h.audioPlayer != nil {
		st.AudioBuffered = h.audioPlayer.BufferLevel()
	}
	if h.wav != nil {
		st.WAVFrames = h.wav.Frames()
	}
	h.board.Set(st)
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	w, hgt := h.fb.Size()
	if w == 0 {
		return
	}
	h.renderer.DrawFramebuffer(screen, h.fb.Pixels(), w, hgt)
}

// Layout implements ebiten.Game.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	return int(float64(outsideWidth) * s), int(float64(outsideHeight) * s)
}

// Close stops the game and releases audio, capture and debug resources.
func (h *Host) Close() {
	h.sess.Close()
	if h.audioPlayer != nil {
		h.audioPlayer.Close()
		h.audioPlayer = nil
	}
	if h.wav != nil {
		if err := h.wav.Close(); err != nil {
			h.log.Error().Err(err).Msg("wav close")
		}
		h.wav = nil
	}
	if h.debug != nil {
		h.debug.Close()
		h.debug = nil
	}
}
