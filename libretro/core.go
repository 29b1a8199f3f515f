package libretro

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	emucore "github.com/bji/libretromame/api"
	"github.com/bji/libretromame/config"
	"github.com/bji/libretromame/romloader"
	"github.com/bji/libretromame/session"
)

// LibraryName and LibraryVersion identify the core to the frontend.
const (
	LibraryName    = "libretromame"
	LibraryVersion = "0.1.0"
)

// optionPrefix namespaces core option keys.
const optionPrefix = LibraryName + "_"

// coreOption is a frontend-visible setting mapped onto the run config.
type coreOption struct {
	Key    string
	Label  string
	Values []string
	// Default returns the value matching cfg.
	Default func(cfg config.RunConfig) string
	// Apply stores value into cfg. Unknown values are ignored.
	Apply func(cfg *config.RunConfig, value string)
}

var coreOptions = []coreOption{
	{
		Key:    "sound",
		Label:  "Sound",
		Values: []string{"enabled", "disabled"},
		Default: func(cfg config.RunConfig) string {
			if cfg.Sound {
				return "enabled"
			}
			return "disabled"
		},
		Apply: func(cfg *config.RunConfig, value string) {
			switch value {
			case "enabled":
				cfg.Sound = true
			case "disabled":
				cfg.Sound = false
			}
		},
	},
	{
		Key:    "sample_rate",
		Label:  "Sample rate",
		Values: []string{"48000", "44100", "32000", "22050", "11025"},
		Default: func(cfg config.RunConfig) string {
			return strconv.Itoa(cfg.SampleRate)
		},
		Apply: func(cfg *config.RunConfig, value string) {
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				cfg.SampleRate = n
			}
		},
	},
	{
		Key:    "frameskip",
		Label:  "Frameskip",
		Values: []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "auto"},
		Default: func(cfg config.RunConfig) string {
			if cfg.AutoFrameSkip {
				return "auto"
			}
			return strconv.Itoa(cfg.FrameSkip)
		},
		Apply: func(cfg *config.RunConfig, value string) {
			if value == "auto" {
				cfg.AutoFrameSkip = true
				return
			}
			if n, err := strconv.Atoi(value); err == nil && n >= 0 && n <= 10 {
				cfg.AutoFrameSkip = false
				cfg.FrameSkip = n
			}
		},
	},
}

// optionDefinition returns the "Label; default|other|..." string a
// frontend expects for o. A configured default missing from Values is
// offered first.
func optionDefinition(o coreOption, cfg config.RunConfig) string {
	ordered := reorderDefault(o.Values, o.Default(cfg))
	return o.Label + "; " + strings.Join(ordered, "|")
}

// reorderDefault moves the default value to the front of a values slice.
func reorderDefault(values []string, def string) []string {
	result := make([]string, 0, len(values))
	result = append(result, def)
	for _, v := range values {
		if v != def {
			result = append(result, v)
		}
	}
	return result
}

// systemInfo describes the core to the frontend. The engine reads
// romsets from disk itself, so the frontend must hand over paths and
// leave archives alone.
func systemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		LibraryName:    LibraryName,
		LibraryVersion: LibraryVersion,
		Extensions:     romloader.Extensions,
		NeedFullPath:   true,
		BlockExtract:   true,
	}
}

// core is the process-wide state behind the retro_* entry points. It
// holds no cgo types so it can be exercised without a frontend.
type core struct {
	engine emucore.Engine
	cfg    config.RunConfig
	log    zerolog.Logger

	sess        *session.Session
	initialized bool
	game        romloader.Game

	// Last geometry reported to the frontend.
	width, height int
}

var errNotInitialized = errors.New("core not initialized")

func newCore(engine emucore.Engine, cfg config.RunConfig, log zerolog.Logger) *core {
	return &core{engine: engine, cfg: cfg, log: log}
}

// startCore builds and initializes a core. A core whose engine failed to
// start is never returned, so no entry point can use it.
func startCore(engine emucore.Engine, cfg config.RunConfig, log zerolog.Logger) (*core, error) {
	c := newCore(engine, cfg, log)
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

// init starts the engine and creates the session. It is idempotent.
func (c *core) init() error {
	if c.initialized {
		return nil
	}
	if c.engine == nil {
		return errNotInitialized
	}
	if err := c.engine.Initialize(); err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	c.sess = session.New(c.engine, session.WithLogger(c.log))
	c.initialized = true
	return nil
}

// deinit unloads any game and shuts the engine down.
func (c *core) deinit() {
	if !c.initialized {
		return
	}
	c.sess.Close()
	c.engine.Deinitialize()
	c.sess = nil
	c.initialized = false
	c.game = romloader.Game{}
}

// loadGame identifies the romset at path and starts it.
func (c *core) loadGame(path string) error {
	if !c.initialized {
		return errNotInitialized
	}
	g, err := romloader.Identify(path)
	if err != nil {
		return err
	}
	c.log.Info().
		Str("path", path).
		Str("format", g.Format.String()).
		Int("members", len(g.Members)).
		Msg("romset identified")
	for _, m := range g.Members {
		c.log.Debug().Str("file", m.Name).Uint64("size", m.Size).Str("crc", fmt.Sprintf("%08x", m.CRC32)).Msg("romset member")
	}

	if err := c.sess.Load(g.Name, c.cfg.Options(g.RomDir)); err != nil {
		return err
	}
	c.game = g
	c.width, c.height = 0, 0
	return nil
}

func (c *core) unloadGame() {
	if !c.initialized {
		return
	}
	c.sess.Unload()
	c.game = romloader.Game{}
	c.width, c.height = 0, 0
}

// run advances one frame and reports whether the frame size differs from
// the last one reported.
func (c *core) run() (geometryChanged bool) {
	if !c.initialized {
		return false
	}
	c.sess.AdvanceFrame()
	av := c.sess.AVInfo()
	w, h := av.Geometry.BaseWidth, av.Geometry.BaseHeight
	if w == 0 || h == 0 || (w == c.width && h == c.height) {
		return false
	}
	c.width, c.height = w, h
	return true
}

func (c *core) reset() {
	if c.initialized {
		c.sess.HardReset()
	}
}

func (c *core) avInfo() emucore.AVInfo {
	if !c.initialized {
		return emucore.AVInfo{}
	}
	av := c.sess.AVInfo()
	if av.Geometry.BaseHeight > 0 {
		av.Geometry.AspectRatio = float64(av.Geometry.BaseWidth) / float64(av.Geometry.BaseHeight)
	}
	return av
}

// setOption applies a frontend option value. Changes take effect on the
// next load.
func (c *core) setOption(key, value string) {
	for _, o := range coreOptions {
		if optionPrefix+o.Key != key {
			continue
		}
		before := c.cfg
		o.Apply(&c.cfg, value)
		if c.sess != nil && c.sess.Loaded() && !sameRunConfig(before, c.cfg) {
			c.log.Info().Str("option", key).Str("value", value).Msg("option applies from the next game load")
		}
		return
	}
}

func sameRunConfig(a, b config.RunConfig) bool {
	return a.Sound == b.Sound &&
		a.SampleRate == b.SampleRate &&
		a.FrameSkip == b.FrameSkip &&
		a.AutoFrameSkip == b.AutoFrameSkip &&
		a.Throttle == b.Throttle
}
