package config

import (
	"github.com/caarlos0/env/v11"

	emucore "github.com/bji/libretromame/api"
)

// RunConfig is the one-time engine tuning applied to every game run.
type RunConfig struct {
	Sound         bool     `env:"MAME_SOUND" envDefault:"true"`
	SampleRate    int      `env:"MAME_SAMPLE_RATE" envDefault:"48000"`
	FrameSkip     int      `env:"MAME_FRAMESKIP" envDefault:"0"`
	AutoFrameSkip bool     `env:"MAME_AUTO_FRAMESKIP" envDefault:"false"`
	Throttle      bool     `env:"MAME_THROTTLE" envDefault:"false"`
	RomPaths      []string `env:"MAME_ROMPATH" envSeparator:":"`
}

func LoadRun() (RunConfig, error) {
	var cfg RunConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// Options builds engine run options. romDir, when set, is searched before
// the configured rom paths.
func (c RunConfig) Options(romDir string) emucore.RunOptions {
	var paths []string
	if romDir != "" {
		paths = append(paths, romDir)
	}
	for _, p := range c.RomPaths {
		if p != "" && p != romDir {
			paths = append(paths, p)
		}
	}
	return emucore.RunOptions{
		RomPaths:      paths,
		Sound:         c.Sound,
		SampleRate:    c.SampleRate,
		FrameSkip:     c.FrameSkip,
		AutoFrameSkip: c.AutoFrameSkip,
		Throttle:      c.Throttle,
	}
}
