package config

import "github.com/caarlos0/env/v11"

// HostConfig configures the standalone host.
type HostConfig struct {
	Scale           int     `env:"MAMERUN_SCALE" envDefault:"3"`
	Volume          float64 `env:"MAMERUN_VOLUME" envDefault:"1.0"`
	ScreenshotDir   string  `env:"MAMERUN_SCREENSHOT_DIR" envDefault:"screenshots"`
	ScreenshotScale int     `env:"MAMERUN_SCREENSHOT_SCALE" envDefault:"1"`
	WavFile         string  `env:"MAMERUN_WAV"`
	DebugAddr       string  `env:"MAMERUN_DEBUG_ADDR"`
}

func LoadHost() (HostConfig, error) {
	var cfg HostConfig
	err := env.Parse(&cfg)
	return cfg, err
}
