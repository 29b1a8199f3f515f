package config

import "testing"

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" {
		t.Fatalf("Level = %q, want info", cfg.Level)
	}
	if cfg.MaxMB != 10 {
		t.Fatalf("MaxMB = %d, want 10", cfg.MaxMB)
	}
}

func TestLoadLogParse(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/core.log")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" || cfg.File != "/tmp/core.log" {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
}

func TestLoadRunDefaults(t *testing.T) {
	cfg, err := LoadRun()
	if err != nil {
		t.Fatalf("LoadRun() error = %v", err)
	}
	if !cfg.Sound || cfg.SampleRate != 48000 || cfg.Throttle {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadRunParse(t *testing.T) {
	t.Setenv("MAME_SOUND", "false")
	t.Setenv("MAME_FRAMESKIP", "2")
	t.Setenv("MAME_ROMPATH", "/roms:/more")

	cfg, err := LoadRun()
	if err != nil {
		t.Fatalf("LoadRun() error = %v", err)
	}
	if cfg.Sound {
		t.Fatal("Sound should be false")
	}
	if cfg.FrameSkip != 2 {
		t.Fatalf("FrameSkip = %d, want 2", cfg.FrameSkip)
	}
	if len(cfg.RomPaths) != 2 || cfg.RomPaths[1] != "/more" {
		t.Fatalf("RomPaths = %v", cfg.RomPaths)
	}
}

func TestLoadRunBadValue(t *testing.T) {
	t.Setenv("MAME_SAMPLE_RATE", "fast")

	if _, err := LoadRun(); err == nil {
		t.Fatal("expected error for non-numeric sample rate")
	}
}

func TestRunConfigOptions(t *testing.T) {
	cfg := RunConfig{
		Sound:      true,
		SampleRate: 44100,
		FrameSkip:  1,
		RomPaths:   []string{"/roms", "/game", ""},
	}

	opts := cfg.Options("/game")

	want := []string{"/game", "/roms"}
	if len(opts.RomPaths) != len(want) {
		t.Fatalf("RomPaths = %v, want %v", opts.RomPaths, want)
	}
	for i := range want {
		if opts.RomPaths[i] != want[i] {
			t.Fatalf("RomPaths = %v, want %v", opts.RomPaths, want)
		}
	}
	if !opts.Sound || opts.SampleRate != 44100 || opts.FrameSkip != 1 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestLoadHostDefaults(t *testing.T) {
	cfg, err := LoadHost()
	if err != nil {
		t.Fatalf("LoadHost() error = %v", err)
	}
	if cfg.Scale != 3 || cfg.Volume != 1.0 || cfg.DebugAddr != "" || cfg.ScreenshotScale != 1 {
		t.Fatalf("unexpected host defaults: %+v", cfg)
	}
}

func TestLoadApp(t *testing.T) {
	t.Setenv("MAMERUN_DEBUG_ADDR", "localhost:12600")

	cfg, err := LoadApp()
	if err != nil {
		t.Fatalf("LoadApp() error = %v", err)
	}
	if cfg.Host.DebugAddr != "localhost:12600" {
		t.Fatalf("Host.DebugAddr = %q", cfg.Host.DebugAddr)
	}
}
