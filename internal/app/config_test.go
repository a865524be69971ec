package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cyclenes/internal/graphics"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := NewConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if config.Emulation.FrameRate != NTSCFrameRate {
		t.Errorf("Expected NTSC frame rate, got %f", config.Emulation.FrameRate)
	}
	if w, h := config.GetWindowResolution(); w != 768 || h != 720 {
		t.Errorf("Expected 768x720 at scale 3, got %dx%d", w, h)
	}
}

func TestLoadFromFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "cyclenes.json")

	config := NewConfig()
	if err := config.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Default config file not written: %v", err)
	}
	if config.GetConfigPath() != path {
		t.Errorf("Config path not recorded: %q", config.GetConfigPath())
	}
	if config.IsLoaded() {
		t.Error("A freshly created file should not count as loaded")
	}
}

func TestLoadFromFileReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cyclenes.json")

	config := NewConfig()
	config.Window.Scale = 4
	config.Audio.RecordWAV = "out.wav"
	config.Input.Player1Keys["a"] = "Z"
	if err := config.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded := NewConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if !loaded.IsLoaded() {
		t.Error("Expected IsLoaded after reading an existing file")
	}
	if loaded.Window.Scale != 4 || loaded.Audio.RecordWAV != "out.wav" || loaded.Input.Player1Keys["a"] != "Z" {
		t.Errorf("Values not read back: %+v", loaded)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "bad.json")
	os.WriteFile(malformed, []byte("{not json"), 0644)
	if err := NewConfig().LoadFromFile(malformed); err == nil {
		t.Error("Expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"emulation":{"region":"PAL"}}`), 0644)
	err := NewConfig().LoadFromFile(invalid)
	var configErr *ConfigError
	if !errors.As(err, &configErr) || configErr.Field != "emulation.region" {
		t.Fatalf("Expected ConfigError for region, got %v", err)
	}
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Error("ConfigError should unwrap to ErrUnsupportedValue")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"unknown backend", func(c *Config) { c.Video.Backend = "terminal" }, "video.backend"},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 100 }, "audio.sample_rate"},
		{"region", func(c *Config) { c.Emulation.Region = "Dendy" }, "emulation.region"},
		{"player 1 keys", func(c *Config) { c.Input.Player1Keys = graphics.KeyMap{"a": "F13"} }, "input.player1_keys"},
		{"player 2 keys", func(c *Config) { c.Input.Player2Keys = graphics.KeyMap{"turbo": "T"} }, "input.player2_keys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewConfig()
			tt.modify(config)
			var configErr *ConfigError
			if err := config.Validate(); !errors.As(err, &configErr) || configErr.Field != tt.field {
				t.Errorf("Expected ConfigError on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateClamps(t *testing.T) {
	config := NewConfig()
	config.Window.Scale = 0
	config.Video.Filter = "cubic"
	config.Video.ScreenshotScale = -1
	config.Audio.BufferSize = 0
	config.Audio.Volume = 2
	config.Emulation.FrameRate = 0
	config.Debug.Verbosity = -3

	if err := config.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if config.Window.Scale != 1 || config.Video.Filter != "nearest" || config.Video.ScreenshotScale != 1 {
		t.Errorf("Video settings not clamped: %+v %+v", config.Window, config.Video)
	}
	if config.Audio.BufferSize != 4096 || config.Audio.Volume != 0.8 {
		t.Errorf("Audio settings not clamped: %+v", config.Audio)
	}
	if config.Emulation.FrameRate != NTSCFrameRate || config.Debug.Verbosity != 0 {
		t.Error("Emulation/debug settings not clamped")
	}
}

func TestLogVerbosity(t *testing.T) {
	config := NewConfig()
	if config.LogVerbosity() != 0 {
		t.Errorf("Expected 0, got %d", config.LogVerbosity())
	}
	config.Debug.CPUTrace = true
	if config.LogVerbosity() != 3 {
		t.Errorf("CPU trace needs level 3, got %d", config.LogVerbosity())
	}
	config.Debug.Verbosity = 4
	if config.LogVerbosity() != 4 {
		t.Errorf("Higher explicit level should win, got %d", config.LogVerbosity())
	}
}

func TestClone(t *testing.T) {
	config := NewConfig()
	config.SaveToFile(filepath.Join(t.TempDir(), "c.json"))

	clone := config.Clone()
	clone.Input.Player1Keys["a"] = "Q"
	clone.Window.Scale = 9
	if config.Input.Player1Keys["a"] == "Q" || config.Window.Scale == 9 {
		t.Error("Clone must not share state")
	}
	if clone.GetConfigPath() != config.GetConfigPath() {
		t.Error("Clone should keep the config path")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := NewConfig().Save(); err == nil {
		t.Error("Expected error when no path is set")
	}
}
