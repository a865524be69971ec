// Package app wires the emulator core to configuration, video, audio and input.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cyclenes/internal/graphics"
	"cyclenes/internal/ppu"
)

// NTSCFrameRate is the native frame rate of the NTSC console
const NTSCFrameRate = 60.0988

// Config holds all application configuration
type Config struct {
	Window    WindowConfig    `json:"window"`
	Video     VideoConfig     `json:"video"`
	Audio     AudioConfig     `json:"audio"`
	Input     InputConfig     `json:"input"`
	Emulation EmulationConfig `json:"emulation"`
	Debug     DebugConfig     `json:"debug"`
	Paths     PathsConfig     `json:"paths"`

	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Scale      int  `json:"scale"` // NES resolution multiplier
	Fullscreen bool `json:"fullscreen"`
}

// VideoConfig contains video rendering configuration
type VideoConfig struct {
	Backend         string `json:"backend"` // "ebitengine", "headless"
	VSync           bool   `json:"vsync"`
	Filter          string `json:"filter"` // "nearest", "linear"
	ScreenshotScale int    `json:"screenshot_scale"`
}

// AudioConfig contains audio configuration
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	BufferSize int     `json:"buffer_size"` // samples
	Volume     float64 `json:"volume"`
	RecordWAV  string  `json:"record_wav,omitempty"`
}

// InputConfig contains keyboard bindings per controller
type InputConfig struct {
	Player1Keys graphics.KeyMap `json:"player1_keys"`
	Player2Keys graphics.KeyMap `json:"player2_keys"`
}

// EmulationConfig contains emulation-specific settings
type EmulationConfig struct {
	Region    string  `json:"region"` // only "NTSC"
	FrameRate float64 `json:"frame_rate"`
}

// DebugConfig contains logging options
type DebugConfig struct {
	Verbosity int  `json:"verbosity"` // glog -v level applied when the flag is not given
	CPUTrace  bool `json:"cpu_trace"`
}

// PathsConfig contains file and directory paths
type PathsConfig struct {
	SaveData    string `json:"save_data"`
	Screenshots string `json:"screenshots"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	keyMaps := graphics.DefaultKeyMaps()
	return &Config{
		Window: WindowConfig{
			Scale: 3,
		},
		Video: VideoConfig{
			Backend:         string(graphics.BackendEbitengine),
			VSync:           true,
			Filter:          "nearest",
			ScreenshotScale: 1,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			BufferSize: 4096,
			Volume:     0.8,
		},
		Input: InputConfig{
			Player1Keys: keyMaps[0],
			Player2Keys: keyMaps[1],
		},
		Emulation: EmulationConfig{
			Region:    "NTSC",
			FrameRate: NTSCFrameRate,
		},
		Paths: PathsConfig{
			SaveData:    "./saves",
			Screenshots: "./screenshots",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. A missing file is
// created with the current values.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c.SaveToFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := c.Validate(); err != nil {
		return err
	}

	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

// Save saves the configuration to the current config file
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config file path set")
	}
	return c.SaveToFile(c.configPath)
}

// Validate rejects unusable settings and clamps out-of-range ones
func (c *Config) Validate() error {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}

	switch graphics.BackendType(c.Video.Backend) {
	case graphics.BackendEbitengine, graphics.BackendHeadless:
	default:
		return &ConfigError{Field: "video.backend", Value: c.Video.Backend, Err: ErrUnsupportedValue}
	}
	if c.Video.Filter != "nearest" && c.Video.Filter != "linear" {
		c.Video.Filter = "nearest"
	}
	if c.Video.ScreenshotScale <= 0 {
		c.Video.ScreenshotScale = 1
	}

	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return &ConfigError{Field: "audio.sample_rate", Value: c.Audio.SampleRate, Err: ErrOutOfRange}
	}
	if c.Audio.BufferSize <= 0 {
		c.Audio.BufferSize = 4096
	}
	if c.Audio.Volume < 0.0 || c.Audio.Volume > 1.0 {
		c.Audio.Volume = 0.8
	}

	if c.Emulation.Region != "NTSC" {
		return &ConfigError{Field: "emulation.region", Value: c.Emulation.Region, Err: ErrUnsupportedValue}
	}
	if c.Emulation.FrameRate <= 0 {
		c.Emulation.FrameRate = NTSCFrameRate
	}

	if err := c.Input.Player1Keys.Validate(); err != nil {
		return &ConfigError{Field: "input.player1_keys", Value: c.Input.Player1Keys, Err: err}
	}
	if err := c.Input.Player2Keys.Validate(); err != nil {
		return &ConfigError{Field: "input.player2_keys", Value: c.Input.Player2Keys, Err: err}
	}

	if c.Debug.Verbosity < 0 {
		c.Debug.Verbosity = 0
	}
	return nil
}

// LogVerbosity returns the glog level implied by the debug section
func (c *Config) LogVerbosity() int {
	if c.Debug.CPUTrace && c.Debug.Verbosity < 3 {
		return 3
	}
	return c.Debug.Verbosity
}

// GetWindowResolution returns the window resolution based on scale
func (c *Config) GetWindowResolution() (int, int) {
	return ppu.ScreenWidth * c.Window.Scale, ppu.ScreenHeight * c.Window.Scale
}

// KeyMaps returns the bindings for both controllers
func (c *Config) KeyMaps() [2]graphics.KeyMap {
	return [2]graphics.KeyMap{c.Input.Player1Keys, c.Input.Player2Keys}
}

// IsLoaded returns whether the configuration was loaded from file
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetConfigPath returns the path to the config file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		return NewConfig()
	}

	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		return NewConfig()
	}
	clone.configPath = c.configPath
	clone.loaded = c.loaded
	return clone
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	return "./config/cyclenes.json"
}

var (
	// ErrUnsupportedValue marks a setting the emulator cannot honour
	ErrUnsupportedValue = errors.New("unsupported value")
	// ErrOutOfRange marks a numeric setting outside its accepted range
	ErrOutOfRange = errors.New("value out of range")
)

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field '%s' with value '%v': %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
