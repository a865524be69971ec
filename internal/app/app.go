package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"

	"cyclenes/internal/audio"
	"cyclenes/internal/bus"
	"cyclenes/internal/cartridge"
	"cyclenes/internal/graphics"
	"cyclenes/internal/ppu"
)

// ErrNoROM is returned when running without a loaded cartridge
var ErrNoROM = errors.New("no ROM loaded")

// Application owns the console and connects it to the host
type Application struct {
	bus *bus.Bus

	graphicsBackend graphics.Backend
	window          graphics.Window

	player   *audio.Player
	recorder *audio.WAVRecorder

	config   *Config
	emulator *Emulator
	saves    *SaveManager

	running     bool
	paused      bool
	initialized bool
	headless    bool

	frameCount uint64
	startTime  time.Time

	romPath   string
	cartridge *cartridge.Cartridge
}

// ApplicationError represents application-specific errors
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Component, e.Operation, e.Err)
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// NewApplicationWithConfig builds the application from an explicit config
func NewApplicationWithConfig(config *Config, headless bool) (*Application, error) {
	if err := config.Validate(); err != nil {
		return nil, &ApplicationError{Component: "config", Operation: "validate", Err: err}
	}
	app := &Application{
		config:   config,
		headless: headless || config.Video.Backend == string(graphics.BackendHeadless),
	}

	if err := app.initializeComponents(); err != nil {
		app.Cleanup()
		return nil, &ApplicationError{
			Component: "initialization",
			Operation: "component setup",
			Err:       err,
		}
	}
	return app, nil
}

func (app *Application) initializeComponents() error {
	app.bus = bus.New()
	app.bus.SetFrameCallback(app.presentFrame)

	if err := app.initializeGraphicsBackend(); err != nil {
		return fmt.Errorf("graphics backend: %w", err)
	}
	if err := app.initializeAudio(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}

	app.emulator = NewEmulator(app.bus, app.config)
	app.emulator.SetPaced(!app.headless)
	app.saves = NewSaveManager(app.config.Paths.SaveData)

	app.initialized = true
	return nil
}

func (app *Application) initializeGraphicsBackend() error {
	backendType := graphics.BackendType(app.config.Video.Backend)
	if app.headless {
		backendType = graphics.BackendHeadless
	}

	width, height := app.config.GetWindowResolution()
	graphicsConfig := graphics.Config{
		WindowTitle:  "cyclenes",
		WindowWidth:  width,
		WindowHeight: height,
		Fullscreen:   app.config.Window.Fullscreen,
		VSync:        app.config.Video.VSync,
		Filter:       app.config.Video.Filter,
		KeyMaps:      app.config.KeyMaps(),
		Headless:     app.headless,
	}

	backend, err := graphics.CreateBackend(backendType)
	if err != nil {
		return err
	}
	if err := backend.Initialize(graphicsConfig); err != nil {
		if backendType != graphics.BackendEbitengine {
			return err
		}
		// no display (or headless build): continue without a window
		glog.Warningf("[APP] Ebitengine backend failed (%v), falling back to headless mode", err)
		app.headless = true
		graphicsConfig.Headless = true
		backend = graphics.NewHeadlessBackend()
		if err := backend.Initialize(graphicsConfig); err != nil {
			return err
		}
	}
	app.graphicsBackend = backend

	app.window, err = backend.CreateWindow(graphicsConfig.WindowTitle, width, height)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	glog.Infof("[APP] %s backend, %dx%d", backend.GetName(), width, height)
	return nil
}

func (app *Application) initializeAudio() error {
	cfg := app.config.Audio
	app.bus.APU.SetSampleRate(cfg.SampleRate)

	var sinks audio.Tee
	if cfg.Enabled && !app.headless {
		player, err := audio.NewPlayer(cfg.SampleRate, cfg.BufferSize, cfg.Volume)
		if err != nil {
			glog.Warningf("[APP] audio output disabled: %v", err)
		} else {
			app.player = player
			sinks = append(sinks, player)
		}
	}
	if cfg.RecordWAV != "" {
		recorder, err := audio.NewWAVRecorder(cfg.RecordWAV, cfg.SampleRate)
		if err != nil {
			return err
		}
		app.recorder = recorder
		sinks = append(sinks, recorder)
	}

	switch len(sinks) {
	case 0:
		app.bus.SetSampleSink(audio.NullSink{})
	case 1:
		app.bus.SetSampleSink(sinks[0])
	default:
		app.bus.SetSampleSink(sinks)
	}
	return nil
}

// LoadROM loads a ROM file into the emulator
func (app *Application) LoadROM(romPath string) error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		return &ApplicationError{Component: "cartridge", Operation: "load ROM", Err: err}
	}
	if app.cartridge != nil {
		app.storeSave()
	}
	if err := app.saves.Load(cart, romPath); err != nil {
		glog.Warningf("[APP] %v", err)
	}

	app.cartridge = cart
	app.romPath = romPath
	app.bus.LoadCartridge(cart)

	app.window.SetTitle(fmt.Sprintf("cyclenes - %s", filepath.Base(romPath)))
	glog.Infof("[APP] loaded %s", romPath)

	app.emulator.Start()
	return nil
}

// Run drives the emulator until ctx is cancelled, the window closes, or
// frames frames have run (frames <= 0: unlimited)
func (app *Application) Run(ctx context.Context, frames int) error {
	if !app.initialized {
		return errors.New("application not initialized")
	}
	if app.cartridge == nil {
		return ErrNoROM
	}

	app.running = true
	app.startTime = time.Now()
	defer func() { app.running = false }()

	if ebitengineWindow, ok := graphics.AsEbitengineWindow(app.window); ok && !app.headless {
		return app.runWindowed(ctx, ebitengineWindow, frames)
	}
	err := app.emulator.Run(ctx, frames, app.afterFrame)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runWindowed lets Ebitengine own the loop; every game tick runs one frame
func (app *Application) runWindowed(ctx context.Context, window *graphics.EbitengineWindow, frames int) error {
	window.SetEmulatorUpdateFunc(func() error {
		if ctx.Err() != nil || !app.running {
			window.Cleanup()
			return nil
		}
		app.processInput()
		if !app.paused {
			if err := app.emulator.Update(); err != nil {
				return err
			}
		}
		if frames > 0 && app.emulator.GetFrameCount() >= uint64(frames) {
			window.Cleanup()
		}
		return nil
	})
	return window.Run()
}

// afterFrame runs between headless frames. Pause has no effect here.
func (app *Application) afterFrame() error {
	app.processInput()
	if app.window.ShouldClose() {
		app.Stop()
	}
	return nil
}

// processInput copies the held buttons into the controllers and handles hotkeys
func (app *Application) processInput() {
	app.bus.SetButtons(1, app.window.Buttons(1))
	app.bus.SetButtons(2, app.window.Buttons(2))

	for _, event := range app.window.PollEvents() {
		switch event.Type {
		case graphics.InputEventTypeQuit:
			app.Stop()
		case graphics.InputEventTypePause:
			app.TogglePause()
		case graphics.InputEventTypeReset:
			app.Reset()
		case graphics.InputEventTypeScreenshot:
			path := graphics.ScreenshotPath(app.config.Paths.Screenshots, app.romPath, time.Now())
			if err := app.Screenshot(path); err != nil {
				glog.Warningf("[APP] %v", err)
			}
		}
		if glog.V(1) {
			glog.Infof("[APP] hotkey %v", event.Type)
		}
	}
}

func (app *Application) presentFrame(frame *ppu.Frame) {
	app.frameCount++
	if err := app.window.RenderFrame(frame); err != nil {
		glog.Warningf("[APP] render frame %d: %v", app.frameCount, err)
	}
}

// Screenshot writes the last completed frame to path as PNG
func (app *Application) Screenshot(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
	}
	return graphics.SaveScreenshot(app.bus.FrameBuffer(), path, app.config.Video.ScreenshotScale)
}

func (app *Application) storeSave() {
	if err := app.saves.Store(app.cartridge, app.romPath); err != nil {
		glog.Errorf("[APP] %v", err)
	}
}

// Stop stops the application
func (app *Application) Stop() {
	app.running = false
	app.emulator.Stop()
}

// Pause pauses the emulator
func (app *Application) Pause() {
	app.paused = true
}

// Resume resumes the emulator
func (app *Application) Resume() {
	app.paused = false
}

// TogglePause toggles pause state
func (app *Application) TogglePause() {
	app.paused = !app.paused
	glog.Infof("[APP] paused=%t", app.paused)
}

// Reset presses the console reset button
func (app *Application) Reset() {
	if app.cartridge != nil {
		app.bus.Reset()
	}
}

// IsRunning returns whether the application is running
func (app *Application) IsRunning() bool {
	return app.running
}

// IsPaused returns whether the emulator is paused
func (app *Application) IsPaused() bool {
	return app.paused
}

// IsHeadless reports whether the application runs without a display
func (app *Application) IsHeadless() bool {
	return app.headless
}

// GetFrameCount returns the number of frames presented
func (app *Application) GetFrameCount() uint64 {
	return app.frameCount
}

// GetUptime returns the time since Run started
func (app *Application) GetUptime() time.Duration {
	if app.startTime.IsZero() {
		return 0
	}
	return time.Since(app.startTime)
}

// GetROMPath returns the currently loaded ROM path
func (app *Application) GetROMPath() string {
	return app.romPath
}

// GetConfig returns the application configuration
func (app *Application) GetConfig() *Config {
	return app.config
}

// GetBus returns the console bus
func (app *Application) GetBus() *bus.Bus {
	return app.bus
}

// GetEmulator returns the frame loop
func (app *Application) GetEmulator() *Emulator {
	return app.emulator
}

// GetWindow returns the output window
func (app *Application) GetWindow() graphics.Window {
	return app.window
}

// Cleanup writes battery saves, finalises recordings and releases the backend
func (app *Application) Cleanup() error {
	var errs []error

	if app.cartridge != nil {
		if err := app.saves.Store(app.cartridge, app.romPath); err != nil {
			errs = append(errs, err)
		}
	}
	if app.recorder != nil {
		if err := app.recorder.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.player != nil {
		if err := app.player.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.window != nil {
		if err := app.window.Cleanup(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.graphicsBackend != nil {
		if err := app.graphicsBackend.Cleanup(); err != nil {
			errs = append(errs, err)
		}
	}

	app.initialized = false
	return errors.Join(errs...)
}
