//go:build !headless
// +build !headless

package graphics

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"cyclenes/internal/input"
	"cyclenes/internal/ppu"
)

// ErrWindowClosed is returned from the game loop when the user quits
var ErrWindowClosed = errors.New("window closed")

// EbitengineBackend implements the Backend interface using Ebitengine
type EbitengineBackend struct {
	initialized bool
	config      Config
	bindings    [2][]binding
}

// EbitengineWindow implements the Window interface for Ebitengine
type EbitengineWindow struct {
	backend *EbitengineBackend
	title   string
	width   int
	height  int
	game    *EbitengineGame

	mu                 sync.Mutex
	running            bool
	events             []InputEvent
	emulatorUpdateFunc func() error
}

// EbitengineGame implements ebiten.Game for the emulator
type EbitengineGame struct {
	window       *EbitengineWindow
	frameImage   *ebiten.Image
	pixels       []byte
	windowWidth  int
	windowHeight int
	drawCount    uint64
}

// hotkeys are the special keys polled every tick
var hotkeys = map[ebiten.Key]InputEventType{
	ebiten.KeyEscape: InputEventTypeQuit,
	ebiten.KeyP:      InputEventTypePause,
	ebiten.KeyF5:     InputEventTypeReset,
	ebiten.KeyF12:    InputEventTypeScreenshot,
}

// NewEbitengineBackend creates a new Ebitengine graphics backend
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize initializes the Ebitengine backend
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("Ebitengine backend already initialized")
	}
	if config.Headless {
		return fmt.Errorf("Ebitengine backend cannot run headless")
	}

	for player, keyMap := range config.KeyMaps {
		bindings, err := keyMap.resolve(IsKnownKey)
		if err != nil {
			return fmt.Errorf("player %d key map: %w", player+1, err)
		}
		b.bindings[player] = bindings
	}

	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates an Ebitengine window
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	game := &EbitengineGame{
		windowWidth:  width,
		windowHeight: height,
		frameImage:   ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight),
		pixels:       make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*4),
	}

	window := &EbitengineWindow{
		backend: b,
		title:   title,
		width:   width,
		height:  height,
		game:    game,
		running: true,
	}
	game.window = window

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)
	ebiten.SetFullscreen(b.config.Fullscreen)
	ebiten.SetScreenFilterEnabled(b.config.Filter == "linear")

	glog.Infof("[Ebitengine] window %dx%d created", width, height)
	return window, nil
}

// Cleanup releases all Ebitengine resources
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true if running in headless mode
func (b *EbitengineBackend) IsHeadless() bool {
	return false
}

// GetName returns the backend name
func (b *EbitengineBackend) GetName() string {
	return "Ebitengine"
}

// SetTitle sets the window title
func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// GetSize returns window dimensions
func (w *EbitengineWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *EbitengineWindow) ShouldClose() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.running
}

// PollEvents returns the hotkey events seen since the last call
func (w *EbitengineWindow) PollEvents() []InputEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := w.events
	w.events = nil
	return events
}

// Buttons returns the controller buttons held for player 1 or 2
func (w *EbitengineWindow) Buttons(player int) input.Button {
	if player < 1 || player > 2 {
		return 0
	}
	return pressedButtons(w.backend.bindings[player-1], func(name string) bool {
		key, ok := ebitenKeys[name]
		return ok && ebiten.IsKeyPressed(key)
	})
}

// RenderFrame uploads a completed frame to the window texture
func (w *EbitengineWindow) RenderFrame(frame *ppu.Frame) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}

	pix := w.game.pixels
	for i, argb := range frame {
		pix[i*4] = uint8(argb >> 16)
		pix[i*4+1] = uint8(argb >> 8)
		pix[i*4+2] = uint8(argb)
		pix[i*4+3] = 0xFF
	}
	w.game.frameImage.WritePixels(pix)
	return nil
}

// Cleanup releases window resources
func (w *EbitengineWindow) Cleanup() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
	return nil
}

// Run starts the Ebitengine game loop and blocks until the window closes
func (w *EbitengineWindow) Run() error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	err := ebiten.RunGame(w.game)
	if errors.Is(err, ErrWindowClosed) {
		return nil
	}
	return err
}

// SetEmulatorUpdateFunc sets the function called once per game tick
func (w *EbitengineWindow) SetEmulatorUpdateFunc(updateFunc func() error) {
	w.emulatorUpdateFunc = updateFunc
}

// Update implements ebiten.Game.Update
func (g *EbitengineGame) Update() error {
	g.pollHotkeys()

	if g.window.emulatorUpdateFunc != nil {
		if err := g.window.emulatorUpdateFunc(); err != nil {
			return err
		}
	}

	if g.window.ShouldClose() || ebiten.IsWindowBeingClosed() {
		return ErrWindowClosed
	}
	return nil
}

func (g *EbitengineGame) pollHotkeys() {
	var events []InputEvent
	for key, eventType := range hotkeys {
		if inpututil.IsKeyJustPressed(key) {
			events = append(events, InputEvent{Type: eventType})
		}
	}
	if len(events) == 0 {
		return
	}
	g.window.mu.Lock()
	g.window.events = append(g.window.events, events...)
	g.window.mu.Unlock()
}

// Draw implements ebiten.Game.Draw
func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{A: 0xFF})

	// Fit the window while keeping the aspect ratio, centred
	scaleX := float64(g.windowWidth) / ppu.ScreenWidth
	scaleY := float64(g.windowHeight) / ppu.ScreenHeight
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX := (float64(g.windowWidth) - ppu.ScreenWidth*scale) / 2
	offsetY := (float64(g.windowHeight) - ppu.ScreenHeight*scale) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(g.frameImage, op)

	g.drawCount++
	if glog.V(2) && g.drawCount%1800 == 0 {
		glog.Infof("[Ebitengine] draw %d scaled %.2fx at (%.1f,%.1f)", g.drawCount, scale, offsetX, offsetY)
	}
}

// Layout implements ebiten.Game.Layout
func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// ebitenKeys maps configuration key names to Ebitengine key codes
var ebitenKeys = map[string]ebiten.Key{
	"Up":           ebiten.KeyArrowUp,
	"Down":         ebiten.KeyArrowDown,
	"Left":         ebiten.KeyArrowLeft,
	"Right":        ebiten.KeyArrowRight,
	"Enter":        ebiten.KeyEnter,
	"Space":        ebiten.KeySpace,
	"Tab":          ebiten.KeyTab,
	"Backspace":    ebiten.KeyBackspace,
	"ShiftLeft":    ebiten.KeyShiftLeft,
	"ShiftRight":   ebiten.KeyShiftRight,
	"ControlLeft":  ebiten.KeyControlLeft,
	"ControlRight": ebiten.KeyControlRight,
	"AltLeft":      ebiten.KeyAltLeft,
	"AltRight":     ebiten.KeyAltRight,
	"A":            ebiten.KeyA,
	"B":            ebiten.KeyB,
	"C":            ebiten.KeyC,
	"D":            ebiten.KeyD,
	"E":            ebiten.KeyE,
	"F":            ebiten.KeyF,
	"G":            ebiten.KeyG,
	"H":            ebiten.KeyH,
	"I":            ebiten.KeyI,
	"J":            ebiten.KeyJ,
	"K":            ebiten.KeyK,
	"L":            ebiten.KeyL,
	"M":            ebiten.KeyM,
	"N":            ebiten.KeyN,
	"O":            ebiten.KeyO,
	"P":            ebiten.KeyP,
	"Q":            ebiten.KeyQ,
	"R":            ebiten.KeyR,
	"S":            ebiten.KeyS,
	"T":            ebiten.KeyT,
	"U":            ebiten.KeyU,
	"V":            ebiten.KeyV,
	"W":            ebiten.KeyW,
	"X":            ebiten.KeyX,
	"Y":            ebiten.KeyY,
	"Z":            ebiten.KeyZ,
	"0":            ebiten.KeyDigit0,
	"1":            ebiten.KeyDigit1,
	"2":            ebiten.KeyDigit2,
	"3":            ebiten.KeyDigit3,
	"4":            ebiten.KeyDigit4,
	"5":            ebiten.KeyDigit5,
	"6":            ebiten.KeyDigit6,
	"7":            ebiten.KeyDigit7,
	"8":            ebiten.KeyDigit8,
	"9":            ebiten.KeyDigit9,
}
