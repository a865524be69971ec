package graphics

import (
	"fmt"

	"cyclenes/internal/input"
	"cyclenes/internal/ppu"
)

// HeadlessBackend implements the Backend interface for headless operation
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow implements the Window interface without a display. It keeps
// the last presented frame so it can be written out as a screenshot.
type HeadlessWindow struct {
	title      string
	width      int
	height     int
	running    bool
	frameCount int
	lastFrame  ppu.Frame
	buttons    [2]input.Button
	events     []InputEvent
}

// NewHeadlessBackend creates a new headless graphics backend
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

// Initialize initializes the headless backend
func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates a headless "window" (no actual window)
func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	return &HeadlessWindow{
		title:   title,
		width:   width,
		height:  height,
		running: true,
	}, nil
}

// Cleanup releases all headless resources
func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true (this is a headless backend)
func (b *HeadlessBackend) IsHeadless() bool {
	return true
}

// GetName returns the backend name
func (b *HeadlessBackend) GetName() string {
	return "Headless"
}

// SetTitle sets the window title
func (w *HeadlessWindow) SetTitle(title string) {
	w.title = title
}

// Title returns the current title
func (w *HeadlessWindow) Title() string {
	return w.title
}

// GetSize returns window dimensions
func (w *HeadlessWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *HeadlessWindow) ShouldClose() bool {
	return !w.running
}

// PollEvents returns the queued events
func (w *HeadlessWindow) PollEvents() []InputEvent {
	events := w.events
	w.events = nil
	return events
}

// PushEvent queues an event for the next PollEvents
func (w *HeadlessWindow) PushEvent(event InputEvent) {
	w.events = append(w.events, event)
}

// Buttons returns the scripted controller state
func (w *HeadlessWindow) Buttons(player int) input.Button {
	if player < 1 || player > 2 {
		return 0
	}
	return w.buttons[player-1]
}

// SetButtons scripts the controller state for player 1 or 2
func (w *HeadlessWindow) SetButtons(player int, buttons input.Button) {
	if player >= 1 && player <= 2 {
		w.buttons[player-1] = buttons
	}
}

// RenderFrame records the frame
func (w *HeadlessWindow) RenderFrame(frame *ppu.Frame) error {
	w.frameCount++
	w.lastFrame = *frame
	return nil
}

// LastFrame returns the most recently presented frame
func (w *HeadlessWindow) LastFrame() *ppu.Frame {
	return &w.lastFrame
}

// Cleanup releases window resources
func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// GetFrameCount returns the number of frames presented
func (w *HeadlessWindow) GetFrameCount() int {
	return w.frameCount
}
