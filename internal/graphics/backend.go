// Package graphics provides an abstraction layer for different rendering backends
package graphics

import (
	"fmt"

	"cyclenes/internal/input"
	"cyclenes/internal/ppu"
)

// Backend represents a graphics rendering backend
type Backend interface {
	// Initialize initializes the graphics backend
	Initialize(config Config) error

	// CreateWindow creates a window for rendering
	CreateWindow(title string, width, height int) (Window, error)

	// Cleanup releases all resources
	Cleanup() error

	// IsHeadless returns true if running in headless mode
	IsHeadless() bool

	// GetName returns the backend name for identification
	GetName() string
}

// Window represents a rendering window
type Window interface {
	// SetTitle sets the window title
	SetTitle(title string)

	// GetSize returns window dimensions
	GetSize() (width, height int)

	// ShouldClose returns true if window should close
	ShouldClose() bool

	// PollEvents returns the special-key events seen since the last call
	PollEvents() []InputEvent

	// Buttons returns the controller state currently held for player 1 or 2
	Buttons(player int) input.Button

	// RenderFrame presents a completed PPU frame
	RenderFrame(frame *ppu.Frame) error

	// Cleanup releases window resources
	Cleanup() error
}

// Config contains configuration for graphics backends
type Config struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	VSync        bool
	Filter       string // "nearest", "linear"

	// Key names per controller button, indexed by player
	KeyMaps [2]KeyMap

	Headless bool
}

// InputEventType represents the type of input event
type InputEventType int

const (
	InputEventTypeQuit InputEventType = iota
	InputEventTypePause
	InputEventTypeReset
	InputEventTypeScreenshot
)

func (t InputEventType) String() string {
	switch t {
	case InputEventTypeQuit:
		return "quit"
	case InputEventTypePause:
		return "pause"
	case InputEventTypeReset:
		return "reset"
	case InputEventTypeScreenshot:
		return "screenshot"
	}
	return fmt.Sprintf("InputEventType(%d)", int(t))
}

// InputEvent represents a non-controller input event from the window
type InputEvent struct {
	Type InputEventType
}

// BackendType represents different graphics backend types
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
)

// CreateBackend creates a graphics backend of the specified type
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendEbitengine:
		return NewEbitengineBackend(), nil
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	default:
		return nil, fmt.Errorf("unknown graphics backend %q", backendType)
	}
}

// AsEbitengineWindow tries to cast a Window to EbitengineWindow
func AsEbitengineWindow(window Window) (*EbitengineWindow, bool) {
	ebitengineWindow, ok := window.(*EbitengineWindow)
	return ebitengineWindow, ok
}
