// Package input implements controller handling for the NES.
package input

import (
	"github.com/golang/glog"
)

// Button represents NES controller buttons, in the order the shift
// register reports them.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

var buttonNames = [8]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

// String returns the names of the pressed buttons
func (b Button) String() string {
	if b == 0 {
		return "none"
	}
	s := ""
	for i, name := range buttonNames {
		if b&(1<<i) == 0 {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += name
	}
	return s
}

// Controller represents a standard NES controller
type Controller struct {
	buttons       Button
	shiftRegister uint8
	strobe        bool
	bitPosition   uint8
}

// New creates a new Controller instance
func New() *Controller {
	return &Controller{}
}

// SetButton sets the state of a single button
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= button
	} else {
		c.buttons &^= button
	}
	if c.strobe {
		c.reload()
	}
}

// SetButtons replaces the state of every button
func (c *Controller) SetButtons(buttons Button) {
	c.buttons = buttons
	if c.strobe {
		c.reload()
	}
}

// Buttons returns the currently pressed buttons
func (c *Controller) Buttons() Button {
	return c.buttons
}

// IsPressed returns true if the button is currently pressed
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&button != 0
}

func (c *Controller) reload() {
	c.shiftRegister = uint8(c.buttons)
	c.bitPosition = 0
}

// Write handles the strobe bit written to $4016. While strobe is high the
// shift register keeps reloading; the falling edge latches the buttons.
func (c *Controller) Write(value uint8) {
	c.strobe = value&1 != 0
	if c.strobe {
		c.reload()
	}
}

// Read returns the next button bit. After all eight buttons have been
// shifted out the controller reports 1.
func (c *Controller) Read() uint8 {
	if c.strobe {
		c.reload()
		return uint8(c.buttons & ButtonA)
	}
	if c.bitPosition >= 8 {
		return 1
	}
	result := c.shiftRegister & 1
	c.shiftRegister >>= 1
	c.bitPosition++
	return result
}

// Reset resets the controller state
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
	c.bitPosition = 0
}

// InputState represents the two controller ports
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates a new input state with two controllers
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// Reset resets all input devices
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// Controller returns the controller for player 1 or 2
func (is *InputState) Controller(player int) *Controller {
	if player == 2 {
		return is.Controller2
	}
	return is.Controller1
}

// Read reads the serial data bit of a controller port. The upper bits are
// open bus and are filled in by the caller.
func (is *InputState) Read(address uint16) uint8 {
	var result uint8
	switch address {
	case 0x4016:
		result = is.Controller1.Read()
	case 0x4017:
		result = is.Controller2.Read()
	}
	if glog.V(3) {
		glog.Infof("[INPUT] $%04X read: %d", address, result)
	}
	return result
}

// Write handles $4016; the strobe line is shared by both ports.
func (is *InputState) Write(address uint16, value uint8) {
	if address != 0x4016 {
		return
	}
	if glog.V(3) {
		glog.Infof("[INPUT] strobe=%t", value&1 != 0)
	}
	is.Controller1.Write(value)
	is.Controller2.Write(value)
}
