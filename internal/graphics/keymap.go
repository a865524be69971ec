package graphics

import (
	"fmt"

	"cyclenes/internal/input"
)

// KeyMap maps a controller button name ("a", "b", "select", "start", "up",
// "down", "left", "right") to a keyboard key name
type KeyMap map[string]string

var buttonNames = map[string]input.Button{
	"a":      input.ButtonA,
	"b":      input.ButtonB,
	"select": input.ButtonSelect,
	"start":  input.ButtonStart,
	"up":     input.ButtonUp,
	"down":   input.ButtonDown,
	"left":   input.ButtonLeft,
	"right":  input.ButtonRight,
}

// DefaultKeyMaps returns the default bindings for both players
func DefaultKeyMaps() [2]KeyMap {
	return [2]KeyMap{
		{
			"a": "J", "b": "K", "select": "Space", "start": "Enter",
			"up": "W", "down": "S", "left": "A", "right": "D",
		},
		{
			"a": "5", "b": "6", "select": "8", "start": "7",
			"up": "1", "down": "2", "left": "3", "right": "4",
		},
	}
}

// binding is a resolved key name to button pair
type binding struct {
	key    string
	button input.Button
}

// resolve validates the map against the set of known key names and returns
// the bindings sorted by button bit.
func (m KeyMap) resolve(known func(string) bool) ([]binding, error) {
	var out []binding
	for _, name := range []string{"a", "b", "select", "start", "up", "down", "left", "right"} {
		key, ok := m[name]
		if !ok || key == "" {
			continue
		}
		if !known(key) {
			return nil, fmt.Errorf("unknown key %q for button %s", key, name)
		}
		out = append(out, binding{key: key, button: buttonNames[name]})
	}
	for name := range m {
		if _, ok := buttonNames[name]; !ok {
			return nil, fmt.Errorf("unknown controller button %q", name)
		}
	}
	return out, nil
}

// Validate checks the button names and key names
func (m KeyMap) Validate() error {
	_, err := m.resolve(IsKnownKey)
	return err
}

// IsKnownKey reports whether name is a key the window backends understand
func IsKnownKey(name string) bool {
	_, ok := knownKeys[name]
	return ok
}

// KeyNames lists the key names accepted in configuration
var KeyNames = func() []string {
	names := []string{
		"Up", "Down", "Left", "Right", "Enter", "Space", "Tab", "Backspace",
		"ShiftLeft", "ShiftRight", "ControlLeft", "ControlRight", "AltLeft", "AltRight",
	}
	for c := 'A'; c <= 'Z'; c++ {
		names = append(names, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		names = append(names, string(c))
	}
	return names
}()

var knownKeys = func() map[string]struct{} {
	m := make(map[string]struct{}, len(KeyNames))
	for _, n := range KeyNames {
		m[n] = struct{}{}
	}
	return m
}()

// pressedButtons folds the bindings whose key isDown reports as held
func pressedButtons(bindings []binding, isDown func(string) bool) input.Button {
	var buttons input.Button
	for _, b := range bindings {
		if isDown(b.key) {
			buttons |= b.button
		}
	}
	return buttons
}
