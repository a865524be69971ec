//go:build headless

package audio

import "errors"

// ErrNoAudioDevice is returned when the binary is built without audio output
var ErrNoAudioDevice = errors.New("audio output not available in headless build")

// Player is unavailable in headless builds
type Player struct {
	ring *RingBuffer
}

// NewPlayer always fails in headless builds
func NewPlayer(sampleRate, bufferSize int, volume float64) (*Player, error) {
	return nil, ErrNoAudioDevice
}

// WriteSample implements the APU sample sink
func (p *Player) WriteSample(sample float32) error {
	return p.ring.WriteSample(sample)
}

// Buffer returns the ring buffer
func (p *Player) Buffer() *RingBuffer {
	return p.ring
}

// Close is a no-op
func (p *Player) Close() error {
	return nil
}
