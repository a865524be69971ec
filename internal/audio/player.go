//go:build !headless

package audio

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Player streams a RingBuffer to the host audio device
type Player struct {
	context *ebitenaudio.Context
	player  *ebitenaudio.Player
	ring    *RingBuffer
}

// NewPlayer opens the audio device at sampleRate. bufferSize is the ring
// capacity in samples and also sets the device buffer latency.
func NewPlayer(sampleRate, bufferSize int, volume float64) (*Player, error) {
	ctx := ebitenaudio.CurrentContext()
	if ctx == nil {
		ctx = ebitenaudio.NewContext(sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		return nil, fmt.Errorf("audio context already running at %d Hz", ctx.SampleRate())
	}

	ring := NewRingBuffer(bufferSize)
	ring.SetVolume(volume)

	player, err := ctx.NewPlayer(ring)
	if err != nil {
		return nil, fmt.Errorf("create audio player: %w", err)
	}
	player.SetBufferSize(time.Duration(bufferSize) * time.Second / time.Duration(sampleRate))
	player.Play()

	glog.Infof("[AUDIO] player started at %d Hz, %d sample buffer", sampleRate, bufferSize)
	return &Player{context: ctx, player: player, ring: ring}, nil
}

// WriteSample implements the APU sample sink
func (p *Player) WriteSample(sample float32) error {
	return p.ring.WriteSample(sample)
}

// Buffer returns the ring buffer feeding the device
func (p *Player) Buffer() *RingBuffer {
	return p.ring
}

// Close stops playback
func (p *Player) Close() error {
	if glog.V(1) && p.ring.Underruns() > 0 {
		glog.Infof("[AUDIO] %d underruns", p.ring.Underruns())
	}
	return p.player.Close()
}
