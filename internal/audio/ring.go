// Package audio provides sample sinks for the APU output
package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"
)

// ErrBufferFull is returned by WriteSample when the consumer has fallen behind
var ErrBufferFull = errors.New("audio buffer full")

// RingBuffer is a fixed-size sample queue shared between the emulation
// goroutine (producer) and the audio device goroutine (consumer).
// Read renders the queued samples as 16-bit little-endian stereo PCM.
type RingBuffer struct {
	mu        sync.Mutex
	samples   []float32
	head      int
	count     int
	volume    float32
	underruns uint64
}

// NewRingBuffer creates a ring buffer holding up to capacity samples
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingBuffer{
		samples: make([]float32, capacity),
		volume:  1.0,
	}
}

// SetVolume sets the linear gain applied when rendering PCM (0.0 - 1.0)
func (r *RingBuffer) SetVolume(volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volume = float32(math.Max(0, math.Min(1, volume)))
}

// WriteSample queues one sample; it implements apu.SampleSink
func (r *RingBuffer) WriteSample(sample float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count == len(r.samples) {
		return ErrBufferFull
	}
	r.samples[(r.head+r.count)%len(r.samples)] = sample
	r.count++
	return nil
}

// Len returns the number of queued samples
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the buffer capacity in samples
func (r *RingBuffer) Cap() int {
	return len(r.samples)
}

// Underruns returns how many output frames were padded with silence
func (r *RingBuffer) Underruns() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.underruns
}

// Pop removes and returns the oldest sample
func (r *RingBuffer) Pop() (float32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pop()
}

func (r *RingBuffer) pop() (float32, bool) {
	if r.count == 0 {
		return 0, false
	}
	sample := r.samples[r.head]
	r.head = (r.head + 1) % len(r.samples)
	r.count--
	return sample, true
}

// Read fills p with interleaved stereo int16 frames. It never blocks:
// when the queue runs dry the remainder is silence.
func (r *RingBuffer) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(p) &^ 3
	underrun := false
	for i := 0; i < n; i += 4 {
		sample, ok := r.pop()
		if !ok {
			underrun = true
		}
		v := toPCM16(sample * r.volume)
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
		binary.LittleEndian.PutUint16(p[i+2:], uint16(v))
	}
	if underrun {
		r.underruns++
	}
	return n, nil
}

// Reset drops all queued samples
func (r *RingBuffer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = 0
	r.count = 0
}

func toPCM16(sample float32) int16 {
	if sample > 1 {
		sample = 1
	} else if sample < -1 {
		sample = -1
	}
	return int16(sample * math.MaxInt16)
}
