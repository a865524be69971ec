package app

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"cyclenes/internal/bus"
)

// maxFrameLag is how far the loop may fall behind the wall clock before it
// stops trying to catch up
const maxFrameLag = 5

// Emulator manages the emulation loop and timing
type Emulator struct {
	bus    *bus.Bus
	config *Config

	targetFrameTime time.Duration
	paced           bool

	running          bool
	frameCount       uint64
	startTime        time.Time
	lastFrameTime    time.Duration
	averageFrameTime time.Duration
	droppedDeadlines uint64

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewEmulator creates a new emulator paced at the configured frame rate
func NewEmulator(bus *bus.Bus, config *Config) *Emulator {
	rate := config.Emulation.FrameRate
	if rate <= 0 {
		rate = NTSCFrameRate
	}
	return &Emulator{
		bus:             bus,
		config:          config,
		targetFrameTime: time.Duration(float64(time.Second) / rate),
		paced:           true,
		now:             time.Now,
		sleep:           sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Start starts the emulator
func (e *Emulator) Start() {
	e.running = true
	e.startTime = e.now()
}

// Stop stops the emulator
func (e *Emulator) Stop() {
	e.running = false
}

// IsRunning returns true while frames are being produced
func (e *Emulator) IsRunning() bool {
	return e.running
}

// SetPaced enables or disables wall-clock pacing in Run
func (e *Emulator) SetPaced(paced bool) {
	e.paced = paced
}

// Update runs exactly one frame of emulation if the emulator is running
func (e *Emulator) Update() error {
	if !e.running {
		return nil
	}
	return e.StepFrame()
}

// StepFrame runs one frame regardless of the running state
func (e *Emulator) StepFrame() error {
	if e.bus.Cartridge() == nil {
		return fmt.Errorf("no cartridge loaded")
	}

	start := e.now()
	e.bus.RunFrame()
	e.frameCount++

	e.lastFrameTime = e.now().Sub(start)
	if e.averageFrameTime == 0 {
		e.averageFrameTime = e.lastFrameTime
	} else {
		e.averageFrameTime = time.Duration(float64(e.averageFrameTime)*0.95 + float64(e.lastFrameTime)*0.05)
	}
	return nil
}

// Run produces frames until ctx is cancelled, the emulator is stopped, or
// frames frames have run (frames <= 0 means no limit). afterFrame, if set,
// runs after each frame; a non-nil error ends the loop. When paced, each
// frame is released on a fixed wall-clock schedule.
func (e *Emulator) Run(ctx context.Context, frames int, afterFrame func() error) error {
	if !e.running {
		e.Start()
	}

	next := e.now()
	for n := 0; frames <= 0 || n < frames; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.running {
			return nil
		}

		if err := e.StepFrame(); err != nil {
			return err
		}
		if afterFrame != nil {
			if err := afterFrame(); err != nil {
				return err
			}
		}

		if !e.paced {
			continue
		}
		next = next.Add(e.targetFrameTime)
		wait := next.Sub(e.now())
		if wait < -maxFrameLag*e.targetFrameTime {
			e.droppedDeadlines++
			if glog.V(1) {
				glog.Infof("[EMULATOR] %v behind schedule, resynchronising", -wait)
			}
			next = e.now()
			continue
		}
		if err := e.sleep(ctx, wait); err != nil {
			return err
		}
	}
	return nil
}

// GetFrameCount returns the number of frames run since Start
func (e *Emulator) GetFrameCount() uint64 {
	return e.frameCount
}

// GetTargetFrameTime returns the wall-clock duration of one frame
func (e *Emulator) GetTargetFrameTime() time.Duration {
	return e.targetFrameTime
}

// GetAverageFrameTime returns the smoothed time spent emulating one frame
func (e *Emulator) GetAverageFrameTime() time.Duration {
	return e.averageFrameTime
}

// GetEmulationSpeed returns how many times faster than real time the core runs
func (e *Emulator) GetEmulationSpeed() float64 {
	if e.averageFrameTime == 0 {
		return 0
	}
	return float64(e.targetFrameTime) / float64(e.averageFrameTime)
}

// DroppedDeadlines returns how often pacing gave up catching up
func (e *Emulator) DroppedDeadlines() uint64 {
	return e.droppedDeadlines
}

// GetUptime returns the time since Start
func (e *Emulator) GetUptime() time.Duration {
	if e.startTime.IsZero() {
		return 0
	}
	return e.now().Sub(e.startTime)
}
