// Package apu implements the Audio Processing Unit for the NES.
package apu

import (
	"github.com/golang/glog"
)

const (
	// CPUFrequency is the NTSC CPU clock in Hz
	CPUFrequency = 1789773.0

	DefaultSampleRate = 44100

	maxBufferedSamples = 1 << 16
)

// IRQSource identifies which APU unit drives an IRQ line
type IRQSource int

const (
	IRQFrame IRQSource = iota
	IRQDMC
)

// SampleSink receives mixed output samples at the configured rate
type SampleSink interface {
	WriteSample(sample float32) error
}

// APU represents the NES Audio Processing Unit
type APU struct {
	pulse1   PulseChannel
	pulse2   PulseChannel
	triangle TriangleChannel
	noise    NoiseChannel
	dmc      DMCChannel
	frame    frameSequencer

	frameIRQ bool

	// Output
	sampleRate       int
	sampleClock      float64
	sampleSum        float64
	sampleCount      int
	lowPass          filter
	highPass         filter
	sink             SampleSink
	sampleBuffer     []float32
	droppedSamples   uint64
	lastSinkErrorLog uint64

	irqCallback func(IRQSource, bool)

	cycles uint64
}

// New creates a new APU instance
func New() *APU {
	apu := &APU{
		sampleBuffer: make([]float32, 0, 4096),
	}
	apu.SetSampleRate(DefaultSampleRate)
	apu.Reset()
	return apu
}

// Reset resets the APU to its power-up state
func (apu *APU) Reset() {
	apu.pulse1 = PulseChannel{onesComplement: true}
	apu.pulse2 = PulseChannel{}
	apu.triangle = TriangleChannel{}
	apu.noise = NoiseChannel{shiftRegister: 1, period: noisePeriodTable[0]}
	apu.dmc.reset()
	apu.frame = frameSequencer{}
	apu.frameIRQ = false
	apu.cycles = 0
	apu.sampleClock = 0
	apu.sampleSum = 0
	apu.sampleCount = 0
	apu.lowPass.reset()
	apu.highPass.reset()
	apu.sampleBuffer = apu.sampleBuffer[:0]
}

// SetSampleRate sets the output sample rate in Hz
func (apu *APU) SetSampleRate(rate int) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	apu.sampleRate = rate
	apu.lowPass = newLowPass(float64(rate), 14000)
	apu.highPass = newHighPass(float64(rate), 90)
}

// GetSampleRate returns the output sample rate
func (apu *APU) GetSampleRate() int {
	return apu.sampleRate
}

// SetSampleSink sets where output samples go. With no sink they are
// buffered and drained with Samples.
func (apu *APU) SetSampleSink(sink SampleSink) {
	apu.sink = sink
}

// SetIRQCallback sets the function told about frame and DMC IRQ levels
func (apu *APU) SetIRQCallback(callback func(IRQSource, bool)) {
	apu.irqCallback = callback
}

// Step advances the APU by one CPU cycle
func (apu *APU) Step() {
	apu.stepFrameSequencer()

	// Pulse timers run at half the CPU clock
	if apu.cycles&1 == 1 {
		apu.pulse1.stepTimer()
		apu.pulse2.stepTimer()
	}
	apu.triangle.stepTimer()
	apu.noise.stepTimer()
	apu.dmc.stepTimer()

	apu.cycles++
	apu.generateSample()
}

// Cycles returns the number of CPU cycles the APU has run
func (apu *APU) Cycles() uint64 {
	return apu.cycles
}

func (apu *APU) clockQuarterFrame() {
	apu.pulse1.envelope.clock()
	apu.pulse2.envelope.clock()
	apu.noise.envelope.clock()
	apu.triangle.clockLinear()
}

func (apu *APU) clockHalfFrame() {
	apu.pulse1.length.clock()
	apu.pulse1.clockSweep()
	apu.pulse2.length.clock()
	apu.pulse2.clockSweep()
	apu.triangle.length.clock()
	apu.noise.length.clock()
}

func (apu *APU) setFrameIRQ(level bool) {
	if apu.frameIRQ == level {
		return
	}
	apu.frameIRQ = level
	apu.signalIRQ(IRQFrame, level)
}

func (apu *APU) setDMCIRQ(level bool) {
	if apu.dmc.irqFlag == level {
		return
	}
	apu.dmc.irqFlag = level
	apu.signalIRQ(IRQDMC, level)
}

func (apu *APU) signalIRQ(source IRQSource, level bool) {
	if apu.irqCallback != nil {
		apu.irqCallback(source, level)
	}
}

// WriteRegister writes to an APU register ($4000-$4013, $4015, $4017)
func (apu *APU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0x4000:
		apu.pulse1.writeControl(value)
	case 0x4001:
		apu.pulse1.writeSweep(value)
	case 0x4002:
		apu.pulse1.writeTimerLow(value)
	case 0x4003:
		apu.pulse1.writeTimerHigh(value)
	case 0x4004:
		apu.pulse2.writeControl(value)
	case 0x4005:
		apu.pulse2.writeSweep(value)
	case 0x4006:
		apu.pulse2.writeTimerLow(value)
	case 0x4007:
		apu.pulse2.writeTimerHigh(value)
	case 0x4008:
		apu.triangle.writeControl(value)
	case 0x400A:
		apu.triangle.writeTimerLow(value)
	case 0x400B:
		apu.triangle.writeTimerHigh(value)
	case 0x400C:
		apu.noise.writeControl(value)
	case 0x400E:
		apu.noise.writePeriod(value)
	case 0x400F:
		apu.noise.writeLength(value)
	case 0x4010:
		apu.dmc.writeControl(value)
		if !apu.dmc.irqEnabled {
			apu.setDMCIRQ(false)
		}
	case 0x4011:
		apu.dmc.level = value & 0x7F
	case 0x4012:
		apu.dmc.sampleAddress = value
	case 0x4013:
		apu.dmc.sampleLength = value
	case 0x4015:
		apu.writeChannelEnable(value)
	case 0x4017:
		apu.writeFrameCounter(value)
	}
}

func (apu *APU) writeChannelEnable(value uint8) {
	apu.pulse1.length.setEnabled(value&0x01 != 0)
	apu.pulse2.length.setEnabled(value&0x02 != 0)
	apu.triangle.length.setEnabled(value&0x04 != 0)
	apu.noise.length.setEnabled(value&0x08 != 0)

	apu.setDMCIRQ(false)
	if value&0x10 == 0 {
		apu.dmc.bytesRemaining = 0
	} else if apu.dmc.bytesRemaining == 0 {
		apu.dmc.restart()
	}
}

// ReadStatus reads the APU status register ($4015). Reading clears the
// frame IRQ flag but not the DMC one.
func (apu *APU) ReadStatus() uint8 {
	var status uint8
	if apu.pulse1.length.value > 0 {
		status |= 0x01
	}
	if apu.pulse2.length.value > 0 {
		status |= 0x02
	}
	if apu.triangle.length.value > 0 {
		status |= 0x04
	}
	if apu.noise.length.value > 0 {
		status |= 0x08
	}
	if apu.dmc.bytesRemaining > 0 {
		status |= 0x10
	}
	if apu.frameIRQ {
		status |= 0x40
	}
	if apu.dmc.irqFlag {
		status |= 0x80
	}

	apu.setFrameIRQ(false)
	return status
}

// DMCRequest reports whether the DMC needs a sample byte and from where
func (apu *APU) DMCRequest() (uint16, bool) {
	return apu.dmc.currentAddress, apu.dmc.needsDMA()
}

// DMCFill delivers the byte fetched by DMC DMA
func (apu *APU) DMCFill(value uint8) {
	if apu.dmc.fill(value) {
		apu.setDMCIRQ(true)
	}
}

// GetFrameIRQ returns the frame sequencer IRQ flag
func (apu *APU) GetFrameIRQ() bool {
	return apu.frameIRQ
}

// GetDMCIRQ returns the DMC IRQ flag
func (apu *APU) GetDMCIRQ() bool {
	return apu.dmc.irqFlag
}

func (apu *APU) generateSample() {
	apu.sampleSum += float64(apu.output())
	apu.sampleCount++

	apu.sampleClock += float64(apu.sampleRate)
	if apu.sampleClock < CPUFrequency {
		return
	}
	apu.sampleClock -= CPUFrequency

	// Averaging the cycles since the last sample is the decimation step
	sample := float32(apu.sampleSum / float64(apu.sampleCount))
	apu.sampleSum = 0
	apu.sampleCount = 0
	sample = apu.highPass.step(apu.lowPass.step(sample))
	apu.emit(sample)
}

func (apu *APU) emit(sample float32) {
	if apu.sink != nil {
		if err := apu.sink.WriteSample(sample); err != nil {
			apu.droppedSamples++
			if apu.droppedSamples-apu.lastSinkErrorLog >= uint64(apu.sampleRate) || apu.lastSinkErrorLog == 0 {
				apu.lastSinkErrorLog = apu.droppedSamples
				glog.Warningf("[APU] sample sink rejected sample (%d dropped): %v", apu.droppedSamples, err)
			}
		}
		return
	}
	if len(apu.sampleBuffer) >= maxBufferedSamples {
		apu.droppedSamples++
		return
	}
	apu.sampleBuffer = append(apu.sampleBuffer, sample)
}

// Samples returns and clears the internally buffered samples
func (apu *APU) Samples() []float32 {
	samples := make([]float32, len(apu.sampleBuffer))
	copy(samples, apu.sampleBuffer)
	apu.sampleBuffer = apu.sampleBuffer[:0]
	return samples
}

// DroppedSamples returns how many samples could not be delivered
func (apu *APU) DroppedSamples() uint64 {
	return apu.droppedSamples
}

// GetChannelOutput returns the current raw output of a channel
// (0 pulse 1, 1 pulse 2, 2 triangle, 3 noise, 4 DMC).
func (apu *APU) GetChannelOutput(channel int) uint8 {
	switch channel {
	case 0:
		return apu.pulse1.output()
	case 1:
		return apu.pulse2.output()
	case 2:
		return apu.triangle.output()
	case 3:
		return apu.noise.output()
	case 4:
		return apu.dmc.level
	}
	return 0
}

func (apu *APU) output() float32 {
	return mix(apu.pulse1.output(), apu.pulse2.output(), apu.triangle.output(), apu.noise.output(), apu.dmc.level)
}
