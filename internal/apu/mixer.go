package apu

import "math"

var (
	pulseTable [31]float32
	tndTable   [203]float32
)

func init() {
	for i := 1; i < len(pulseTable); i++ {
		pulseTable[i] = float32(95.52 / (8128.0/float64(i) + 100))
	}
	for i := 1; i < len(tndTable); i++ {
		tndTable[i] = float32(163.67 / (24329.0/float64(i) + 100))
	}
}

// mix combines the raw channel levels with the non-linear NES mixer
func mix(pulse1, pulse2, triangle, noise, dmc uint8) float32 {
	return pulseTable[pulse1+pulse2] + tndTable[3*int(triangle)+2*int(noise)+int(dmc)]
}

// filter is a first-order IIR filter
type filter struct {
	b0, b1, a1 float32
	prevX      float32
	prevY      float32
}

func newLowPass(sampleRate, cutoff float64) filter {
	c := sampleRate / math.Pi / cutoff
	a0i := 1 / (1 + c)
	return filter{
		b0: float32(a0i),
		b1: float32(a0i),
		a1: float32((1 - c) * a0i),
	}
}

func newHighPass(sampleRate, cutoff float64) filter {
	c := sampleRate / math.Pi / cutoff
	a0i := 1 / (1 + c)
	return filter{
		b0: float32(c * a0i),
		b1: float32(-c * a0i),
		a1: float32((1 - c) * a0i),
	}
}

func (f *filter) step(x float32) float32 {
	y := f.b0*x + f.b1*f.prevX - f.a1*f.prevY
	f.prevX = x
	f.prevY = y
	return y
}

func (f *filter) reset() {
	f.prevX = 0
	f.prevY = 0
}
