package apu

// noisePeriodTable holds NTSC timer periods in CPU cycles
var noisePeriodTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160,
	202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// NoiseChannel represents the noise channel
type NoiseChannel struct {
	shortMode     bool
	period        uint16
	timer         uint16
	shiftRegister uint16
	length        lengthCounter
	envelope      envelope
}

// writeControl handles $400C
func (n *NoiseChannel) writeControl(value uint8) {
	n.length.halt = value&0x20 != 0
	n.envelope.write(value)
}

// writePeriod handles $400E
func (n *NoiseChannel) writePeriod(value uint8) {
	n.shortMode = value&0x80 != 0
	n.period = noisePeriodTable[value&0x0F]
}

// writeLength handles $400F
func (n *NoiseChannel) writeLength(value uint8) {
	n.length.load(value)
	n.envelope.start = true
}

func (n *NoiseChannel) stepTimer() {
	if n.timer > 0 {
		n.timer--
		return
	}
	n.timer = n.period - 1

	tap := uint(1)
	if n.shortMode {
		tap = 6
	}
	feedback := (n.shiftRegister ^ (n.shiftRegister >> tap)) & 1
	n.shiftRegister = (n.shiftRegister >> 1) | feedback<<14
}

func (n *NoiseChannel) output() uint8 {
	if n.length.value == 0 || n.shiftRegister&1 != 0 {
		return 0
	}
	return n.envelope.output()
}
