package apu

// dmcRateTable holds NTSC output periods in CPU cycles
var dmcRateTable = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214,
	190, 160, 142, 128, 106, 84, 72, 54,
}

// DMCChannel represents the Delta Modulation Channel
type DMCChannel struct {
	irqEnabled bool
	irqFlag    bool
	loop       bool
	period     uint16
	timer      uint16
	level      uint8

	// Register values
	sampleAddress uint8
	sampleLength  uint8

	currentAddress uint16
	bytesRemaining uint16

	buffer      uint8
	bufferEmpty bool

	shift         uint8
	bitsRemaining uint8
	silence       bool
}

func (d *DMCChannel) reset() {
	*d = DMCChannel{
		period:        dmcRateTable[0],
		bufferEmpty:   true,
		bitsRemaining: 8,
		silence:       true,
	}
}

// writeControl handles $4010
func (d *DMCChannel) writeControl(value uint8) {
	d.irqEnabled = value&0x80 != 0
	d.loop = value&0x40 != 0
	d.period = dmcRateTable[value&0x0F]
}

// restart begins playback from the sample start
func (d *DMCChannel) restart() {
	d.currentAddress = 0xC000 | uint16(d.sampleAddress)<<6
	d.bytesRemaining = uint16(d.sampleLength)<<4 | 1
}

func (d *DMCChannel) needsDMA() bool {
	return d.bufferEmpty && d.bytesRemaining > 0
}

// fill stores a fetched sample byte. It reports whether the sample ended
// and should raise IRQ.
func (d *DMCChannel) fill(value uint8) bool {
	d.buffer = value
	d.bufferEmpty = false

	if d.currentAddress == 0xFFFF {
		d.currentAddress = 0x8000
	} else {
		d.currentAddress++
	}

	d.bytesRemaining--
	if d.bytesRemaining > 0 {
		return false
	}
	if d.loop {
		d.restart()
		return false
	}
	return d.irqEnabled
}

func (d *DMCChannel) stepTimer() {
	if d.timer > 0 {
		d.timer--
		return
	}
	d.timer = d.period - 1
	d.clockOutput()
}

func (d *DMCChannel) clockOutput() {
	if !d.silence {
		if d.shift&1 != 0 {
			if d.level <= 125 {
				d.level += 2
			}
		} else if d.level >= 2 {
			d.level -= 2
		}
	}
	d.shift >>= 1

	d.bitsRemaining--
	if d.bitsRemaining > 0 {
		return
	}
	d.bitsRemaining = 8
	if d.bufferEmpty {
		d.silence = true
		return
	}
	d.silence = false
	d.shift = d.buffer
	d.bufferEmpty = true
}
