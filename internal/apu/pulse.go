package apu

var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0}, // 12.5%
	{0, 1, 1, 0, 0, 0, 0, 0}, // 25%
	{0, 1, 1, 1, 1, 0, 0, 0}, // 50%
	{1, 0, 0, 1, 1, 1, 1, 1}, // 25% negated
}

// PulseChannel represents a pulse wave channel
type PulseChannel struct {
	duty     uint8
	dutyPos  uint8
	period   uint16
	timer    uint16
	length   lengthCounter
	envelope envelope

	sweepEnabled bool
	sweepNegate  bool
	sweepReload  bool
	sweepPeriod  uint8
	sweepShift   uint8
	sweepDivider uint8

	// Pulse 1 negates with one's complement
	onesComplement bool
}

// writeControl handles $4000/$4004
func (p *PulseChannel) writeControl(value uint8) {
	p.duty = value >> 6
	p.length.halt = value&0x20 != 0
	p.envelope.write(value)
}

// writeSweep handles $4001/$4005
func (p *PulseChannel) writeSweep(value uint8) {
	p.sweepEnabled = value&0x80 != 0
	p.sweepPeriod = (value >> 4) & 0x07
	p.sweepNegate = value&0x08 != 0
	p.sweepShift = value & 0x07
	p.sweepReload = true
}

// writeTimerLow handles $4002/$4006
func (p *PulseChannel) writeTimerLow(value uint8) {
	p.period = (p.period & 0x0700) | uint16(value)
}

// writeTimerHigh handles $4003/$4007
func (p *PulseChannel) writeTimerHigh(value uint8) {
	p.period = (p.period & 0x00FF) | uint16(value&0x07)<<8
	p.length.load(value)
	p.envelope.start = true
	p.dutyPos = 0
}

func (p *PulseChannel) stepTimer() {
	if p.timer == 0 {
		p.timer = p.period
		p.dutyPos = (p.dutyPos + 1) & 0x07
	} else {
		p.timer--
	}
}

// sweepTarget is the period the sweep unit would move to
func (p *PulseChannel) sweepTarget() int {
	change := int(p.period >> p.sweepShift)
	target := int(p.period)
	if p.sweepNegate {
		target -= change
		if p.onesComplement {
			target--
		}
	} else {
		target += change
	}
	return target
}

// muted is evaluated continuously, whether or not the sweep is enabled
func (p *PulseChannel) muted() bool {
	return p.period < 8 || p.sweepTarget() > 0x7FF
}

func (p *PulseChannel) clockSweep() {
	if p.sweepDivider == 0 && p.sweepEnabled && p.sweepShift > 0 && !p.muted() {
		target := p.sweepTarget()
		if target < 0 {
			target = 0
		}
		p.period = uint16(target)
	}
	if p.sweepDivider == 0 || p.sweepReload {
		p.sweepDivider = p.sweepPeriod
		p.sweepReload = false
	} else {
		p.sweepDivider--
	}
}

func (p *PulseChannel) output() uint8 {
	if p.length.value == 0 || p.muted() || dutyTable[p.duty][p.dutyPos] == 0 {
		return 0
	}
	return p.envelope.output()
}
