package apu

// frameEvent is one point of the frame sequencer, in CPU cycles since the
// sequence started.
type frameEvent struct {
	cycle   uint32
	quarter bool
	half    bool
	irq     bool
}

var fourStepSequence = []frameEvent{
	{cycle: 7457, quarter: true},
	{cycle: 14913, quarter: true, half: true},
	{cycle: 22371, quarter: true},
	{cycle: 29828, irq: true},
	{cycle: 29829, quarter: true, half: true, irq: true},
	{cycle: 29830, irq: true},
}

var fiveStepSequence = []frameEvent{
	{cycle: 7457, quarter: true},
	{cycle: 14913, quarter: true, half: true},
	{cycle: 22371, quarter: true},
	{cycle: 37281, quarter: true, half: true},
	{cycle: 37282},
}

type frameSequencer struct {
	fiveStep   bool
	irqInhibit bool
	elapsed    uint32
	step       int

	// A $4017 write restarts the sequence a few cycles later
	pendingMode bool
	resetDelay  int
}

func (f *frameSequencer) sequence() []frameEvent {
	if f.fiveStep {
		return fiveStepSequence
	}
	return fourStepSequence
}

// stepFrameSequencer advances the frame sequencer by one CPU cycle
func (apu *APU) stepFrameSequencer() {
	f := &apu.frame

	if f.resetDelay > 0 {
		f.resetDelay--
		if f.resetDelay == 0 {
			f.fiveStep = f.pendingMode
			f.elapsed = 0
			f.step = 0
			if f.fiveStep {
				apu.clockQuarterFrame()
				apu.clockHalfFrame()
			}
			return
		}
	}

	f.elapsed++
	events := f.sequence()
	event := events[f.step]
	if f.elapsed != event.cycle {
		return
	}

	if event.quarter {
		apu.clockQuarterFrame()
	}
	if event.half {
		apu.clockHalfFrame()
	}
	if event.irq && !f.irqInhibit {
		apu.setFrameIRQ(true)
	}

	f.step++
	if f.step == len(events) {
		f.step = 0
		f.elapsed = 0
	}
}

// writeFrameCounter handles $4017. The IRQ inhibit bit applies at once;
// the mode change and sequence restart wait 3 or 4 cycles depending on
// whether the write landed on an even or odd cycle.
func (apu *APU) writeFrameCounter(value uint8) {
	f := &apu.frame
	f.pendingMode = value&0x80 != 0
	f.irqInhibit = value&0x40 != 0
	if f.irqInhibit {
		apu.setFrameIRQ(false)
	}

	if apu.cycles&1 == 0 {
		f.resetDelay = 3
	} else {
		f.resetDelay = 4
	}
}
