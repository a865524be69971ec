package apu

var triangleTable = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// TriangleChannel represents the triangle wave channel
type TriangleChannel struct {
	period      uint16
	timer       uint16
	sequencePos uint8
	length      lengthCounter

	control       bool
	linearReload  bool
	linearLoad    uint8
	linearCounter uint8
}

// writeControl handles $4008
func (t *TriangleChannel) writeControl(value uint8) {
	t.control = value&0x80 != 0
	t.length.halt = t.control
	t.linearLoad = value & 0x7F
}

// writeTimerLow handles $400A
func (t *TriangleChannel) writeTimerLow(value uint8) {
	t.period = (t.period & 0x0700) | uint16(value)
}

// writeTimerHigh handles $400B
func (t *TriangleChannel) writeTimerHigh(value uint8) {
	t.period = (t.period & 0x00FF) | uint16(value&0x07)<<8
	t.length.load(value)
	t.linearReload = true
}

// stepTimer runs every CPU cycle. The sequence only moves while both
// counters are non-zero.
func (t *TriangleChannel) stepTimer() {
	if t.timer > 0 {
		t.timer--
		return
	}
	t.timer = t.period
	if t.length.value > 0 && t.linearCounter > 0 {
		t.sequencePos = (t.sequencePos + 1) & 0x1F
	}
}

func (t *TriangleChannel) clockLinear() {
	if t.linearReload {
		t.linearCounter = t.linearLoad
	} else if t.linearCounter > 0 {
		t.linearCounter--
	}
	if !t.control {
		t.linearReload = false
	}
}

func (t *TriangleChannel) output() uint8 {
	return triangleTable[t.sequencePos]
}
