package cartridge

import (
	"github.com/golang/glog"

	"cyclenes/internal/memory"
)

// mmc1 implements mapper 1. Registers are loaded one bit at a time through
// a 5-bit serial port at $8000-$FFFF; the fifth write commits the value to
// the register selected by address bits 13 and 14.
type mmc1 struct {
	baseMapper
	prg16 banks
	prg32 banks
	chr4  banks
	chr8  banks

	shift      uint8
	shiftCount int

	control uint8
	chr0    uint8
	chr1    uint8
	prgBank uint8

	// Writes on consecutive CPU cycles (the two writes of a read-modify-
	// write instruction) only see the first one.
	cycle     uint64
	lastWrite uint64
	written   bool
}

func newMMC1(cart *Cartridge) *mmc1 {
	m := &mmc1{
		baseMapper: baseMapper{cart: cart},
		prg16:      banks{data: cart.prgROM, size: 0x4000},
		prg32:      banks{data: cart.prgROM, size: 0x8000},
		chr4:       banks{data: cart.chr, size: 0x1000},
		chr8:       banks{data: cart.chr, size: 0x2000},
	}
	m.Reset()
	return m
}

func (m *mmc1) Reset() {
	m.shift = 0
	m.shiftCount = 0
	m.control = 0x0C
	m.chr0 = 0
	m.chr1 = 0
	m.prgBank = 0
	m.written = false
}

func (m *mmc1) Tick() {
	m.cycle++
}

// ramEnabled reports whether PRG RAM is mapped; bit 4 of the PRG bank
// register disables it.
func (m *mmc1) ramEnabled() bool {
	return m.prgBank&0x10 == 0
}

func (m *mmc1) ReadPRG(address uint16) uint8 {
	if address < 0x8000 {
		if address >= 0x6000 && !m.ramEnabled() {
			return uint8(address >> 8)
		}
		return m.readLow(address)
	}

	switch (m.control >> 2) & 3 {
	case 0, 1:
		return m.prg32.read(int(m.prgBank&0x0F)>>1, address)
	case 2:
		if address < 0xC000 {
			return m.prg16.read(0, address)
		}
		return m.prg16.read(int(m.prgBank&0x0F), address)
	default:
		if address < 0xC000 {
			return m.prg16.read(int(m.prgBank&0x0F), address)
		}
		return m.prg16.read(m.prg16.count()-1, address)
	}
}

func (m *mmc1) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		if m.ramEnabled() {
			m.writeLow(address, value)
		}
		return
	}

	consecutive := m.written && m.cycle == m.lastWrite+1
	m.written = true
	m.lastWrite = m.cycle
	if consecutive {
		return
	}

	if value&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shift |= (value & 1) << m.shiftCount
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	switch (address >> 13) & 3 {
	case 0:
		m.control = m.shift
	case 1:
		m.chr0 = m.shift
	case 2:
		m.chr1 = m.shift
	case 3:
		m.prgBank = m.shift
	}
	if glog.V(1) {
		glog.Infof("[MMC1] control=%02X chr0=%02X chr1=%02X prg=%02X", m.control, m.chr0, m.chr1, m.prgBank)
	}
	m.shift = 0
	m.shiftCount = 0
}

// chrBank returns the bank set and bank number for a pattern address
func (m *mmc1) chrBank(address uint16) (banks, int) {
	if m.control&0x10 == 0 {
		return m.chr8, int(m.chr0 >> 1)
	}
	if address < 0x1000 {
		return m.chr4, int(m.chr0)
	}
	return m.chr4, int(m.chr1)
}

func (m *mmc1) ReadCHR(address uint16) uint8 {
	b, bank := m.chrBank(address)
	return b.read(bank, address)
}

func (m *mmc1) WriteCHR(address uint16, value uint8) {
	b, bank := m.chrBank(address)
	m.writeCHRRAM(b, bank, address, value)
}

func (m *mmc1) Mirroring() memory.MirrorMode {
	switch m.control & 3 {
	case 0:
		return memory.MirrorSingleScreen0
	case 1:
		return memory.MirrorSingleScreen1
	case 2:
		return memory.MirrorVertical
	}
	return memory.MirrorHorizontal
}
