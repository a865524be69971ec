package cartridge

import (
	"github.com/golang/glog"

	"cyclenes/internal/memory"
)

// a12LowCycles is how long PPU A12 must stay low before a rising edge
// clocks the scanline counter.
const a12LowCycles = 3

// mmc3 implements mapper 4: eight bank registers written through a
// select/data pair and a scanline counter clocked by PPU address line A12.
//
// The counter only sees the pattern fetches the PPU reports while
// rendering, not $2007 traffic, and filters edges by CPU cycles rather
// than PPU address bus activity. That matches games using the usual
// background-at-$0000, sprites-at-$1000 arrangement.
type mmc3 struct {
	baseMapper
	prg8 banks
	chr1 banks

	bankSelect uint8
	registers  [8]uint8
	mirror     memory.MirrorMode

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool

	cycle    uint64
	a12High  bool
	a12LowAt uint64
}

func newMMC3(cart *Cartridge) *mmc3 {
	m := &mmc3{
		baseMapper: baseMapper{cart: cart},
		prg8:       banks{data: cart.prgROM, size: 0x2000},
		chr1:       banks{data: cart.chr, size: 0x0400},
	}
	m.Reset()
	return m
}

func (m *mmc3) Reset() {
	m.bankSelect = 0
	m.registers = [8]uint8{0, 2, 4, 5, 6, 7, 0, 1}
	m.mirror = m.cart.mirror
	m.irqLatch = 0
	m.irqCounter = 0
	m.irqReload = false
	m.irqEnabled = false
	m.setIRQ(false)
}

func (m *mmc3) Tick() {
	m.cycle++
}

func (m *mmc3) prgBank(address uint16) int {
	last := m.prg8.count() - 1
	swapped := m.bankSelect&0x40 != 0
	switch (address >> 13) & 3 {
	case 0: // $8000
		if swapped {
			return last - 1
		}
		return int(m.registers[6])
	case 1: // $A000
		return int(m.registers[7])
	case 2: // $C000
		if swapped {
			return int(m.registers[6])
		}
		return last - 1
	}
	return last
}

func (m *mmc3) chrBank(address uint16) int {
	if m.bankSelect&0x80 != 0 {
		address ^= 0x1000
	}
	slot := (address >> 10) & 7
	switch slot {
	case 0, 1:
		return int(m.registers[0]&0xFE) + int(slot)
	case 2, 3:
		return int(m.registers[1]&0xFE) + int(slot-2)
	}
	return int(m.registers[slot-2])
}

func (m *mmc3) ReadPRG(address uint16) uint8 {
	if address < 0x8000 {
		return m.readLow(address)
	}
	return m.prg8.read(m.prgBank(address), address)
}

func (m *mmc3) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		m.writeLow(address, value)
		return
	}

	even := address&1 == 0
	switch {
	case address < 0xA000:
		if even {
			m.bankSelect = value
		} else {
			m.registers[m.bankSelect&7] = value
			if glog.V(1) {
				glog.Infof("[MMC3] R%d = %02X", m.bankSelect&7, value)
			}
		}
	case address < 0xC000:
		if even && m.cart.mirror != memory.MirrorFourScreen {
			if value&1 == 0 {
				m.mirror = memory.MirrorVertical
			} else {
				m.mirror = memory.MirrorHorizontal
			}
		}
	case address < 0xE000:
		if even {
			m.irqLatch = value
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}
	default:
		if even {
			m.irqEnabled = false
			m.setIRQ(false)
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) ReadCHR(address uint16) uint8 {
	return m.chr1.read(m.chrBank(address), address)
}

func (m *mmc3) WriteCHR(address uint16, value uint8) {
	m.writeCHRRAM(m.chr1, m.chrBank(address), address, value)
}

func (m *mmc3) Mirroring() memory.MirrorMode {
	return m.mirror
}

func (m *mmc3) OnPPUAddressFetch(address uint16) {
	high := address&0x1000 != 0
	if high && !m.a12High && m.cycle-m.a12LowAt >= a12LowCycles {
		m.clockCounter()
	}
	if !high && m.a12High {
		m.a12LowAt = m.cycle
	}
	m.a12High = high
}

func (m *mmc3) clockCounter() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.setIRQ(true)
	}
}
