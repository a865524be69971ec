package cartridge

import "github.com/golang/glog"

// uxrom implements mapper 2: a switchable 16KB bank at $8000 and the last
// bank fixed at $C000.
type uxrom struct {
	baseMapper
	prg  banks
	chr  banks
	bank int
}

func newUxROM(cart *Cartridge) *uxrom {
	return &uxrom{
		baseMapper: baseMapper{cart: cart},
		prg:        banks{data: cart.prgROM, size: 0x4000},
		chr:        banks{data: cart.chr, size: 0x2000},
	}
}

func (m *uxrom) ReadPRG(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.readLow(address)
	case address < 0xC000:
		return m.prg.read(m.bank, address)
	}
	return m.prg.read(m.prg.count()-1, address)
}

func (m *uxrom) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		m.writeLow(address, value)
		return
	}
	m.bank = int(value) % m.prg.count()
	if glog.V(1) {
		glog.Infof("[UXROM] PRG bank %d at $8000", m.bank)
	}
}

func (m *uxrom) ReadCHR(address uint16) uint8 {
	return m.chr.read(0, address)
}

func (m *uxrom) WriteCHR(address uint16, value uint8) {
	m.writeCHRRAM(m.chr, 0, address, value)
}

func (m *uxrom) Reset() {
	m.bank = 0
}
