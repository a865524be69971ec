package cartridge

import "github.com/golang/glog"

// cnrom implements mapper 3: fixed PRG and a switchable 8KB CHR bank.
type cnrom struct {
	baseMapper
	prg  banks
	chr  banks
	bank int
}

func newCNROM(cart *Cartridge) *cnrom {
	return &cnrom{
		baseMapper: baseMapper{cart: cart},
		prg:        banks{data: cart.prgROM, size: 0x8000},
		chr:        banks{data: cart.chr, size: 0x2000},
	}
}

func (m *cnrom) ReadPRG(address uint16) uint8 {
	if address < 0x8000 {
		return m.readLow(address)
	}
	return m.prg.read(0, address)
}

func (m *cnrom) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		m.writeLow(address, value)
		return
	}
	m.bank = int(value) % m.chr.count()
	if glog.V(1) {
		glog.Infof("[CNROM] CHR bank %d", m.bank)
	}
}

func (m *cnrom) ReadCHR(address uint16) uint8 {
	return m.chr.read(m.bank, address)
}

func (m *cnrom) WriteCHR(address uint16, value uint8) {
	m.writeCHRRAM(m.chr, m.bank, address, value)
}

func (m *cnrom) Reset() {
	m.bank = 0
}
