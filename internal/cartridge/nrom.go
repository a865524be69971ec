package cartridge

// nrom implements mapper 0. A 16KB image is mirrored into both halves of
// $8000-$FFFF.
type nrom struct {
	baseMapper
	prg banks
	chr banks
}

func newNROM(cart *Cartridge) *nrom {
	return &nrom{
		baseMapper: baseMapper{cart: cart},
		prg:        banks{data: cart.prgROM, size: 0x8000},
		chr:        banks{data: cart.chr, size: 0x2000},
	}
}

func (m *nrom) ReadPRG(address uint16) uint8 {
	if address < 0x8000 {
		return m.readLow(address)
	}
	return m.prg.read(0, address)
}

func (m *nrom) WritePRG(address uint16, value uint8) {
	if address < 0x8000 {
		m.writeLow(address, value)
	}
}

func (m *nrom) ReadCHR(address uint16) uint8 {
	return m.chr.read(0, address)
}

func (m *nrom) WriteCHR(address uint16, value uint8) {
	m.writeCHRRAM(m.chr, 0, address, value)
}
