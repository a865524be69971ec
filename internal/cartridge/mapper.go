package cartridge

import (
	"fmt"

	"cyclenes/internal/memory"
)

// Mapper is the bank switching logic of a cartridge board. Bank selection
// is resolved on every access, so a register write takes effect on the
// next read without rebuilding any tables.
type Mapper interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
	Mirroring() memory.MirrorMode

	// OnPPUAddressFetch is called for every pattern table fetch the PPU
	// makes while rendering.
	OnPPUAddressFetch(address uint16)
	// Tick is called once per CPU cycle.
	Tick()
	SetIRQCallback(callback func(bool))
	Reset()
}

// createMapper creates the appropriate mapper for the given ID
func createMapper(id uint8, cart *Cartridge) (Mapper, error) {
	switch id {
	case 0:
		return newNROM(cart), nil
	case 1:
		return newMMC1(cart), nil
	case 2:
		return newUxROM(cart), nil
	case 3:
		return newCNROM(cart), nil
	case 4:
		return newMMC3(cart), nil
	}
	return nil, fmt.Errorf("mapper %d: %w", id, ErrUnsupportedMapper)
}

func mapperName(id uint8) string {
	switch id {
	case 0:
		return "NROM"
	case 1:
		return "MMC1"
	case 2:
		return "UxROM"
	case 3:
		return "CNROM"
	case 4:
		return "MMC3"
	}
	return "unknown"
}

// banks views ROM or RAM as a sequence of equally sized banks. Bank numbers
// wrap modulo the bank count the way unconnected high register bits do on
// real boards.
type banks struct {
	data []uint8
	size int
}

func (b banks) count() int {
	if n := len(b.data) / b.size; n > 0 {
		return n
	}
	return 1
}

func (b banks) offset(bank int, address uint16) int {
	n := b.count()
	bank = (bank%n + n) % n
	return (bank*b.size + int(address)%b.size) % len(b.data)
}

func (b banks) read(bank int, address uint16) uint8 {
	return b.data[b.offset(bank, address)]
}

func (b banks) write(bank int, address uint16, value uint8) {
	b.data[b.offset(bank, address)] = value
}

// baseMapper holds what every board shares: PRG RAM at $6000-$7FFF,
// the header mirroring and the IRQ line.
type baseMapper struct {
	cart *Cartridge
	irq  func(bool)
}

func (m *baseMapper) readLow(address uint16) uint8 {
	if address >= 0x6000 {
		return m.cart.prgRAM[address-0x6000]
	}
	return uint8(address >> 8)
}

func (m *baseMapper) writeLow(address uint16, value uint8) {
	if address >= 0x6000 {
		m.cart.prgRAM[address-0x6000] = value
	}
}

func (m *baseMapper) writeCHRRAM(b banks, bank int, address uint16, value uint8) {
	if m.cart.hasCHRRAM {
		b.write(bank, address, value)
	}
}

func (m *baseMapper) setIRQ(level bool) {
	if m.irq != nil {
		m.irq(level)
	}
}

func (m *baseMapper) Mirroring() memory.MirrorMode       { return m.cart.mirror }
func (m *baseMapper) OnPPUAddressFetch(address uint16)   {}
func (m *baseMapper) Tick()                              {}
func (m *baseMapper) SetIRQCallback(callback func(bool)) { m.irq = callback }
func (m *baseMapper) Reset()                             {}
