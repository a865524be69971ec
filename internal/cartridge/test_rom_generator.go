package cartridge

import (
	"cyclenes/internal/memory"
)

// TestROMBuilder assembles iNES images in memory for tests
type TestROMBuilder struct {
	prgBanks  int
	chrBanks  int
	mapperID  uint8
	mirroring memory.MirrorMode
	battery   bool
	trainer   bool
	prg       map[int][]uint8 // keyed by PRG offset
	fill      func(prg, chr []uint8)
	vectors   [3]uint16 // NMI, reset, IRQ
}

// NewTestROMBuilder returns a builder for a 16KB PRG / 8KB CHR NROM image
// whose vectors all point at $8000.
func NewTestROMBuilder() *TestROMBuilder {
	return &TestROMBuilder{
		prgBanks: 1,
		chrBanks: 1,
		prg:      make(map[int][]uint8),
		vectors:  [3]uint16{0x8000, 0x8000, 0x8000},
	}
}

// WithPRGSize sets the PRG ROM size in 16KB units
func (b *TestROMBuilder) WithPRGSize(banks int) *TestROMBuilder {
	b.prgBanks = banks
	return b
}

// WithCHRSize sets the CHR ROM size in 8KB units (0 = CHR RAM)
func (b *TestROMBuilder) WithCHRSize(banks int) *TestROMBuilder {
	b.chrBanks = banks
	return b
}

// WithMapper sets the mapper ID
func (b *TestROMBuilder) WithMapper(id uint8) *TestROMBuilder {
	b.mapperID = id
	return b
}

// WithMirroring sets the header mirroring bits
func (b *TestROMBuilder) WithMirroring(mode memory.MirrorMode) *TestROMBuilder {
	b.mirroring = mode
	return b
}

// WithBattery marks PRG RAM as battery backed
func (b *TestROMBuilder) WithBattery() *TestROMBuilder {
	b.battery = true
	return b
}

// WithTrainer adds a 512-byte trainer
func (b *TestROMBuilder) WithTrainer() *TestROMBuilder {
	b.trainer = true
	return b
}

// WithCode places bytes at a CPU address, assuming the last 16KB or 32KB
// of PRG is mapped at $8000 (true for every supported board at power-on).
func (b *TestROMBuilder) WithCode(address uint16, code ...uint8) *TestROMBuilder {
	b.prg[b.prgOffset(address)] = code
	return b
}

// WithFill lets the caller initialise raw PRG and CHR contents
func (b *TestROMBuilder) WithFill(fill func(prg, chr []uint8)) *TestROMBuilder {
	b.fill = fill
	return b
}

// WithResetVector sets the reset vector
func (b *TestROMBuilder) WithResetVector(address uint16) *TestROMBuilder {
	b.vectors[1] = address
	return b
}

// WithNMIVector sets the NMI vector
func (b *TestROMBuilder) WithNMIVector(address uint16) *TestROMBuilder {
	b.vectors[0] = address
	return b
}

// WithIRQVector sets the IRQ/BRK vector
func (b *TestROMBuilder) WithIRQVector(address uint16) *TestROMBuilder {
	b.vectors[2] = address
	return b
}

func (b *TestROMBuilder) prgOffset(address uint16) int {
	size := b.prgBanks * prgBankSize
	if address >= 0xC000 || size == prgBankSize {
		return size - prgBankSize + int(address&0x3FFF)
	}
	return size - 2*prgBankSize + int(address&0x7FFF)
}

// Build returns the raw iNES image
func (b *TestROMBuilder) Build() []byte {
	header := make([]uint8, headerSize)
	copy(header, "NES\x1A")
	header[4] = uint8(b.prgBanks)
	header[5] = uint8(b.chrBanks)
	header[6] = b.mapperID << 4
	header[7] = b.mapperID & 0xF0
	switch b.mirroring {
	case memory.MirrorVertical:
		header[6] |= 0x01
	case memory.MirrorFourScreen:
		header[6] |= 0x08
	}
	if b.battery {
		header[6] |= 0x02
	}
	if b.trainer {
		header[6] |= 0x04
	}

	prg := make([]uint8, b.prgBanks*prgBankSize)
	chr := make([]uint8, b.chrBanks*chrBankSize)
	if b.fill != nil {
		b.fill(prg, chr)
	}
	for offset, code := range b.prg {
		copy(prg[offset:], code)
	}
	if len(prg) > 0 {
		end := len(prg)
		for i, v := range b.vectors {
			prg[end-6+2*i] = uint8(v)
			prg[end-5+2*i] = uint8(v >> 8)
		}
	}

	image := append([]uint8(nil), header...)
	if b.trainer {
		image = append(image, make([]uint8, trainerSize)...)
	}
	image = append(image, prg...)
	return append(image, chr...)
}

// BuildCartridge builds and loads the image
func (b *TestROMBuilder) BuildCartridge() (*Cartridge, error) {
	return LoadFromBytes(b.Build())
}
