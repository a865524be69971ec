package memory

// MirrorMode represents nametable mirroring mode
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

func (m MirrorMode) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingleScreen0:
		return "single-screen A"
	case MirrorSingleScreen1:
		return "single-screen B"
	case MirrorFourScreen:
		return "four-screen"
	}
	return "unknown"
}

// NametableOffset maps a PPU nametable address ($2000-$3EFF) to an offset
// into nametable RAM. Each 1KB quadrant selects one physical 1KB bank.
func NametableOffset(mode MirrorMode, address uint16) uint16 {
	address &= 0x0FFF
	quadrant := address >> 10
	offset := address & 0x03FF

	var bank uint16
	switch mode {
	case MirrorHorizontal:
		bank = quadrant >> 1
	case MirrorVertical:
		bank = quadrant & 1
	case MirrorSingleScreen0:
		bank = 0
	case MirrorSingleScreen1:
		bank = 1
	case MirrorFourScreen:
		bank = quadrant
	}
	return bank<<10 | offset
}

// PPUMemory represents the PPU's address space: pattern tables on the
// cartridge, nametable RAM and palette RAM.
type PPUMemory struct {
	vram       [0x1000]uint8 // 2KB on the console, 4KB for four-screen boards
	paletteRAM [32]uint8
	cartridge  CartridgeInterface
}

// NewPPUMemory creates a new PPU memory instance
func NewPPUMemory(cart CartridgeInterface) *PPUMemory {
	mem := &PPUMemory{cartridge: cart}
	mem.Reset()
	return mem
}

// SetCartridge attaches the cartridge providing CHR and mirroring
func (pm *PPUMemory) SetCartridge(cart CartridgeInterface) {
	pm.cartridge = cart
}

// Reset clears nametables and loads the power-up palette
func (pm *PPUMemory) Reset() {
	pm.vram = [0x1000]uint8{}
	for i := range pm.paletteRAM {
		pm.paletteRAM[i] = 0x0F
	}
}

func (pm *PPUMemory) mirroring() MirrorMode {
	if pm.cartridge == nil {
		return MirrorHorizontal
	}
	return pm.cartridge.Mirroring()
}

// Read reads from PPU memory space ($0000-$3FFF)
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if pm.cartridge == nil {
			return 0
		}
		return pm.cartridge.ReadCHR(address)
	case address < 0x3F00:
		return pm.vram[NametableOffset(pm.mirroring(), address)]
	default:
		return pm.paletteRAM[paletteIndex(address)]
	}
}

// Write writes to PPU memory space ($0000-$3FFF)
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if pm.cartridge != nil {
			pm.cartridge.WriteCHR(address, value)
		}
	case address < 0x3F00:
		pm.vram[NametableOffset(pm.mirroring(), address)] = value
	default:
		pm.paletteRAM[paletteIndex(address)] = value & 0x3F
	}
}

// paletteIndex folds the sprite backdrop entries $3F10/$14/$18/$1C onto
// their background counterparts.
func paletteIndex(address uint16) uint16 {
	index := address & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	return index
}
