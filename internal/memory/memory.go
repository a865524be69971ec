// Package memory implements the CPU and PPU address spaces of the NES.
package memory

// route identifies which unit answers a CPU address. The table is built
// once at power-on and never changes; bank switching happens behind the
// cartridge route.
type route uint8

const (
	routeOpenBus route = iota
	routeRAM
	routePPU
	routeAPU
	routeAPUStatus
	routeOAMDMA
	routeController1
	routeController2
	routeCartridge
)

// PPUInterface defines the interface for PPU register access
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface defines the interface for APU register access
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface defines the interface for controller ports. Read returns
// the next serial bit in bit 0.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface defines the interface for cartridge access
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
	Mirroring() MirrorMode
}

// Memory represents the CPU address space
type Memory struct {
	// Internal RAM (2KB, mirrored to 8KB)
	ram [0x800]uint8

	routes [0x10000]route

	ppuRegisters PPUInterface
	apuRegisters APUInterface
	inputSystem  InputInterface
	cartridge    CartridgeInterface

	// Called with the page number on a $4014 write
	dmaCallback func(uint8)
}

// New creates a new Memory instance and builds its routing table
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface) *Memory {
	mem := &Memory{
		ppuRegisters: ppu,
		apuRegisters: apu,
		cartridge:    cart,
	}
	mem.buildRoutes()
	return mem
}

func (m *Memory) buildRoutes() {
	for addr := 0; addr < 0x10000; addr++ {
		var r route
		switch {
		case addr < 0x2000:
			r = routeRAM
		case addr < 0x4000:
			r = routePPU
		case addr == 0x4014:
			r = routeOAMDMA
		case addr == 0x4015:
			r = routeAPUStatus
		case addr == 0x4016:
			r = routeController1
		case addr == 0x4017:
			r = routeController2
		case addr < 0x4018:
			r = routeAPU
		case addr < 0x4020:
			r = routeOpenBus
		default:
			r = routeCartridge
		}
		m.routes[addr] = r
	}
}

// SetInputSystem sets the input system for controller access
func (m *Memory) SetInputSystem(input InputInterface) {
	m.inputSystem = input
}

// SetCartridge attaches a cartridge to the cartridge route
func (m *Memory) SetCartridge(cart CartridgeInterface) {
	m.cartridge = cart
}

// SetDMACallback sets the OAM DMA trigger callback
func (m *Memory) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// Reset clears internal RAM
func (m *Memory) Reset() {
	m.ram = [0x800]uint8{}
}

// openBus approximates the value left on the data bus by the last address
// byte driven, which is the high byte of the address.
func openBus(address uint16) uint8 {
	return uint8(address >> 8)
}

// Read reads a byte from the given address
func (m *Memory) Read(address uint16) uint8 {
	switch m.routes[address] {
	case routeRAM:
		return m.ram[address&0x07FF]
	case routePPU:
		return m.ppuRegisters.ReadRegister(0x2000 + address&0x0007)
	case routeAPUStatus:
		return m.apuRegisters.ReadStatus()
	case routeController1, routeController2:
		if m.inputSystem == nil {
			return openBus(address) & 0xE0
		}
		return openBus(address)&0xE0 | m.inputSystem.Read(address)&0x01
	case routeCartridge:
		if m.cartridge == nil {
			return openBus(address)
		}
		return m.cartridge.ReadPRG(address)
	default:
		// Write-only ports and the test-mode range
		return openBus(address)
	}
}

// Write writes a byte to the given address
func (m *Memory) Write(address uint16, value uint8) {
	switch m.routes[address] {
	case routeRAM:
		m.ram[address&0x07FF] = value
	case routePPU:
		m.ppuRegisters.WriteRegister(0x2000+address&0x0007, value)
	case routeAPU, routeAPUStatus, routeController2:
		m.apuRegisters.WriteRegister(address, value)
	case routeOAMDMA:
		if m.dmaCallback != nil {
			m.dmaCallback(value)
		}
	case routeController1:
		if m.inputSystem != nil {
			m.inputSystem.Write(address, value)
		}
	case routeCartridge:
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}
	}
}

// PeekRAM returns internal RAM without bus side effects
func (m *Memory) PeekRAM(address uint16) uint8 {
	return m.ram[address&0x07FF]
}
