// Package bus implements the system bus for communication between NES components.
//
// The bus is the CPU's memory. Every CPU read or write first services any
// pending DMA, then dispatches through the memory routing table, then
// clocks the rest of the console for one CPU cycle: the APU once, the PPU
// three times and the mapper once.
package bus

import (
	"github.com/golang/glog"

	"cyclenes/internal/apu"
	"cyclenes/internal/cartridge"
	"cyclenes/internal/cpu"
	"cyclenes/internal/input"
	"cyclenes/internal/memory"
	"cyclenes/internal/ppu"
)

// IRQ sources that are ORed into the CPU's IRQ line
const (
	irqMapper uint8 = 1 << iota
	irqFrame
	irqDMC
)

// Bus connects all NES components together
type Bus struct {
	CPU       *cpu.CPU
	PPU       *ppu.PPU
	APU       *apu.APU
	Memory    *memory.Memory
	PPUMemory *memory.PPUMemory
	Input     *input.InputState

	cartridge *cartridge.Cartridge

	cycles uint64

	nmiPending bool
	irqLines   uint8

	oamDMAPending bool
	oamDMAPage    uint8
	dmaActive     bool

	frameCallback func(*ppu.Frame)
}

// New creates a new system bus with all components
func New() *Bus {
	b := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),
	}

	b.Memory = memory.New(b.PPU, b.APU, nil)
	b.Memory.SetInputSystem(b.Input)
	b.Memory.SetDMACallback(b.TriggerOAMDMA)

	b.PPUMemory = memory.NewPPUMemory(nil)
	b.PPU.SetMemory(b.PPUMemory)

	b.CPU = cpu.New(b)

	b.PPU.SetNMICallback(b.triggerNMI)
	b.PPU.SetFrameCompleteCallback(b.handleFrameComplete)
	b.APU.SetIRQCallback(b.handleAPUIRQ)

	return b
}

// LoadCartridge inserts a cartridge and resets the console
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.cartridge = cart
	b.Memory.SetCartridge(cart)
	b.PPUMemory.SetCartridge(cart)
	cart.SetIRQCallback(func(level bool) {
		b.setIRQ(irqMapper, level)
	})
	b.PPU.SetFetchCallback(cart.OnPPUAddressFetch)

	glog.Infof("[BUS] cartridge inserted: mapper %d, %v mirroring", cart.MapperID(), cart.Mirroring())
	b.Reset()
}

// Cartridge returns the inserted cartridge, or nil
func (b *Bus) Cartridge() *cartridge.Cartridge {
	return b.cartridge
}

// Reset puts every component back into its power-up state and runs the
// CPU reset sequence.
func (b *Bus) Reset() {
	b.cycles = 0
	b.nmiPending = false
	b.irqLines = 0
	b.oamDMAPending = false
	b.dmaActive = false

	b.Memory.Reset()
	b.PPUMemory.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()
	if b.cartridge != nil {
		b.cartridge.Reset()
	}
	b.CPU.Reset()
}

// Read performs one CPU read cycle
func (b *Bus) Read(address uint16) uint8 {
	b.serviceDMA()
	value := b.Memory.Read(address)
	b.tick()
	return value
}

// Write performs one CPU write cycle
func (b *Bus) Write(address uint16, value uint8) {
	b.serviceDMA()
	b.Memory.Write(address, value)
	b.tick()
}

// tick advances everything except the CPU by one CPU cycle
func (b *Bus) tick() {
	b.cycles++
	b.APU.Step()
	b.PPU.Step()
	b.PPU.Step()
	b.PPU.Step()
	if b.cartridge != nil {
		b.cartridge.Tick()
	}
}

// Step runs one CPU instruction, or one interrupt sequence when NMI or IRQ
// is pending, and returns the CPU cycles it took including stolen DMA
// cycles.
func (b *Bus) Step() uint64 {
	start := b.cycles
	switch {
	case b.nmiPending:
		b.nmiPending = false
		b.CPU.NMI()
	case b.irqLines != 0 && !b.CPU.I && !b.CPU.Halted():
		b.CPU.IRQ()
	default:
		b.CPU.Step()
	}
	return b.cycles - start
}

// RunFrame runs until the PPU starts the next frame
func (b *Bus) RunFrame() {
	frame := b.PPU.GetFrameCount()
	for b.PPU.GetFrameCount() == frame {
		b.Step()
	}
}

// Run runs the given number of frames
func (b *Bus) Run(frames int) {
	for i := 0; i < frames; i++ {
		b.RunFrame()
	}
}

// RunCycles runs whole instructions until at least n CPU cycles elapsed
func (b *Bus) RunCycles(n uint64) {
	target := b.cycles + n
	for b.cycles < target {
		b.Step()
	}
}

func (b *Bus) triggerNMI() {
	b.nmiPending = true
}

func (b *Bus) handleAPUIRQ(source apu.IRQSource, level bool) {
	switch source {
	case apu.IRQFrame:
		b.setIRQ(irqFrame, level)
	case apu.IRQDMC:
		b.setIRQ(irqDMC, level)
	}
}

func (b *Bus) setIRQ(source uint8, level bool) {
	if level {
		b.irqLines |= source
	} else {
		b.irqLines &^= source
	}
}

func (b *Bus) handleFrameComplete(frame *ppu.Frame) {
	if b.frameCallback != nil {
		b.frameCallback(frame)
	}
}

// SetFrameCallback sets the function receiving every completed frame
func (b *Bus) SetFrameCallback(callback func(*ppu.Frame)) {
	b.frameCallback = callback
}

// SetSampleSink routes APU output samples to sink
func (b *Bus) SetSampleSink(sink apu.SampleSink) {
	b.APU.SetSampleSink(sink)
}

// SetButtons sets every button of controller 1 or 2
func (b *Bus) SetButtons(player int, buttons input.Button) {
	b.Input.Controller(player).SetButtons(buttons)
}

// FrameBuffer returns the last completed frame
func (b *Bus) FrameBuffer() *ppu.Frame {
	return b.PPU.FrameBuffer()
}

// Cycles returns the CPU cycles elapsed since reset, DMA included
func (b *Bus) Cycles() uint64 {
	return b.cycles
}

// FrameCount returns the number of frames started since reset
func (b *Bus) FrameCount() uint64 {
	return b.PPU.GetFrameCount()
}

// IRQAsserted reports whether any source holds the IRQ line
func (b *Bus) IRQAsserted() bool {
	return b.irqLines != 0
}

// IsDMAInProgress reports whether the bus is inside a DMA transfer
func (b *Bus) IsDMAInProgress() bool {
	return b.dmaActive
}
