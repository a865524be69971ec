// Package cpu implements the 6502 CPU emulation for the NES.
//
// Every call to Read or Write on the memory interface is exactly one CPU
// cycle, including the dummy accesses the real processor makes while it
// works out an address. The bus relies on this to interleave the PPU, APU
// and DMA with instruction execution.
package cpu

import (
	"fmt"

	"github.com/golang/glog"
)

// Addressing modes
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

func (m AddressingMode) String() string {
	switch m {
	case Implied:
		return "imp"
	case Accumulator:
		return "acc"
	case Immediate:
		return "imm"
	case ZeroPage:
		return "zp"
	case ZeroPageX:
		return "zp,X"
	case ZeroPageY:
		return "zp,Y"
	case Relative:
		return "rel"
	case Absolute:
		return "abs"
	case AbsoluteX:
		return "abs,X"
	case AbsoluteY:
		return "abs,Y"
	case Indirect:
		return "ind"
	case IndexedIndirect:
		return "(zp,X)"
	case IndirectIndexed:
		return "(zp),Y"
	}
	return "?"
}

const (
	stackBase = 0x0100

	// Status register bit masks
	nFlagMask  = 0x80
	vFlagMask  = 0x40
	unusedMask = 0x20
	bFlagMask  = 0x10
	dFlagMask  = 0x08
	iFlagMask  = 0x04
	zFlagMask  = 0x02
	cFlagMask  = 0x01

	// Interrupt vectors
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// Instruction represents a 6502 instruction. Cycles is the base cycle count
// before page-crossing and branch penalties.
type Instruction struct {
	Name    string
	Opcode  uint8
	Bytes   uint8
	Cycles  uint8
	Mode    AddressingMode
	execute func(*CPU)
}

// MemoryInterface defines the interface for CPU memory access
type MemoryInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU represents the 6502 processor used in the NES
type CPU struct {
	// Registers
	A  uint8  // Accumulator
	X  uint8  // X register
	Y  uint8  // Y register
	SP uint8  // Stack pointer
	PC uint16 // Program counter

	// Status register flags
	C bool // Carry
	Z bool // Zero
	I bool // Interrupt disable
	D bool // Decimal mode (tracked, no BCD on the 2A03)
	B bool // Break, only meaningful in pushed copies of P
	V bool // Overflow
	N bool // Negative

	memory MemoryInterface
	cycles uint64

	instructions [256]*Instruction
	instruction  *Instruction

	// Effective address of the current instruction. For indexed modes the
	// high byte is left unfixed while addressCarry is set.
	operandAddress uint16
	addressCarry   bool

	halted bool
}

// New creates a new CPU instance
func New(memory MemoryInterface) *CPU {
	cpu := &CPU{
		memory: memory,
		SP:     0xFD,
	}
	cpu.initInstructions()
	return cpu
}

func (cpu *CPU) initInstructions() {
	for i := range instructionTable {
		cpu.instructions[i] = &instructionTable[i]
	}
}

// Reset performs the 7-cycle reset sequence and loads PC from $FFFC
func (cpu *CPU) Reset() {
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.SP = 0xFD
	cpu.SetStatusByte(0x24)
	cpu.halted = false

	// The stack writes of the interrupt sequence become reads on reset
	for i := 0; i < 5; i++ {
		cpu.read(cpu.PC)
	}
	cpu.PC = cpu.readWord(resetVector)
}

// Step executes a single instruction and returns the cycles it took
func (cpu *CPU) Step() uint64 {
	start := cpu.cycles
	if cpu.halted {
		cpu.read(cpu.PC)
		return cpu.cycles - start
	}

	pc := cpu.PC
	opcode := cpu.read(pc)
	cpu.PC++

	instruction := cpu.instructions[opcode]
	if instruction == nil {
		panic(fmt.Sprintf("cpu: no instruction for opcode $%02X at $%04X", opcode, pc))
	}
	if glog.V(3) {
		cpu.logInstruction(pc, instruction)
	}

	cpu.instruction = instruction
	cpu.operandAddress = 0
	cpu.addressCarry = false
	cpu.resolveAddress(instruction.Mode)
	instruction.execute(cpu)

	return cpu.cycles - start
}

// NMI runs the non-maskable interrupt sequence
func (cpu *CPU) NMI() {
	if cpu.halted {
		return
	}
	cpu.interrupt(nmiVector)
}

// IRQ runs the interrupt request sequence unless interrupts are disabled
func (cpu *CPU) IRQ() {
	if cpu.I || cpu.halted {
		return
	}
	cpu.interrupt(irqVector)
}

func (cpu *CPU) interrupt(vector uint16) {
	cpu.read(cpu.PC)
	cpu.read(cpu.PC)
	cpu.push16(cpu.PC)
	cpu.push(cpu.statusByte(false))
	cpu.I = true
	cpu.PC = cpu.readWord(vector)
}

// Cycles returns the number of bus cycles the CPU has performed
func (cpu *CPU) Cycles() uint64 {
	return cpu.cycles
}

// Halted reports whether a JAM opcode stopped the processor
func (cpu *CPU) Halted() bool {
	return cpu.halted
}

// GetInstruction returns the table entry for an opcode
func (cpu *CPU) GetInstruction(opcode uint8) *Instruction {
	return cpu.instructions[opcode]
}

func (cpu *CPU) read(address uint16) uint8 {
	cpu.cycles++
	return cpu.memory.Read(address)
}

func (cpu *CPU) write(address uint16, value uint8) {
	cpu.cycles++
	cpu.memory.Write(address, value)
}

func (cpu *CPU) readWord(address uint16) uint16 {
	lo := uint16(cpu.read(address))
	hi := uint16(cpu.read(address + 1))
	return hi<<8 | lo
}

// fetch reads the byte at PC and advances it
func (cpu *CPU) fetch() uint8 {
	value := cpu.read(cpu.PC)
	cpu.PC++
	return value
}

func (cpu *CPU) fetchWord() uint16 {
	lo := uint16(cpu.fetch())
	hi := uint16(cpu.fetch())
	return hi<<8 | lo
}

func (cpu *CPU) push(value uint8) {
	cpu.write(stackBase|uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU) push16(value uint16) {
	cpu.push(uint8(value >> 8))
	cpu.push(uint8(value))
}

func (cpu *CPU) pull() uint8 {
	cpu.SP++
	return cpu.read(stackBase | uint16(cpu.SP))
}

func (cpu *CPU) pull16() uint16 {
	lo := uint16(cpu.pull())
	hi := uint16(cpu.pull())
	return hi<<8 | lo
}

// peekStack is the dummy stack read made before a pull
func (cpu *CPU) peekStack() {
	cpu.read(stackBase | uint16(cpu.SP))
}

// resolveAddress runs the addressing mode, including its dummy reads
func (cpu *CPU) resolveAddress(mode AddressingMode) {
	switch mode {
	case Implied, Accumulator:
		cpu.read(cpu.PC)
	case Immediate:
		cpu.operandAddress = cpu.PC
		cpu.PC++
	case ZeroPage:
		cpu.operandAddress = uint16(cpu.fetch())
	case ZeroPageX:
		base := cpu.fetch()
		cpu.read(uint16(base))
		cpu.operandAddress = uint16(base + cpu.X)
	case ZeroPageY:
		base := cpu.fetch()
		cpu.read(uint16(base))
		cpu.operandAddress = uint16(base + cpu.Y)
	case Relative:
		offset := int8(cpu.fetch())
		cpu.operandAddress = cpu.PC + uint16(offset)
	case Absolute:
		cpu.operandAddress = cpu.fetchWord()
	case AbsoluteX:
		cpu.index(cpu.fetchWord(), cpu.X)
	case AbsoluteY:
		cpu.index(cpu.fetchWord(), cpu.Y)
	case Indirect:
		pointer := cpu.fetchWord()
		lo := uint16(cpu.read(pointer))
		// The high byte is fetched without carrying into the page
		hi := uint16(cpu.read(pointer&0xFF00 | uint16(uint8(pointer)+1)))
		cpu.operandAddress = hi<<8 | lo
	case IndexedIndirect:
		base := cpu.fetch()
		cpu.read(uint16(base))
		pointer := base + cpu.X
		lo := uint16(cpu.read(uint16(pointer)))
		hi := uint16(cpu.read(uint16(pointer + 1)))
		cpu.operandAddress = hi<<8 | lo
	case IndirectIndexed:
		pointer := cpu.fetch()
		lo := uint16(cpu.read(uint16(pointer)))
		hi := uint16(cpu.read(uint16(pointer + 1)))
		cpu.index(hi<<8|lo, cpu.Y)
	}
}

// index adds an index register to the low byte only and records whether
// the high byte still needs fixing.
func (cpu *CPU) index(base uint16, index uint8) {
	low := uint16(uint8(base)) + uint16(index)
	cpu.addressCarry = low > 0xFF
	cpu.operandAddress = base&0xFF00 | low&0x00FF
}

// load reads the operand. When indexing crossed a page the first read hit
// the unfixed address and the read is repeated at the corrected one.
func (cpu *CPU) load() uint8 {
	value := cpu.read(cpu.operandAddress)
	if cpu.addressCarry {
		cpu.operandAddress += 0x100
		cpu.addressCarry = false
		value = cpu.read(cpu.operandAddress)
	}
	return value
}

// fixAddress is the unconditional extra cycle stores and read-modify-write
// instructions spend on the unfixed address in indexed modes.
func (cpu *CPU) fixAddress() {
	switch cpu.instruction.Mode {
	case AbsoluteX, AbsoluteY, IndirectIndexed:
		cpu.read(cpu.operandAddress)
		if cpu.addressCarry {
			cpu.operandAddress += 0x100
			cpu.addressCarry = false
		}
	}
}

func (cpu *CPU) store(value uint8) {
	cpu.fixAddress()
	cpu.write(cpu.operandAddress, value)
}

// modify applies op to the accumulator or to memory. Memory operands get
// the unmodified value written back before the result.
func (cpu *CPU) modify(op func(uint8) uint8) uint8 {
	if cpu.instruction.Mode == Accumulator {
		cpu.A = op(cpu.A)
		return cpu.A
	}
	cpu.fixAddress()
	value := cpu.read(cpu.operandAddress)
	cpu.write(cpu.operandAddress, value)
	result := op(value)
	cpu.write(cpu.operandAddress, result)
	return result
}

func (cpu *CPU) setZN(value uint8) {
	cpu.Z = value == 0
	cpu.N = value&0x80 != 0
}

// statusByte returns P as pushed to the stack
func (cpu *CPU) statusByte(brk bool) uint8 {
	status := uint8(unusedMask)
	if cpu.N {
		status |= nFlagMask
	}
	if cpu.V {
		status |= vFlagMask
	}
	if brk {
		status |= bFlagMask
	}
	if cpu.D {
		status |= dFlagMask
	}
	if cpu.I {
		status |= iFlagMask
	}
	if cpu.Z {
		status |= zFlagMask
	}
	if cpu.C {
		status |= cFlagMask
	}
	return status
}

// GetStatusByte returns the processor status as a byte
func (cpu *CPU) GetStatusByte() uint8 {
	return cpu.statusByte(cpu.B)
}

// SetStatusByte sets the processor status from a byte
func (cpu *CPU) SetStatusByte(status uint8) {
	cpu.N = status&nFlagMask != 0
	cpu.V = status&vFlagMask != 0
	cpu.B = status&bFlagMask != 0
	cpu.D = status&dFlagMask != 0
	cpu.I = status&iFlagMask != 0
	cpu.Z = status&zFlagMask != 0
	cpu.C = status&cFlagMask != 0
}

func (cpu *CPU) getFlagsString() string {
	flags := []byte("nvubdizc")
	status := cpu.GetStatusByte()
	for i := range flags {
		if status&(0x80>>i) != 0 {
			flags[i] -= 'a' - 'A'
		}
	}
	return string(flags)
}

func (cpu *CPU) logInstruction(pc uint16, instruction *Instruction) {
	glog.Infof("[CPU_DEBUG] PC=$%04X: %s %s (0x%02X) | A=$%02X X=$%02X Y=$%02X SP=$%02X | %s | cyc=%d",
		pc, instruction.Name, instruction.Mode, instruction.Opcode,
		cpu.A, cpu.X, cpu.Y, cpu.SP, cpu.getFlagsString(), cpu.cycles)
}
