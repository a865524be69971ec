package cpu

// Load and store

func (cpu *CPU) lda() {
	cpu.A = cpu.load()
	cpu.setZN(cpu.A)
}

func (cpu *CPU) ldx() {
	cpu.X = cpu.load()
	cpu.setZN(cpu.X)
}

func (cpu *CPU) ldy() {
	cpu.Y = cpu.load()
	cpu.setZN(cpu.Y)
}

func (cpu *CPU) sta() { cpu.store(cpu.A) }
func (cpu *CPU) stx() { cpu.store(cpu.X) }
func (cpu *CPU) sty() { cpu.store(cpu.Y) }

// Register transfers

func (cpu *CPU) tax() {
	cpu.X = cpu.A
	cpu.setZN(cpu.X)
}

func (cpu *CPU) tay() {
	cpu.Y = cpu.A
	cpu.setZN(cpu.Y)
}

func (cpu *CPU) txa() {
	cpu.A = cpu.X
	cpu.setZN(cpu.A)
}

func (cpu *CPU) tya() {
	cpu.A = cpu.Y
	cpu.setZN(cpu.A)
}

func (cpu *CPU) tsx() {
	cpu.X = cpu.SP
	cpu.setZN(cpu.X)
}

func (cpu *CPU) txs() { cpu.SP = cpu.X }

// Stack

func (cpu *CPU) pha() { cpu.push(cpu.A) }
func (cpu *CPU) php() { cpu.push(cpu.statusByte(true)) }

func (cpu *CPU) pla() {
	cpu.peekStack()
	cpu.A = cpu.pull()
	cpu.setZN(cpu.A)
}

func (cpu *CPU) plp() {
	cpu.peekStack()
	cpu.SetStatusByte(cpu.pull())
}

// Logic

func (cpu *CPU) and() {
	cpu.A &= cpu.load()
	cpu.setZN(cpu.A)
}

func (cpu *CPU) eor() {
	cpu.A ^= cpu.load()
	cpu.setZN(cpu.A)
}

func (cpu *CPU) ora() {
	cpu.A |= cpu.load()
	cpu.setZN(cpu.A)
}

func (cpu *CPU) bit() {
	value := cpu.load()
	cpu.Z = cpu.A&value == 0
	cpu.V = value&0x40 != 0
	cpu.N = value&0x80 != 0
}

// Arithmetic

// addWithCarry is binary addition; the 2A03 has no decimal mode.
func (cpu *CPU) addWithCarry(value uint8) {
	sum := uint16(cpu.A) + uint16(value)
	if cpu.C {
		sum++
	}
	result := uint8(sum)
	cpu.V = (cpu.A^result)&(value^result)&0x80 != 0
	cpu.C = sum > 0xFF
	cpu.A = result
	cpu.setZN(result)
}

func (cpu *CPU) adc() { cpu.addWithCarry(cpu.load()) }

// sbc adds the one's complement of the operand
func (cpu *CPU) sbc() { cpu.addWithCarry(^cpu.load()) }

func (cpu *CPU) compare(register, value uint8) {
	cpu.C = register >= value
	cpu.setZN(register - value)
}

func (cpu *CPU) cmp() { cpu.compare(cpu.A, cpu.load()) }
func (cpu *CPU) cpx() { cpu.compare(cpu.X, cpu.load()) }
func (cpu *CPU) cpy() { cpu.compare(cpu.Y, cpu.load()) }

// Increments and decrements

func (cpu *CPU) inc() { cpu.setZN(cpu.modify(func(v uint8) uint8 { return v + 1 })) }
func (cpu *CPU) dec() { cpu.setZN(cpu.modify(func(v uint8) uint8 { return v - 1 })) }

func (cpu *CPU) inx() {
	cpu.X++
	cpu.setZN(cpu.X)
}

func (cpu *CPU) iny() {
	cpu.Y++
	cpu.setZN(cpu.Y)
}

func (cpu *CPU) dex() {
	cpu.X--
	cpu.setZN(cpu.X)
}

func (cpu *CPU) dey() {
	cpu.Y--
	cpu.setZN(cpu.Y)
}

// Shifts and rotates

func (cpu *CPU) shiftLeft(v uint8) uint8 {
	cpu.C = v&0x80 != 0
	return v << 1
}

func (cpu *CPU) shiftRight(v uint8) uint8 {
	cpu.C = v&0x01 != 0
	return v >> 1
}

func (cpu *CPU) rotateLeft(v uint8) uint8 {
	result := v << 1
	if cpu.C {
		result |= 0x01
	}
	cpu.C = v&0x80 != 0
	return result
}

func (cpu *CPU) rotateRight(v uint8) uint8 {
	result := v >> 1
	if cpu.C {
		result |= 0x80
	}
	cpu.C = v&0x01 != 0
	return result
}

func (cpu *CPU) asl() { cpu.setZN(cpu.modify(cpu.shiftLeft)) }
func (cpu *CPU) lsr() { cpu.setZN(cpu.modify(cpu.shiftRight)) }
func (cpu *CPU) rol() { cpu.setZN(cpu.modify(cpu.rotateLeft)) }
func (cpu *CPU) ror() { cpu.setZN(cpu.modify(cpu.rotateRight)) }

// Jumps and subroutines

func (cpu *CPU) jmp() { cpu.PC = cpu.operandAddress }

func (cpu *CPU) jsr() {
	cpu.peekStack()
	cpu.push16(cpu.PC - 1)
	cpu.PC = cpu.operandAddress
}

func (cpu *CPU) rts() {
	cpu.peekStack()
	cpu.PC = cpu.pull16()
	cpu.read(cpu.PC)
	cpu.PC++
}

func (cpu *CPU) rti() {
	cpu.peekStack()
	cpu.SetStatusByte(cpu.pull())
	cpu.PC = cpu.pull16()
}

func (cpu *CPU) brk() {
	// The byte after BRK is padding, already read by the implied mode
	cpu.PC++
	cpu.push16(cpu.PC)
	cpu.push(cpu.statusByte(true))
	cpu.I = true
	cpu.PC = cpu.readWord(irqVector)
}

// Branches

// branch spends one dummy cycle when taken and another when the target is
// on a different page.
func (cpu *CPU) branch(taken bool) {
	if !taken {
		return
	}
	cpu.read(cpu.PC)
	target := cpu.operandAddress
	if target&0xFF00 != cpu.PC&0xFF00 {
		cpu.read(cpu.PC&0xFF00 | target&0x00FF)
	}
	cpu.PC = target
}

func (cpu *CPU) bcc() { cpu.branch(!cpu.C) }
func (cpu *CPU) bcs() { cpu.branch(cpu.C) }
func (cpu *CPU) beq() { cpu.branch(cpu.Z) }
func (cpu *CPU) bmi() { cpu.branch(cpu.N) }
func (cpu *CPU) bne() { cpu.branch(!cpu.Z) }
func (cpu *CPU) bpl() { cpu.branch(!cpu.N) }
func (cpu *CPU) bvc() { cpu.branch(!cpu.V) }
func (cpu *CPU) bvs() { cpu.branch(cpu.V) }

// Flags

func (cpu *CPU) clc() { cpu.C = false }
func (cpu *CPU) cld() { cpu.D = false }
func (cpu *CPU) cli() { cpu.I = false }
func (cpu *CPU) clv() { cpu.V = false }
func (cpu *CPU) sec() { cpu.C = true }
func (cpu *CPU) sed() { cpu.D = true }
func (cpu *CPU) sei() { cpu.I = true }

// nop still performs the operand read of its addressing mode
func (cpu *CPU) nop() {
	if cpu.instruction.Mode != Implied {
		cpu.load()
	}
}

// Undocumented opcodes

func (cpu *CPU) lax() {
	cpu.A = cpu.load()
	cpu.X = cpu.A
	cpu.setZN(cpu.A)
}

func (cpu *CPU) sax() { cpu.store(cpu.A & cpu.X) }

func (cpu *CPU) dcp() {
	result := cpu.modify(func(v uint8) uint8 { return v - 1 })
	cpu.compare(cpu.A, result)
}

func (cpu *CPU) isb() {
	result := cpu.modify(func(v uint8) uint8 { return v + 1 })
	cpu.addWithCarry(^result)
}

func (cpu *CPU) slo() {
	cpu.A |= cpu.modify(cpu.shiftLeft)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) rla() {
	cpu.A &= cpu.modify(cpu.rotateLeft)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) sre() {
	cpu.A ^= cpu.modify(cpu.shiftRight)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) rra() {
	cpu.addWithCarry(cpu.modify(cpu.rotateRight))
}

func (cpu *CPU) anc() {
	cpu.A &= cpu.load()
	cpu.setZN(cpu.A)
	cpu.C = cpu.N
}

func (cpu *CPU) alr() {
	cpu.A = cpu.shiftRight(cpu.A & cpu.load())
	cpu.setZN(cpu.A)
}

func (cpu *CPU) arr() {
	cpu.A &= cpu.load()
	cpu.A >>= 1
	if cpu.C {
		cpu.A |= 0x80
	}
	cpu.setZN(cpu.A)
	cpu.C = cpu.A&0x40 != 0
	cpu.V = (cpu.A>>6^cpu.A>>5)&1 != 0
}

func (cpu *CPU) axs() {
	value := cpu.load()
	ax := cpu.A & cpu.X
	cpu.C = ax >= value
	cpu.X = ax - value
	cpu.setZN(cpu.X)
}

func (cpu *CPU) las() {
	value := cpu.load() & cpu.SP
	cpu.A = value
	cpu.X = value
	cpu.SP = value
	cpu.setZN(value)
}

// unstableStore writes register AND (high byte + 1). When indexing crossed
// a page the written value also replaces the address high byte.
func (cpu *CPU) unstableStore(register uint8) {
	high := uint8(cpu.operandAddress >> 8)
	cpu.read(cpu.operandAddress)
	value := register & (high + 1)
	address := cpu.operandAddress
	if cpu.addressCarry {
		address = uint16(value)<<8 | address&0x00FF
		cpu.addressCarry = false
	}
	cpu.write(address, value)
}

func (cpu *CPU) sha() { cpu.unstableStore(cpu.A & cpu.X) }
func (cpu *CPU) shx() { cpu.unstableStore(cpu.X) }
func (cpu *CPU) shy() { cpu.unstableStore(cpu.Y) }

func (cpu *CPU) tas() {
	cpu.SP = cpu.A & cpu.X
	cpu.unstableStore(cpu.SP)
}

// xaa and lxa depend on analog effects; 0xEE is the commonly observed
// constant.
func (cpu *CPU) xaa() {
	cpu.A = (cpu.A | 0xEE) & cpu.X & cpu.load()
	cpu.setZN(cpu.A)
}

func (cpu *CPU) lxa() {
	cpu.A = (cpu.A | 0xEE) & cpu.load()
	cpu.X = cpu.A
	cpu.setZN(cpu.A)
}

// jam halts the processor until reset
func (cpu *CPU) jam() {
	cpu.PC--
	cpu.halted = true
}
