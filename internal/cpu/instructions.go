package cpu

// instructionTable covers every opcode. Undocumented opcodes are included
// with their usual names; the JAM opcodes halt the processor.
var instructionTable = [256]Instruction{
	{"BRK", 0x00, 1, 7, Implied, (*CPU).brk},
	{"ORA", 0x01, 2, 6, IndexedIndirect, (*CPU).ora},
	{"JAM", 0x02, 1, 2, Implied, (*CPU).jam},
	{"SLO", 0x03, 2, 8, IndexedIndirect, (*CPU).slo},
	{"NOP", 0x04, 2, 3, ZeroPage, (*CPU).nop},
	{"ORA", 0x05, 2, 3, ZeroPage, (*CPU).ora},
	{"ASL", 0x06, 2, 5, ZeroPage, (*CPU).asl},
	{"SLO", 0x07, 2, 5, ZeroPage, (*CPU).slo},
	{"PHP", 0x08, 1, 3, Implied, (*CPU).php},
	{"ORA", 0x09, 2, 2, Immediate, (*CPU).ora},
	{"ASL", 0x0A, 1, 2, Accumulator, (*CPU).asl},
	{"ANC", 0x0B, 2, 2, Immediate, (*CPU).anc},
	{"NOP", 0x0C, 3, 4, Absolute, (*CPU).nop},
	{"ORA", 0x0D, 3, 4, Absolute, (*CPU).ora},
	{"ASL", 0x0E, 3, 6, Absolute, (*CPU).asl},
	{"SLO", 0x0F, 3, 6, Absolute, (*CPU).slo},
	{"BPL", 0x10, 2, 2, Relative, (*CPU).bpl},
	{"ORA", 0x11, 2, 5, IndirectIndexed, (*CPU).ora},
	{"JAM", 0x12, 1, 2, Implied, (*CPU).jam},
	{"SLO", 0x13, 2, 8, IndirectIndexed, (*CPU).slo},
	{"NOP", 0x14, 2, 4, ZeroPageX, (*CPU).nop},
	{"ORA", 0x15, 2, 4, ZeroPageX, (*CPU).ora},
	{"ASL", 0x16, 2, 6, ZeroPageX, (*CPU).asl},
	{"SLO", 0x17, 2, 6, ZeroPageX, (*CPU).slo},
	{"CLC", 0x18, 1, 2, Implied, (*CPU).clc},
	{"ORA", 0x19, 3, 4, AbsoluteY, (*CPU).ora},
	{"NOP", 0x1A, 1, 2, Implied, (*CPU).nop},
	{"SLO", 0x1B, 3, 7, AbsoluteY, (*CPU).slo},
	{"NOP", 0x1C, 3, 4, AbsoluteX, (*CPU).nop},
	{"ORA", 0x1D, 3, 4, AbsoluteX, (*CPU).ora},
	{"ASL", 0x1E, 3, 7, AbsoluteX, (*CPU).asl},
	{"SLO", 0x1F, 3, 7, AbsoluteX, (*CPU).slo},
	{"JSR", 0x20, 3, 6, Absolute, (*CPU).jsr},
	{"AND", 0x21, 2, 6, IndexedIndirect, (*CPU).and},
	{"JAM", 0x22, 1, 2, Implied, (*CPU).jam},
	{"RLA", 0x23, 2, 8, IndexedIndirect, (*CPU).rla},
	{"BIT", 0x24, 2, 3, ZeroPage, (*CPU).bit},
	{"AND", 0x25, 2, 3, ZeroPage, (*CPU).and},
	{"ROL", 0x26, 2, 5, ZeroPage, (*CPU).rol},
	{"RLA", 0x27, 2, 5, ZeroPage, (*CPU).rla},
	{"PLP", 0x28, 1, 4, Implied, (*CPU).plp},
	{"AND", 0x29, 2, 2, Immediate, (*CPU).and},
	{"ROL", 0x2A, 1, 2, Accumulator, (*CPU).rol},
	{"ANC", 0x2B, 2, 2, Immediate, (*CPU).anc},
	{"BIT", 0x2C, 3, 4, Absolute, (*CPU).bit},
	{"AND", 0x2D, 3, 4, Absolute, (*CPU).and},
	{"ROL", 0x2E, 3, 6, Absolute, (*CPU).rol},
	{"RLA", 0x2F, 3, 6, Absolute, (*CPU).rla},
	{"BMI", 0x30, 2, 2, Relative, (*CPU).bmi},
	{"AND", 0x31, 2, 5, IndirectIndexed, (*CPU).and},
	{"JAM", 0x32, 1, 2, Implied, (*CPU).jam},
	{"RLA", 0x33, 2, 8, IndirectIndexed, (*CPU).rla},
	{"NOP", 0x34, 2, 4, ZeroPageX, (*CPU).nop},
	{"AND", 0x35, 2, 4, ZeroPageX, (*CPU).and},
	{"ROL", 0x36, 2, 6, ZeroPageX, (*CPU).rol},
	{"RLA", 0x37, 2, 6, ZeroPageX, (*CPU).rla},
	{"SEC", 0x38, 1, 2, Implied, (*CPU).sec},
	{"AND", 0x39, 3, 4, AbsoluteY, (*CPU).and},
	{"NOP", 0x3A, 1, 2, Implied, (*CPU).nop},
	{"RLA", 0x3B, 3, 7, AbsoluteY, (*CPU).rla},
	{"NOP", 0x3C, 3, 4, AbsoluteX, (*CPU).nop},
	{"AND", 0x3D, 3, 4, AbsoluteX, (*CPU).and},
	{"ROL", 0x3E, 3, 7, AbsoluteX, (*CPU).rol},
	{"RLA", 0x3F, 3, 7, AbsoluteX, (*CPU).rla},
	{"RTI", 0x40, 1, 6, Implied, (*CPU).rti},
	{"EOR", 0x41, 2, 6, IndexedIndirect, (*CPU).eor},
	{"JAM", 0x42, 1, 2, Implied, (*CPU).jam},
	{"SRE", 0x43, 2, 8, IndexedIndirect, (*CPU).sre},
	{"NOP", 0x44, 2, 3, ZeroPage, (*CPU).nop},
	{"EOR", 0x45, 2, 3, ZeroPage, (*CPU).eor},
	{"LSR", 0x46, 2, 5, ZeroPage, (*CPU).lsr},
	{"SRE", 0x47, 2, 5, ZeroPage, (*CPU).sre},
	{"PHA", 0x48, 1, 3, Implied, (*CPU).pha},
	{"EOR", 0x49, 2, 2, Immediate, (*CPU).eor},
	{"LSR", 0x4A, 1, 2, Accumulator, (*CPU).lsr},
	{"ALR", 0x4B, 2, 2, Immediate, (*CPU).alr},
	{"JMP", 0x4C, 3, 3, Absolute, (*CPU).jmp},
	{"EOR", 0x4D, 3, 4, Absolute, (*CPU).eor},
	{"LSR", 0x4E, 3, 6, Absolute, (*CPU).lsr},
	{"SRE", 0x4F, 3, 6, Absolute, (*CPU).sre},
	{"BVC", 0x50, 2, 2, Relative, (*CPU).bvc},
	{"EOR", 0x51, 2, 5, IndirectIndexed, (*CPU).eor},
	{"JAM", 0x52, 1, 2, Implied, (*CPU).jam},
	{"SRE", 0x53, 2, 8, IndirectIndexed, (*CPU).sre},
	{"NOP", 0x54, 2, 4, ZeroPageX, (*CPU).nop},
	{"EOR", 0x55, 2, 4, ZeroPageX, (*CPU).eor},
	{"LSR", 0x56, 2, 6, ZeroPageX, (*CPU).lsr},
	{"SRE", 0x57, 2, 6, ZeroPageX, (*CPU).sre},
	{"CLI", 0x58, 1, 2, Implied, (*CPU).cli},
	{"EOR", 0x59, 3, 4, AbsoluteY, (*CPU).eor},
	{"NOP", 0x5A, 1, 2, Implied, (*CPU).nop},
	{"SRE", 0x5B, 3, 7, AbsoluteY, (*CPU).sre},
	{"NOP", 0x5C, 3, 4, AbsoluteX, (*CPU).nop},
	{"EOR", 0x5D, 3, 4, AbsoluteX, (*CPU).eor},
	{"LSR", 0x5E, 3, 7, AbsoluteX, (*CPU).lsr},
	{"SRE", 0x5F, 3, 7, AbsoluteX, (*CPU).sre},
	{"RTS", 0x60, 1, 6, Implied, (*CPU).rts},
	{"ADC", 0x61, 2, 6, IndexedIndirect, (*CPU).adc},
	{"JAM", 0x62, 1, 2, Implied, (*CPU).jam},
	{"RRA", 0x63, 2, 8, IndexedIndirect, (*CPU).rra},
	{"NOP", 0x64, 2, 3, ZeroPage, (*CPU).nop},
	{"ADC", 0x65, 2, 3, ZeroPage, (*CPU).adc},
	{"ROR", 0x66, 2, 5, ZeroPage, (*CPU).ror},
	{"RRA", 0x67, 2, 5, ZeroPage, (*CPU).rra},
	{"PLA", 0x68, 1, 4, Implied, (*CPU).pla},
	{"ADC", 0x69, 2, 2, Immediate, (*CPU).adc},
	{"ROR", 0x6A, 1, 2, Accumulator, (*CPU).ror},
	{"ARR", 0x6B, 2, 2, Immediate, (*CPU).arr},
	{"JMP", 0x6C, 3, 5, Indirect, (*CPU).jmp},
	{"ADC", 0x6D, 3, 4, Absolute, (*CPU).adc},
	{"ROR", 0x6E, 3, 6, Absolute, (*CPU).ror},
	{"RRA", 0x6F, 3, 6, Absolute, (*CPU).rra},
	{"BVS", 0x70, 2, 2, Relative, (*CPU).bvs},
	{"ADC", 0x71, 2, 5, IndirectIndexed, (*CPU).adc},
	{"JAM", 0x72, 1, 2, Implied, (*CPU).jam},
	{"RRA", 0x73, 2, 8, IndirectIndexed, (*CPU).rra},
	{"NOP", 0x74, 2, 4, ZeroPageX, (*CPU).nop},
	{"ADC", 0x75, 2, 4, ZeroPageX, (*CPU).adc},
	{"ROR", 0x76, 2, 6, ZeroPageX, (*CPU).ror},
	{"RRA", 0x77, 2, 6, ZeroPageX, (*CPU).rra},
	{"SEI", 0x78, 1, 2, Implied, (*CPU).sei},
	{"ADC", 0x79, 3, 4, AbsoluteY, (*CPU).adc},
	{"NOP", 0x7A, 1, 2, Implied, (*CPU).nop},
	{"RRA", 0x7B, 3, 7, AbsoluteY, (*CPU).rra},
	{"NOP", 0x7C, 3, 4, AbsoluteX, (*CPU).nop},
	{"ADC", 0x7D, 3, 4, AbsoluteX, (*CPU).adc},
	{"ROR", 0x7E, 3, 7, AbsoluteX, (*CPU).ror},
	{"RRA", 0x7F, 3, 7, AbsoluteX, (*CPU).rra},
	{"NOP", 0x80, 2, 2, Immediate, (*CPU).nop},
	{"STA", 0x81, 2, 6, IndexedIndirect, (*CPU).sta},
	{"NOP", 0x82, 2, 2, Immediate, (*CPU).nop},
	{"SAX", 0x83, 2, 6, IndexedIndirect, (*CPU).sax},
	{"STY", 0x84, 2, 3, ZeroPage, (*CPU).sty},
	{"STA", 0x85, 2, 3, ZeroPage, (*CPU).sta},
	{"STX", 0x86, 2, 3, ZeroPage, (*CPU).stx},
	{"SAX", 0x87, 2, 3, ZeroPage, (*CPU).sax},
	{"DEY", 0x88, 1, 2, Implied, (*CPU).dey},
	{"NOP", 0x89, 2, 2, Immediate, (*CPU).nop},
	{"TXA", 0x8A, 1, 2, Implied, (*CPU).txa},
	{"XAA", 0x8B, 2, 2, Immediate, (*CPU).xaa},
	{"STY", 0x8C, 3, 4, Absolute, (*CPU).sty},
	{"STA", 0x8D, 3, 4, Absolute, (*CPU).sta},
	{"STX", 0x8E, 3, 4, Absolute, (*CPU).stx},
	{"SAX", 0x8F, 3, 4, Absolute, (*CPU).sax},
	{"BCC", 0x90, 2, 2, Relative, (*CPU).bcc},
	{"STA", 0x91, 2, 6, IndirectIndexed, (*CPU).sta},
	{"JAM", 0x92, 1, 2, Implied, (*CPU).jam},
	{"SHA", 0x93, 2, 6, IndirectIndexed, (*CPU).sha},
	{"STY", 0x94, 2, 4, ZeroPageX, (*CPU).sty},
	{"STA", 0x95, 2, 4, ZeroPageX, (*CPU).sta},
	{"STX", 0x96, 2, 4, ZeroPageY, (*CPU).stx},
	{"SAX", 0x97, 2, 4, ZeroPageY, (*CPU).sax},
	{"TYA", 0x98, 1, 2, Implied, (*CPU).tya},
	{"STA", 0x99, 3, 5, AbsoluteY, (*CPU).sta},
	{"TXS", 0x9A, 1, 2, Implied, (*CPU).txs},
	{"TAS", 0x9B, 3, 5, AbsoluteY, (*CPU).tas},
	{"SHY", 0x9C, 3, 5, AbsoluteX, (*CPU).shy},
	{"STA", 0x9D, 3, 5, AbsoluteX, (*CPU).sta},
	{"SHX", 0x9E, 3, 5, AbsoluteY, (*CPU).shx},
	{"SHA", 0x9F, 3, 5, AbsoluteY, (*CPU).sha},
	{"LDY", 0xA0, 2, 2, Immediate, (*CPU).ldy},
	{"LDA", 0xA1, 2, 6, IndexedIndirect, (*CPU).lda},
	{"LDX", 0xA2, 2, 2, Immediate, (*CPU).ldx},
	{"LAX", 0xA3, 2, 6, IndexedIndirect, (*CPU).lax},
	{"LDY", 0xA4, 2, 3, ZeroPage, (*CPU).ldy},
	{"LDA", 0xA5, 2, 3, ZeroPage, (*CPU).lda},
	{"LDX", 0xA6, 2, 3, ZeroPage, (*CPU).ldx},
	{"LAX", 0xA7, 2, 3, ZeroPage, (*CPU).lax},
	{"TAY", 0xA8, 1, 2, Implied, (*CPU).tay},
	{"LDA", 0xA9, 2, 2, Immediate, (*CPU).lda},
	{"TAX", 0xAA, 1, 2, Implied, (*CPU).tax},
	{"LXA", 0xAB, 2, 2, Immediate, (*CPU).lxa},
	{"LDY", 0xAC, 3, 4, Absolute, (*CPU).ldy},
	{"LDA", 0xAD, 3, 4, Absolute, (*CPU).lda},
	{"LDX", 0xAE, 3, 4, Absolute, (*CPU).ldx},
	{"LAX", 0xAF, 3, 4, Absolute, (*CPU).lax},
	{"BCS", 0xB0, 2, 2, Relative, (*CPU).bcs},
	{"LDA", 0xB1, 2, 5, IndirectIndexed, (*CPU).lda},
	{"JAM", 0xB2, 1, 2, Implied, (*CPU).jam},
	{"LAX", 0xB3, 2, 5, IndirectIndexed, (*CPU).lax},
	{"LDY", 0xB4, 2, 4, ZeroPageX, (*CPU).ldy},
	{"LDA", 0xB5, 2, 4, ZeroPageX, (*CPU).lda},
	{"LDX", 0xB6, 2, 4, ZeroPageY, (*CPU).ldx},
	{"LAX", 0xB7, 2, 4, ZeroPageY, (*CPU).lax},
	{"CLV", 0xB8, 1, 2, Implied, (*CPU).clv},
	{"LDA", 0xB9, 3, 4, AbsoluteY, (*CPU).lda},
	{"TSX", 0xBA, 1, 2, Implied, (*CPU).tsx},
	{"LAS", 0xBB, 3, 4, AbsoluteY, (*CPU).las},
	{"LDY", 0xBC, 3, 4, AbsoluteX, (*CPU).ldy},
	{"LDA", 0xBD, 3, 4, AbsoluteX, (*CPU).lda},
	{"LDX", 0xBE, 3, 4, AbsoluteY, (*CPU).ldx},
	{"LAX", 0xBF, 3, 4, AbsoluteY, (*CPU).lax},
	{"CPY", 0xC0, 2, 2, Immediate, (*CPU).cpy},
	{"CMP", 0xC1, 2, 6, IndexedIndirect, (*CPU).cmp},
	{"NOP", 0xC2, 2, 2, Immediate, (*CPU).nop},
	{"DCP", 0xC3, 2, 8, IndexedIndirect, (*CPU).dcp},
	{"CPY", 0xC4, 2, 3, ZeroPage, (*CPU).cpy},
	{"CMP", 0xC5, 2, 3, ZeroPage, (*CPU).cmp},
	{"DEC", 0xC6, 2, 5, ZeroPage, (*CPU).dec},
	{"DCP", 0xC7, 2, 5, ZeroPage, (*CPU).dcp},
	{"INY", 0xC8, 1, 2, Implied, (*CPU).iny},
	{"CMP", 0xC9, 2, 2, Immediate, (*CPU).cmp},
	{"DEX", 0xCA, 1, 2, Implied, (*CPU).dex},
	{"AXS", 0xCB, 2, 2, Immediate, (*CPU).axs},
	{"CPY", 0xCC, 3, 4, Absolute, (*CPU).cpy},
	{"CMP", 0xCD, 3, 4, Absolute, (*CPU).cmp},
	{"DEC", 0xCE, 3, 6, Absolute, (*CPU).dec},
	{"DCP", 0xCF, 3, 6, Absolute, (*CPU).dcp},
	{"BNE", 0xD0, 2, 2, Relative, (*CPU).bne},
	{"CMP", 0xD1, 2, 5, IndirectIndexed, (*CPU).cmp},
	{"JAM", 0xD2, 1, 2, Implied, (*CPU).jam},
	{"DCP", 0xD3, 2, 8, IndirectIndexed, (*CPU).dcp},
	{"NOP", 0xD4, 2, 4, ZeroPageX, (*CPU).nop},
	{"CMP", 0xD5, 2, 4, ZeroPageX, (*CPU).cmp},
	{"DEC", 0xD6, 2, 6, ZeroPageX, (*CPU).dec},
	{"DCP", 0xD7, 2, 6, ZeroPageX, (*CPU).dcp},
	{"CLD", 0xD8, 1, 2, Implied, (*CPU).cld},
	{"CMP", 0xD9, 3, 4, AbsoluteY, (*CPU).cmp},
	{"NOP", 0xDA, 1, 2, Implied, (*CPU).nop},
	{"DCP", 0xDB, 3, 7, AbsoluteY, (*CPU).dcp},
	{"NOP", 0xDC, 3, 4, AbsoluteX, (*CPU).nop},
	{"CMP", 0xDD, 3, 4, AbsoluteX, (*CPU).cmp},
	{"DEC", 0xDE, 3, 7, AbsoluteX, (*CPU).dec},
	{"DCP", 0xDF, 3, 7, AbsoluteX, (*CPU).dcp},
	{"CPX", 0xE0, 2, 2, Immediate, (*CPU).cpx},
	{"SBC", 0xE1, 2, 6, IndexedIndirect, (*CPU).sbc},
	{"NOP", 0xE2, 2, 2, Immediate, (*CPU).nop},
	{"ISB", 0xE3, 2, 8, IndexedIndirect, (*CPU).isb},
	{"CPX", 0xE4, 2, 3, ZeroPage, (*CPU).cpx},
	{"SBC", 0xE5, 2, 3, ZeroPage, (*CPU).sbc},
	{"INC", 0xE6, 2, 5, ZeroPage, (*CPU).inc},
	{"ISB", 0xE7, 2, 5, ZeroPage, (*CPU).isb},
	{"INX", 0xE8, 1, 2, Implied, (*CPU).inx},
	{"SBC", 0xE9, 2, 2, Immediate, (*CPU).sbc},
	{"NOP", 0xEA, 1, 2, Implied, (*CPU).nop},
	{"SBC", 0xEB, 2, 2, Immediate, (*CPU).sbc},
	{"CPX", 0xEC, 3, 4, Absolute, (*CPU).cpx},
	{"SBC", 0xED, 3, 4, Absolute, (*CPU).sbc},
	{"INC", 0xEE, 3, 6, Absolute, (*CPU).inc},
	{"ISB", 0xEF, 3, 6, Absolute, (*CPU).isb},
	{"BEQ", 0xF0, 2, 2, Relative, (*CPU).beq},
	{"SBC", 0xF1, 2, 5, IndirectIndexed, (*CPU).sbc},
	{"JAM", 0xF2, 1, 2, Implied, (*CPU).jam},
	{"ISB", 0xF3, 2, 8, IndirectIndexed, (*CPU).isb},
	{"NOP", 0xF4, 2, 4, ZeroPageX, (*CPU).nop},
	{"SBC", 0xF5, 2, 4, ZeroPageX, (*CPU).sbc},
	{"INC", 0xF6, 2, 6, ZeroPageX, (*CPU).inc},
	{"ISB", 0xF7, 2, 6, ZeroPageX, (*CPU).isb},
	{"SED", 0xF8, 1, 2, Implied, (*CPU).sed},
	{"SBC", 0xF9, 3, 4, AbsoluteY, (*CPU).sbc},
	{"NOP", 0xFA, 1, 2, Implied, (*CPU).nop},
	{"ISB", 0xFB, 3, 7, AbsoluteY, (*CPU).isb},
	{"NOP", 0xFC, 3, 4, AbsoluteX, (*CPU).nop},
	{"SBC", 0xFD, 3, 4, AbsoluteX, (*CPU).sbc},
	{"INC", 0xFE, 3, 7, AbsoluteX, (*CPU).inc},
	{"ISB", 0xFF, 3, 7, AbsoluteX, (*CPU).isb},
}
