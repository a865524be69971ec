package cpu

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestNMISequence(t *testing.T) {
	h := NewCPUTestHelper()
	h.Memory.SetBytes(nmiVector, 0x00, 0x90)
	h.CPU.C = true

	h.CPU.NMI()
	if got := h.CPU.Cycles() - 7; got != 7 {
		t.Errorf("NMI took %d cycles, want 7", got)
	}
	if h.CPU.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000", h.CPU.PC)
	}
	if !h.CPU.I {
		t.Error("I flag not set by NMI")
	}
	pushed := h.Memory.data[0x01FB]
	if pushed&bFlagMask != 0 || pushed&unusedMask == 0 || pushed&cFlagMask == 0 {
		t.Errorf("pushed status %02X: want B clear, bit 5 and C set", pushed)
	}
	if h.Memory.data[0x01FD] != 0x02 || h.Memory.data[0x01FC] != 0x00 {
		t.Errorf("pushed PC %02X%02X, want 0200", h.Memory.data[0x01FD], h.Memory.data[0x01FC])
	}
}

func TestIRQRespectsInterruptDisable(t *testing.T) {
	h := NewCPUTestHelper()
	h.Memory.SetBytes(irqVector, 0x00, 0xA0)

	start := h.CPU.Cycles()
	h.CPU.IRQ()
	if h.CPU.Cycles() != start || h.CPU.PC != 0x0200 {
		t.Fatal("IRQ serviced with I set")
	}

	h.LoadProgram(0x58) // CLI
	h.Run(1)
	start = h.CPU.Cycles()
	h.CPU.IRQ()
	if h.CPU.Cycles()-start != 7 || h.CPU.PC != 0xA000 {
		t.Errorf("IRQ: %d cycles, PC=%04X", h.CPU.Cycles()-start, h.CPU.PC)
	}
}

func TestBRKAndRTI(t *testing.T) {
	h := NewCPUTestHelper()
	h.Memory.SetBytes(irqVector, 0x00, 0xA0)
	h.Memory.SetBytes(0xA000, 0x40) // RTI
	h.CPU.I = false
	h.LoadProgram(0x00, 0xFF, 0xEA) // BRK, padding, NOP

	h.Run(1)
	if h.CPU.PC != 0xA000 || !h.CPU.I {
		t.Fatalf("BRK: PC=%04X I=%v", h.CPU.PC, h.CPU.I)
	}
	if pushed := h.Memory.data[0x01FB]; pushed&bFlagMask == 0 {
		t.Errorf("BRK pushed status %02X without B", pushed)
	}

	h.Run(1)
	if h.CPU.PC != 0x0202 || h.CPU.I {
		t.Errorf("RTI: PC=%04X I=%v, want 0202 and I clear", h.CPU.PC, h.CPU.I)
	}
}

func TestPHPSetsBreakBits(t *testing.T) {
	h := NewCPUTestHelper()
	h.LoadProgram(0x08, 0x28) // PHP, PLP
	h.Run(1)
	if got := h.Memory.data[0x01FD]; got&0x30 != 0x30 {
		t.Errorf("PHP pushed %02X, want bits 4 and 5 set", got)
	}
	if c := h.Run(1); c != 4 {
		t.Errorf("PLP took %d cycles, want 4", c)
	}
}

// TestFunctional runs Klaus Dormann's 6502 functional test, assembled with
// decimal mode tests disabled, when the image is present in testdata.
func TestFunctional(t *testing.T) {
	image, err := os.ReadFile(filepath.Join("testdata", "6502_functional_test.bin"))
	if err != nil {
		t.Skip("testdata/6502_functional_test.bin not present, see testdata/README.md")
	}

	const start = 0x0400
	success := uint16(0x3469)
	if env := os.Getenv("CPU_FUNCTIONAL_SUCCESS"); env != "" {
		address, err := strconv.ParseUint(env, 16, 16)
		if err != nil {
			t.Fatalf("CPU_FUNCTIONAL_SUCCESS=%q: %v", env, err)
		}
		success = uint16(address)
	}

	memory := NewMockMemory()
	copy(memory.data[:], image)
	cpu := New(memory)
	cpu.PC = start

	for cpu.Cycles() < 100_000_000 {
		pc := cpu.PC
		cpu.Step()
		memory.ClearLog()
		if cpu.PC == pc {
			break
		}
	}

	if cpu.PC != success {
		t.Fatalf("trapped at $%04X, want $%04X (test number $%02X)", cpu.PC, success, memory.data[0x0200])
	}
}
