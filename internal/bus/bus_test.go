package bus

import (
	"testing"

	"cyclenes/internal/apu"
	"cyclenes/internal/cartridge"
	"cyclenes/internal/input"
	"cyclenes/internal/ppu"
)

func newTestBus(t *testing.T, builder *cartridge.TestROMBuilder) *Bus {
	t.Helper()
	cart, err := builder.BuildCartridge()
	if err != nil {
		t.Fatalf("Failed to build cartridge: %v", err)
	}
	b := New()
	b.LoadCartridge(cart)
	return b
}

func loopROM() *cartridge.TestROMBuilder {
	return cartridge.NewTestROMBuilder().
		WithCode(0x8000, 0x4C, 0x00, 0x80) // JMP $8000
}

func TestResetSequence(t *testing.T) {
	b := newTestBus(t, loopROM())

	if b.CPU.PC != 0x8000 {
		t.Errorf("Expected PC=8000 after reset, got %04X", b.CPU.PC)
	}
	if b.Cycles() != 7 {
		t.Errorf("Reset should take 7 cycles, got %d", b.Cycles())
	}
	if b.PPU.GetCycleCount() != 21 {
		t.Errorf("Reset should clock the PPU 21 dots, got %d", b.PPU.GetCycleCount())
	}
}

func TestClockRatio(t *testing.T) {
	b := newTestBus(t, loopROM())

	b.RunCycles(10000)
	if b.PPU.GetCycleCount() != 3*b.Cycles() {
		t.Errorf("PPU dots %d should be three times CPU cycles %d", b.PPU.GetCycleCount(), b.Cycles())
	}
	if b.APU.Cycles() != b.Cycles() {
		t.Errorf("APU cycles %d should match CPU cycles %d", b.APU.Cycles(), b.Cycles())
	}
	if b.Step() != 3 {
		t.Error("JMP absolute should take 3 cycles")
	}
}

func TestOAMDMA(t *testing.T) {
	tests := []struct {
		name     string
		code     []uint8
		expected uint64
	}{
		// LDA #$02; STA $4014; NOP
		{"even start", []uint8{0xA9, 0x02, 0x8D, 0x14, 0x40, 0xEA}, 513},
		// LDA $10; STA $4014; NOP
		{"odd start", []uint8{0xA5, 0x10, 0x8D, 0x14, 0x40, 0xEA}, 514},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBus(t, cartridge.NewTestROMBuilder().WithCode(0x8000, tt.code...))
			b.Memory.Write(0x0010, 0x02)
			for i := 0; i < 256; i++ {
				b.Memory.Write(0x0200+uint16(i), uint8(i))
			}

			b.Step()
			b.Step()
			if !b.oamDMAPending {
				t.Fatal("$4014 write should schedule OAM DMA")
			}
			if cycles := b.Step(); cycles != 2+tt.expected {
				t.Errorf("Expected NOP plus %d DMA cycles, got %d", tt.expected, cycles)
			}

			for i := 0; i < 256; i++ {
				b.PPU.WriteRegister(0x2003, uint8(i))
				expected := uint8(i)
				if i&3 == 2 {
					expected &= 0xE3
				}
				if got := b.PPU.ReadRegister(0x2004); got != expected {
					t.Fatalf("OAM[%d]: expected %02X, got %02X", i, expected, got)
				}
			}
		})
	}
}

func TestDMCDMA(t *testing.T) {
	tests := []struct {
		name     string
		preReads int
		stolen   uint64
	}{
		{"odd cycle", 0, 4},
		{"even cycle", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBus(t, loopROM())
			for i := 0; i < tt.preReads; i++ {
				b.Read(0x0000)
			}

			b.APU.WriteRegister(0x4012, 0x00)
			b.APU.WriteRegister(0x4013, 0x00)
			b.APU.WriteRegister(0x4015, 0x10)
			if _, pending := b.APU.DMCRequest(); !pending {
				t.Fatal("Enabling DMC should request a sample byte")
			}

			start := b.Cycles()
			b.Read(0x0000)
			if got := b.Cycles() - start; got != 1+tt.stolen {
				t.Errorf("Expected 1 access plus %d stolen cycles, got %d", tt.stolen, got)
			}
			if _, pending := b.APU.DMCRequest(); pending {
				t.Error("DMC request should be satisfied")
			}
		})
	}
}

func TestNMIDelivery(t *testing.T) {
	rom := cartridge.NewTestROMBuilder().
		WithCode(0x8000,
			0xA9, 0x80, // LDA #$80
			0x8D, 0x00, 0x20, // STA $2000
			0x4C, 0x05, 0x80, // JMP $8005
		).
		WithCode(0x9000,
			0xE6, 0x10, // INC $10
			0x40, // RTI
		).
		WithNMIVector(0x9000)
	b := newTestBus(t, rom)

	frames := 0
	b.SetFrameCallback(func(_ *ppu.Frame) { frames++ })
	b.Run(3)

	if count := b.Memory.PeekRAM(0x10); count != 3 {
		t.Errorf("Expected 3 NMIs, got %d", count)
	}
	if frames != 3 {
		t.Errorf("Expected 3 frame callbacks, got %d", frames)
	}
	if b.FrameCount() != 3 {
		t.Errorf("Expected frame count 3, got %d", b.FrameCount())
	}
}

func TestFrameIRQDelivery(t *testing.T) {
	rom := cartridge.NewTestROMBuilder().
		WithCode(0x8000,
			0x58,             // CLI
			0x4C, 0x01, 0x80, // JMP $8001
		).
		WithCode(0x9100,
			0xAD, 0x15, 0x40, // LDA $4015
			0xE6, 0x11, // INC $11
			0x40, // RTI
		).
		WithIRQVector(0x9100)
	b := newTestBus(t, rom)

	b.RunCycles(40000)
	if count := b.Memory.PeekRAM(0x11); count != 1 {
		t.Errorf("Expected one frame IRQ, got %d", count)
	}
	if b.IRQAsserted() {
		t.Error("Reading $4015 should release the frame IRQ")
	}
}

func TestIRQAggregation(t *testing.T) {
	b := newTestBus(t, loopROM())

	b.setIRQ(irqMapper, true)
	b.setIRQ(irqFrame, true)
	b.setIRQ(irqMapper, false)
	if !b.IRQAsserted() {
		t.Error("Frame IRQ should keep the line asserted")
	}
	b.handleAPUIRQ(apu.IRQDMC, true)
	b.setIRQ(irqFrame, false)
	if !b.IRQAsserted() {
		t.Error("DMC IRQ should keep the line asserted")
	}
	b.handleAPUIRQ(apu.IRQDMC, false)
	if b.IRQAsserted() {
		t.Error("Line should be released once every source is clear")
	}
}

func TestIRQMaskedByIFlag(t *testing.T) {
	b := newTestBus(t, loopROM())
	b.setIRQ(irqMapper, true)

	sp := b.CPU.SP
	if cycles := b.Step(); cycles != 3 || b.CPU.SP != sp {
		t.Errorf("IRQ taken with I set: cycles=%d SP=%02X", cycles, b.CPU.SP)
	}

	b.CPU.I = false
	if cycles := b.Step(); cycles != 7 {
		t.Errorf("IRQ sequence should take 7 cycles, got %d", cycles)
	}
	if b.CPU.SP != sp-3 || !b.CPU.I || b.CPU.PC != 0x8000 {
		t.Errorf("After IRQ: SP=%02X I=%v PC=%04X", b.CPU.SP, b.CPU.I, b.CPU.PC)
	}
}

func TestControllerThroughBus(t *testing.T) {
	b := newTestBus(t, loopROM())
	b.SetButtons(1, input.ButtonA|input.ButtonSelect)

	b.Write(0x4016, 1)
	b.Write(0x4016, 0)
	expected := []uint8{0x41, 0x40, 0x41, 0x40}
	for i, want := range expected {
		if got := b.Read(0x4016); got != want {
			t.Errorf("Read %d: expected %02X, got %02X", i, want, got)
		}
	}
}

func TestMapperScanlineIRQ(t *testing.T) {
	rom := cartridge.NewTestROMBuilder().
		WithMapper(4).
		WithPRGSize(2).
		WithCode(0x8000, 0x4C, 0x00, 0x80)
	b := newTestBus(t, rom)

	b.Memory.Write(0xC000, 10) // latch
	b.Memory.Write(0xC001, 0)  // reload
	b.Memory.Write(0xE001, 0)  // enable
	b.PPU.WriteRegister(0x2000, 0x08)
	b.PPU.WriteRegister(0x2001, 0x18)

	// One A12 rise per rendered line: the first reloads, ten more reach zero
	b.RunCycles(1100)
	if b.IRQAsserted() {
		t.Fatalf("Mapper IRQ asserted early at scanline %d", b.PPU.GetScanline())
	}
	b.RunCycles(300)
	if !b.IRQAsserted() {
		t.Errorf("Mapper IRQ should be asserted by scanline %d", b.PPU.GetScanline())
	}

	b.Memory.Write(0xE000, 0) // disable and acknowledge
	if b.IRQAsserted() {
		t.Error("Writing $E000 should release the mapper IRQ")
	}
}
