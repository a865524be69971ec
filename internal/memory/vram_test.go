package memory

import (
	"testing"
)

// physicalBank returns the 1KB bank each quadrant uses on a board with 2KB
// of nametable RAM (four-screen boards supply the other two).
var physicalBank = map[MirrorMode][4]uint16{
	MirrorHorizontal:    {0, 0, 1, 1},
	MirrorVertical:      {0, 1, 0, 1},
	MirrorSingleScreen0: {0, 0, 0, 0},
	MirrorSingleScreen1: {1, 1, 1, 1},
	MirrorFourScreen:    {0, 1, 2, 3},
}

func TestNametableOffset_AllAddresses(t *testing.T) {
	for mode, banks := range physicalBank {
		t.Run(mode.String(), func(t *testing.T) {
			for addr := uint16(0x2000); addr < 0x3000; addr++ {
				quadrant := (addr - 0x2000) / 0x400
				want := banks[quadrant]*0x400 + addr&0x3FF
				if got := NametableOffset(mode, addr); got != want {
					t.Fatalf("NametableOffset(%s, %04X) = %04X, want %04X", mode, addr, got, want)
				}
				// $3000-$3EFF mirrors $2000-$2EFF
				if addr < 0x2F00 {
					if got := NametableOffset(mode, addr+0x1000); got != want {
						t.Fatalf("NametableOffset(%s, %04X) = %04X, want %04X", mode, addr+0x1000, got, want)
					}
				}
			}
		})
	}
}

func TestPPUMemory_NametableFollowsCartridge(t *testing.T) {
	cart := &MockCartridge{mirror: MirrorVertical}
	pm := NewPPUMemory(cart)

	pm.Write(0x2000, 0x11)
	if got := pm.Read(0x2800); got != 0x11 {
		t.Errorf("vertical: Read(2800) = %02X, want 11", got)
	}
	if got := pm.Read(0x2400); got == 0x11 {
		t.Errorf("vertical: $2400 must not alias $2000")
	}

	cart.mirror = MirrorHorizontal
	if got := pm.Read(0x2400); got != 0x11 {
		t.Errorf("horizontal: Read(2400) = %02X, want 11", got)
	}
}

func TestPPUMemory_PaletteMirroring(t *testing.T) {
	pm := NewPPUMemory(&MockCartridge{})

	pairs := [][2]uint16{
		{0x3F10, 0x3F00},
		{0x3F14, 0x3F04},
		{0x3F18, 0x3F08},
		{0x3F1C, 0x3F0C},
		{0x3F25, 0x3F05},
		{0x3FFF, 0x3F1F},
	}
	for i, p := range pairs {
		value := uint8(0x20 + i)
		pm.Write(p[0], value)
		if got := pm.Read(p[1]); got != value {
			t.Errorf("Write(%04X) then Read(%04X) = %02X, want %02X", p[0], p[1], got, value)
		}
	}

	pm.Write(0x3F11, 0x2A)
	if got := pm.Read(0x3F01); got == 0x2A {
		t.Errorf("$3F11 must not alias $3F01")
	}
}

func TestPPUMemory_PatternTablesGoToCartridge(t *testing.T) {
	cart := &MockCartridge{}
	pm := NewPPUMemory(cart)

	pm.Write(0x1234, 0x99)
	if cart.chr[0x1234] != 0x99 {
		t.Errorf("CHR write not routed to cartridge")
	}
	if got := pm.Read(0x5234); got != 0x99 {
		t.Errorf("Read(5234) = %02X, want 99 (14-bit address space)", got)
	}
}
