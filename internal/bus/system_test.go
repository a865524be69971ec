package bus

import (
	"testing"

	"cyclenes/internal/cartridge"
	"cyclenes/internal/ppu"
)

// renderROM waits for vblank, loads palette entries, places sprite 0 at
// (64,32) through OAM DMA and enables background and sprite rendering.
// CHR tile 0 and tile 1 are solid colour 1.
func renderROM() *cartridge.TestROMBuilder {
	code := []uint8{
		0xAD, 0x02, 0x20, // LDA $2002
		0x10, 0xFB, //       BPL $8000
		0xA9, 0x3F, 0x8D, 0x06, 0x20, // $2006 = $3F
		0xA9, 0x00, 0x8D, 0x06, 0x20, // $2006 = $00
		0xA9, 0x21, 0x8D, 0x07, 0x20, // $3F00 = $21
		0xA9, 0x16, 0x8D, 0x07, 0x20, // $3F01 = $16
		0xA9, 0x3F, 0x8D, 0x06, 0x20, // $2006 = $3F
		0xA9, 0x11, 0x8D, 0x06, 0x20, // $2006 = $11
		0xA9, 0x2A, 0x8D, 0x07, 0x20, // $3F11 = $2A
		0xA9, 0x20, 0x8D, 0x00, 0x02, // OAM Y
		0xA9, 0x01, 0x8D, 0x01, 0x02, // OAM tile
		0xA9, 0x00, 0x8D, 0x02, 0x02, // OAM attributes
		0xA9, 0x40, 0x8D, 0x03, 0x02, // OAM X
		0xA9, 0x02, 0x8D, 0x14, 0x40, // OAM DMA from $0200
		0xA9, 0x00, 0x8D, 0x00, 0x20, // $2000 = 0
		0x8D, 0x05, 0x20, // scroll X = 0
		0x8D, 0x05, 0x20, // scroll Y = 0
		0xA9, 0x1E, 0x8D, 0x01, 0x20, // show background and sprites
		0x4C, 0x51, 0x80, // JMP $8051
	}
	return cartridge.NewTestROMBuilder().
		WithFill(func(prg, chr []uint8) {
			for i := 0; i < 8; i++ {
				chr[i] = 0xFF    // tile 0, plane 0
				chr[16+i] = 0xFF // tile 1, plane 0
			}
		}).
		WithCode(0x8000, code...)
}

// argb is the opaque framebuffer value of a palette colour
func argb(index uint8) uint32 {
	return 0xFF000000 | ppu.ColorToRGB(index)
}

func TestRenderedFrame(t *testing.T) {
	b := newTestBus(t, renderROM())

	var frames int
	b.SetFrameCallback(func(*ppu.Frame) { frames++ })
	b.Run(4)
	if frames != 4 {
		t.Fatalf("Expected 4 frame callbacks, got %d", frames)
	}
	if b.CPU.PC != 0x8051 {
		t.Fatalf("Program did not reach its idle loop, PC=%04X", b.CPU.PC)
	}

	frame := b.FrameBuffer()
	background := argb(0x16)
	sprite := argb(0x2A)
	pixel := func(x, y int) uint32 { return frame[y*ppu.ScreenWidth+x] }

	tests := []struct {
		name string
		x, y int
		want uint32
	}{
		{"top line", 128, 0, background},
		{"centre", 128, 120, background},
		{"bottom right", 255, 239, background},
		{"sprite top left", 64, 33, sprite},
		{"sprite bottom right", 71, 40, sprite},
		{"right of sprite", 72, 33, background},
		{"above sprite", 64, 32, background},
		{"below sprite", 64, 41, background},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pixel(tt.x, tt.y); got != tt.want {
				t.Errorf("Pixel (%d,%d) = %08X, want %08X", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderingDisabledShowsBackdrop(t *testing.T) {
	b := newTestBus(t, loopROM())
	b.Run(2)

	backdrop := argb(0x0F)
	for i, pixel := range b.FrameBuffer() {
		if pixel != backdrop {
			t.Fatalf("Pixel %d = %08X, want backdrop %08X", i, pixel, backdrop)
		}
	}
}
