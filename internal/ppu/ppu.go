// Package ppu implements the Picture Processing Unit for the NES.
//
// The PPU is advanced one dot at a time by Step. Its state is the
// (scanline, dot) position plus the loopy v/t/x/w scroll registers, the
// background shift registers and a one-line sprite buffer built during
// the previous line's sprite fetches.
package ppu

import (
	"github.com/golang/glog"
)

const (
	ScreenWidth  = 256
	ScreenHeight = 240

	dotsPerLine   = 341
	vblankLine    = 241
	preRenderLine = 261
)

// Register bits
const (
	ctrlIncrement32 = 0x04
	ctrlSpriteTable = 0x08
	ctrlBackTable   = 0x10
	ctrlSprite16    = 0x20
	ctrlNMIEnable   = 0x80

	maskGrayscale   = 0x01
	maskBackLeft    = 0x02
	maskSpriteLeft  = 0x04
	maskShowBack    = 0x08
	maskShowSprites = 0x10

	statusOverflow   = 0x20
	statusSpriteZero = 0x40
	statusVBlank     = 0x80
	statusFlags      = statusVBlank | statusSpriteZero | statusOverflow
)

// Frame is one picture of ARGB pixels
type Frame [ScreenWidth * ScreenHeight]uint32

// Memory is the PPU's view of its 14-bit address space
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// spritePixel is one entry of the sprite line buffer
type spritePixel struct {
	color  uint8 // palette index $10-$1F
	opaque bool
	behind bool
	zero   bool
}

// PPU represents the NES Picture Processing Unit (2C02)
type PPU struct {
	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8
	openBus uint8

	// Loopy registers
	v uint16 // current VRAM address
	t uint16 // temporary VRAM address
	x uint8  // fine X scroll
	w bool   // write toggle

	readBuffer uint8
	memory     Memory

	scanline       int
	dot            int
	frameCount     uint64
	oddFrame       bool
	suppressVBlank bool
	cycleCount     uint64

	// Background pipeline
	nametableByte uint8
	attributeBits uint8
	patternLow    uint8
	patternHigh   uint8
	shiftLow      uint16
	shiftHigh     uint16
	attrShiftLow  uint16
	attrShiftHigh uint16

	// Sprites
	oam            [256]uint8
	secondaryOAM   [32]uint8
	spriteCount    int
	spriteZeroNext bool
	spritePattern  uint8
	spriteLine     [ScreenWidth]spritePixel

	front *Frame
	back  *Frame

	nmiCallback           func()
	frameCompleteCallback func(*Frame)
	fetchCallback         func(uint16)
}

// New creates a new PPU instance
func New() *PPU {
	p := &PPU{
		front: new(Frame),
		back:  new(Frame),
	}
	p.Reset()
	return p
}

// Reset returns the PPU to its power-up state at the top of a frame
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.openBus = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.scanline = 0
	p.dot = 0
	p.frameCount = 0
	p.oddFrame = false
	p.suppressVBlank = false
	p.cycleCount = 0
	p.shiftLow, p.shiftHigh = 0, 0
	p.attrShiftLow, p.attrShiftHigh = 0, 0
	p.spriteCount = 0
	p.spriteZeroNext = false
	p.spriteLine = [ScreenWidth]spritePixel{}
	p.oam = [256]uint8{}
}

// SetMemory sets the PPU memory interface
func (p *PPU) SetMemory(memory Memory) {
	p.memory = memory
}

// SetNMICallback sets the function called when the PPU asserts NMI
func (p *PPU) SetNMICallback(callback func()) {
	p.nmiCallback = callback
}

// SetFrameCompleteCallback sets the function receiving each finished frame
func (p *PPU) SetFrameCompleteCallback(callback func(*Frame)) {
	p.frameCompleteCallback = callback
}

// SetFetchCallback sets the function told about every pattern table
// address fetched while rendering.
func (p *PPU) SetFetchCallback(callback func(uint16)) {
	p.fetchCallback = callback
}

// Step advances the PPU by one dot
func (p *PPU) Step() {
	p.advance()
	p.cycleCount++

	visible := p.scanline < ScreenHeight
	preRender := p.scanline == preRenderLine

	if visible && p.dot >= 1 && p.dot <= ScreenWidth {
		p.renderPixel()
	}
	if p.renderingEnabled() && (visible || preRender) {
		p.renderCycle(visible, preRender)
	}

	if p.dot == 1 {
		switch p.scanline {
		case vblankLine:
			p.enterVBlank()
		case preRenderLine:
			p.startFrame()
		}
	}
}

func (p *PPU) advance() {
	// Odd frames are one dot shorter while rendering
	if p.scanline == preRenderLine && p.dot == 339 && p.oddFrame && p.renderingEnabled() {
		p.dot = 340
	}
	p.dot++
	if p.dot < dotsPerLine {
		return
	}
	p.dot = 0
	p.scanline++
	if p.scanline > preRenderLine {
		p.scanline = 0
		p.frameCount++
		p.oddFrame = !p.oddFrame
	}
}

func (p *PPU) enterVBlank() {
	if !p.suppressVBlank {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.raiseNMI()
		}
	}
	p.suppressVBlank = false
}

// startFrame clears the status flags and hands the finished picture over
func (p *PPU) startFrame() {
	p.status &^= statusFlags
	p.front, p.back = p.back, p.front
	if glog.V(2) {
		glog.Infof("[PPU] frame %d complete", p.frameCount)
	}
	if p.frameCompleteCallback != nil {
		p.frameCompleteCallback(p.front)
	}
}

func (p *PPU) raiseNMI() {
	if p.nmiCallback != nil {
		p.nmiCallback()
	}
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBack|maskShowSprites) != 0
}

// FrameBuffer returns the most recently completed frame
func (p *PPU) FrameBuffer() *Frame {
	return p.front
}

// GetFrameCount returns the number of frames started since reset
func (p *PPU) GetFrameCount() uint64 {
	return p.frameCount
}

// GetScanline returns the current scanline (0-261)
func (p *PPU) GetScanline() int {
	return p.scanline
}

// GetCycle returns the current dot (0-340)
func (p *PPU) GetCycle() int {
	return p.dot
}

// GetCycleCount returns the number of dots since reset
func (p *PPU) GetCycleCount() uint64 {
	return p.cycleCount
}

// IsVBlank reports whether the vblank flag is set
func (p *PPU) IsVBlank() bool {
	return p.status&statusVBlank != 0
}

// IsRenderingEnabled reports whether background or sprites are shown
func (p *PPU) IsRenderingEnabled() bool {
	return p.renderingEnabled()
}
