package ppu

// renderCycle performs the memory fetches and register updates for one dot
// of a visible or pre-render line while rendering is enabled.
func (p *PPU) renderCycle(visible, preRender bool) {
	dot := p.dot

	if (dot >= 1 && dot <= 256) || (dot >= 321 && dot <= 336) {
		p.shiftBackground()
		switch dot % 8 {
		case 1:
			p.nametableByte = p.memory.Read(0x2000 | (p.v & 0x0FFF))
		case 3:
			p.fetchAttribute()
		case 5:
			p.patternLow = p.fetchPattern(p.backgroundAddress())
		case 7:
			p.patternHigh = p.fetchPattern(p.backgroundAddress() + 8)
		case 0:
			p.loadShifters()
			p.incrementX()
		}
	}

	switch {
	case dot == 256:
		p.incrementY()
	case dot == 257:
		p.copyX()
		p.spriteLine = [ScreenWidth]spritePixel{}
		if visible {
			p.evaluateSprites()
		} else {
			p.clearSecondaryOAM()
		}
	case preRender && dot >= 280 && dot <= 304:
		p.copyY()
	}

	if dot >= 257 && dot <= 320 {
		p.spriteFetch(dot - 257)
	}
}

func (p *PPU) fetchAttribute() {
	address := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	shift := ((p.v >> 4) & 4) | (p.v & 2)
	p.attributeBits = (p.memory.Read(address) >> shift) & 0x03
}

func (p *PPU) backgroundAddress() uint16 {
	var table uint16
	if p.ctrl&ctrlBackTable != 0 {
		table = 0x1000
	}
	fineY := (p.v >> 12) & 0x07
	return table + uint16(p.nametableByte)*16 + fineY
}

func (p *PPU) fetchPattern(address uint16) uint8 {
	if p.fetchCallback != nil {
		p.fetchCallback(address)
	}
	return p.memory.Read(address)
}

func (p *PPU) shiftBackground() {
	p.shiftLow <<= 1
	p.shiftHigh <<= 1
	p.attrShiftLow <<= 1
	p.attrShiftHigh <<= 1
}

func (p *PPU) loadShifters() {
	p.shiftLow = (p.shiftLow & 0xFF00) | uint16(p.patternLow)
	p.shiftHigh = (p.shiftHigh & 0xFF00) | uint16(p.patternHigh)
	var low, high uint16
	if p.attributeBits&1 != 0 {
		low = 0xFF
	}
	if p.attributeBits&2 != 0 {
		high = 0xFF
	}
	p.attrShiftLow = (p.attrShiftLow & 0xFF00) | low
	p.attrShiftHigh = (p.attrShiftHigh & 0xFF00) | high
}

// backgroundPixel returns the background palette index (0-15) at screen x.
// Zero means transparent.
func (p *PPU) backgroundPixel(x int) uint8 {
	if p.mask&maskShowBack == 0 || (x < 8 && p.mask&maskBackLeft == 0) {
		return 0
	}
	bit := 15 - uint16(p.x)
	pattern := uint8((p.shiftLow>>bit)&1) | uint8((p.shiftHigh>>bit)&1)<<1
	if pattern == 0 {
		return 0
	}
	palette := uint8((p.attrShiftLow>>bit)&1) | uint8((p.attrShiftHigh>>bit)&1)<<1
	return palette<<2 | pattern
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSprite16 != 0 {
		return 16
	}
	return 8
}

func (p *PPU) spriteInRange(y uint8, height int) bool {
	row := p.scanline - int(y)
	return row >= 0 && row < height
}

func (p *PPU) clearSecondaryOAM() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	p.spriteCount = 0
	p.spriteZeroNext = false
}

// evaluateSprites selects the sprites for the next scanline. The OAM y
// coordinate is one less than the first line a sprite appears on, so
// testing against the current line yields the next line's set.
func (p *PPU) evaluateSprites() {
	p.clearSecondaryOAM()
	height := p.spriteHeight()

	n := 0
	for ; n < 64 && p.spriteCount < 8; n++ {
		if !p.spriteInRange(p.oam[n*4], height) {
			continue
		}
		copy(p.secondaryOAM[p.spriteCount*4:], p.oam[n*4:n*4+4])
		if n == 0 {
			p.spriteZeroNext = true
		}
		p.spriteCount++
	}

	// After eight hits the hardware also steps the byte index m, so the
	// overflow check reads tile, attribute and x bytes as y coordinates.
	m := 0
	for ; n < 64; n++ {
		if p.spriteInRange(p.oam[n*4+m], height) {
			p.status |= statusOverflow
			return
		}
		m = (m + 1) & 3
	}
}

// spriteFetch runs one of the 64 sprite fetch dots (257-320). Each of the
// eight slots gets eight dots with the pattern bytes read on the fifth and
// seventh; empty slots fetch tile $FF so mappers still see the accesses.
func (p *PPU) spriteFetch(step int) {
	slot := step / 8
	switch step % 8 {
	case 4:
		p.spritePattern = p.fetchPattern(p.spriteAddress(slot))
	case 6:
		high := p.fetchPattern(p.spriteAddress(slot) + 8)
		if slot < p.spriteCount {
			p.placeSprite(slot, p.spritePattern, high)
		}
	}
}

func (p *PPU) spriteAddress(slot int) uint16 {
	entry := p.secondaryOAM[slot*4 : slot*4+4]
	tile := uint16(entry[1])
	attributes := entry[2]
	height := p.spriteHeight()

	row := 0
	if slot < p.spriteCount {
		row = p.scanline - int(entry[0])
	}
	if attributes&0x80 != 0 {
		row = height - 1 - row
	}

	var table uint16
	if height == 16 {
		table = (tile & 1) * 0x1000
		tile &= 0xFE
		if row > 7 {
			tile++
			row -= 8
		}
	} else if p.ctrl&ctrlSpriteTable != 0 {
		table = 0x1000
	}
	return table + tile*16 + uint16(row)
}

// placeSprite writes a fetched sprite row into the line buffer. Lower
// slots come from lower OAM indices, so an opaque pixel already present
// always wins.
func (p *PPU) placeSprite(slot int, low, high uint8) {
	entry := p.secondaryOAM[slot*4 : slot*4+4]
	attributes := entry[2]
	x := int(entry[3])

	for i := 0; i < 8; i++ {
		px := x + i
		if px >= ScreenWidth {
			break
		}
		bit := uint(7 - i)
		if attributes&0x40 != 0 {
			bit = uint(i)
		}
		pattern := (low>>bit)&1 | ((high>>bit)&1)<<1
		if pattern == 0 || p.spriteLine[px].opaque {
			continue
		}
		p.spriteLine[px] = spritePixel{
			color:  0x10 | (attributes&0x03)<<2 | pattern,
			opaque: true,
			behind: attributes&0x20 != 0,
			zero:   slot == 0 && p.spriteZeroNext,
		}
	}
}

// renderPixel composites background and sprite for the current dot
func (p *PPU) renderPixel() {
	x := p.dot - 1
	var color uint8

	if !p.renderingEnabled() {
		// With rendering off the backdrop shows, or the palette entry v
		// points at.
		address := uint16(0x3F00)
		if p.v&0x3F00 == 0x3F00 {
			address = p.v & 0x3F1F
		}
		color = p.memory.Read(address)
	} else {
		background := p.backgroundPixel(x)
		sprite := p.spriteLine[x]
		if p.mask&maskShowSprites == 0 || (x < 8 && p.mask&maskSpriteLeft == 0) {
			sprite = spritePixel{}
		}

		backOpaque := background&0x03 != 0
		if sprite.zero && sprite.opaque && backOpaque && x != 255 {
			p.status |= statusSpriteZero
		}

		var index uint8
		switch {
		case sprite.opaque && (!backOpaque || !sprite.behind):
			index = sprite.color
		case backOpaque:
			index = background
		}
		color = p.memory.Read(0x3F00 | uint16(index))
	}

	if p.mask&maskGrayscale != 0 {
		color &= 0x30
	}
	p.back[p.scanline*ScreenWidth+x] = nesColorPalette[color&0x3F]
}
