package ppu

// ReadRegister reads a PPU register ($2000-$2007, mirrored every 8 bytes)
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address & 0x7 {
	case 2:
		return p.readStatus()
	case 4:
		value := p.oam[p.oamAddr]
		// Attribute bytes have no storage for bits 2-4
		if p.oamAddr&3 == 2 {
			value &= 0xE3
		}
		p.openBus = value
		return value
	case 7:
		return p.readData()
	}
	// Write-only registers return the last value seen on the PPU bus
	return p.openBus
}

func (p *PPU) readStatus() uint8 {
	result := p.status&statusFlags | p.openBus&0x1F
	p.status &^= statusVBlank
	p.w = false

	// Reading one dot before vblank hides the flag for the whole frame
	if p.scanline == vblankLine && p.dot == 0 {
		p.suppressVBlank = true
	}
	p.openBus = result
	return result
}

func (p *PPU) readData() uint8 {
	address := p.v & 0x3FFF
	var result uint8
	if address < 0x3F00 {
		result = p.readBuffer
		p.readBuffer = p.memory.Read(address)
	} else {
		// Palette reads bypass the buffer, which picks up the nametable below
		result = p.memory.Read(address)&0x3F | p.openBus&0xC0
		p.readBuffer = p.memory.Read(address - 0x1000)
	}
	p.incrementAddress()
	p.openBus = result
	return result
}

// WriteRegister writes a PPU register ($2000-$2007, mirrored every 8 bytes)
func (p *PPU) WriteRegister(address uint16, value uint8) {
	p.openBus = value

	switch address & 0x7 {
	case 0:
		wasEnabled := p.ctrl&ctrlNMIEnable != 0
		p.ctrl = value
		p.t = (p.t & 0xF3FF) | (uint16(value&0x03) << 10)
		if !wasEnabled && value&ctrlNMIEnable != 0 && p.status&statusVBlank != 0 {
			p.raiseNMI()
		}
	case 1:
		p.mask = value
	case 3:
		p.oamAddr = value
	case 4:
		p.WriteOAM(value)
	case 5:
		if !p.w {
			p.t = (p.t & 0xFFE0) | uint16(value>>3)
			p.x = value & 0x07
		} else {
			p.t = (p.t & 0x8C1F) | (uint16(value&0x07) << 12) | (uint16(value&0xF8) << 2)
		}
		p.w = !p.w
	case 6:
		if !p.w {
			p.t = (p.t & 0x00FF) | (uint16(value&0x3F) << 8)
		} else {
			p.t = (p.t & 0xFF00) | uint16(value)
			p.v = p.t
		}
		p.w = !p.w
	case 7:
		p.memory.Write(p.v&0x3FFF, value)
		p.incrementAddress()
	}
}

// WriteOAM stores a byte at OAMADDR and advances it. OAM DMA uses this.
func (p *PPU) WriteOAM(value uint8) {
	p.oam[p.oamAddr] = value
	p.oamAddr++
}

func (p *PPU) incrementAddress() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

// incrementX increments the coarse X scroll, switching horizontal nametable
func (p *PPU) incrementX() {
	if (p.v & 0x001F) == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY increments the fine Y scroll, carrying into coarse Y
func (p *PPU) incrementY() {
	if (p.v & 0x7000) != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

// copyX copies horizontal bits from t to v
func (p *PPU) copyX() {
	p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
}

// copyY copies vertical bits from t to v
func (p *PPU) copyY() {
	p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
}
