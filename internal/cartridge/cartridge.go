// Package cartridge implements iNES loading and the cartridge mappers.
package cartridge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"cyclenes/internal/memory"
)

const (
	headerSize  = 16
	trainerSize = 512
	prgBankSize = 0x4000
	chrBankSize = 0x2000
)

var (
	// ErrInvalidMagic is returned when the file does not start with "NES\x1A"
	ErrInvalidMagic = errors.New("invalid iNES magic")
	// ErrSizeMismatch is returned when the file size disagrees with the header
	ErrSizeMismatch = errors.New("file size does not match header")
	// ErrNoPRG is returned for images declaring zero PRG banks
	ErrNoPRG = errors.New("image has no PRG ROM")
	// ErrUnsupportedMapper is returned for mapper ids without an implementation
	ErrUnsupportedMapper = errors.New("unsupported mapper")
)

// iNES header structure
type iNESHeader struct {
	Magic      [4]uint8
	PRGROMSize uint8 // in 16KB units
	CHRROMSize uint8 // in 8KB units
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	TVSystem1  uint8
	TVSystem2  uint8
	Padding    [5]uint8
}

func (h *iNESHeader) mapperID() uint8 {
	return h.Flags6>>4 | h.Flags7&0xF0
}

func (h *iNESHeader) hasTrainer() bool {
	return h.Flags6&0x04 != 0
}

func (h *iNESHeader) mirroring() memory.MirrorMode {
	switch {
	case h.Flags6&0x08 != 0:
		return memory.MirrorFourScreen
	case h.Flags6&0x01 != 0:
		return memory.MirrorVertical
	}
	return memory.MirrorHorizontal
}

// Cartridge represents a NES cartridge: ROM contents plus the mapper that
// arbitrates access to them.
type Cartridge struct {
	prgROM []uint8
	chr    []uint8
	prgRAM [0x2000]uint8

	mapperID   uint8
	mapper     Mapper
	mirror     memory.MirrorMode
	hasBattery bool
	hasCHRRAM  bool
}

// LoadFromFile loads a cartridge from an iNES file
func LoadFromFile(filename string) (*Cartridge, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return LoadFromBytes(data)
}

// LoadFromReader loads a cartridge from an io.Reader
func LoadFromReader(r io.Reader) (*Cartridge, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates an iNES image
func LoadFromBytes(data []byte) (*Cartridge, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%d byte image: %w", len(data), ErrSizeMismatch)
	}

	var header iNESHeader
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.Magic[:]) != "NES\x1A" {
		return nil, fmt.Errorf("got % X: %w", header.Magic, ErrInvalidMagic)
	}
	if header.PRGROMSize == 0 {
		return nil, ErrNoPRG
	}

	prgSize := int(header.PRGROMSize) * prgBankSize
	chrSize := int(header.CHRROMSize) * chrBankSize
	offset := headerSize
	if header.hasTrainer() {
		offset += trainerSize
	}
	if want := offset + prgSize + chrSize; len(data) != want {
		return nil, fmt.Errorf("header declares %d bytes, image has %d: %w", want, len(data), ErrSizeMismatch)
	}

	cart := &Cartridge{
		mapperID:   header.mapperID(),
		mirror:     header.mirroring(),
		hasBattery: header.Flags6&0x02 != 0,
		prgROM:     append([]uint8(nil), data[offset:offset+prgSize]...),
	}
	offset += prgSize

	if chrSize > 0 {
		cart.chr = append([]uint8(nil), data[offset:offset+chrSize]...)
	} else {
		cart.chr = make([]uint8, chrBankSize)
		cart.hasCHRRAM = true
	}

	mapper, err := createMapper(cart.mapperID, cart)
	if err != nil {
		return nil, err
	}
	cart.mapper = mapper

	chrKind := "ROM"
	if cart.hasCHRRAM {
		chrKind = "RAM"
	}
	glog.Infof("[CARTRIDGE] mapper %d (%s), PRG %dKB, CHR %s %dKB, %s mirroring",
		cart.mapperID, mapperName(cart.mapperID), prgSize/1024, chrKind, len(cart.chr)/1024, cart.mirror)
	return cart, nil
}

// ReadPRG reads the CPU cartridge space ($4020-$FFFF)
func (c *Cartridge) ReadPRG(address uint16) uint8 {
	return c.mapper.ReadPRG(address)
}

// WritePRG writes the CPU cartridge space ($4020-$FFFF)
func (c *Cartridge) WritePRG(address uint16, value uint8) {
	c.mapper.WritePRG(address, value)
}

// ReadCHR reads the PPU pattern table space ($0000-$1FFF)
func (c *Cartridge) ReadCHR(address uint16) uint8 {
	return c.mapper.ReadCHR(address)
}

// WriteCHR writes the PPU pattern table space; ignored for CHR ROM
func (c *Cartridge) WriteCHR(address uint16, value uint8) {
	c.mapper.WriteCHR(address, value)
}

// Mirroring returns the current nametable arrangement
func (c *Cartridge) Mirroring() memory.MirrorMode {
	return c.mapper.Mirroring()
}

// OnPPUAddressFetch reports a PPU pattern fetch address to the mapper
func (c *Cartridge) OnPPUAddressFetch(address uint16) {
	c.mapper.OnPPUAddressFetch(address)
}

// Tick advances mapper-local timing by one CPU cycle
func (c *Cartridge) Tick() {
	c.mapper.Tick()
}

// SetIRQCallback connects the mapper's IRQ line
func (c *Cartridge) SetIRQCallback(callback func(bool)) {
	c.mapper.SetIRQCallback(callback)
}

// Reset returns the mapper to its power-on bank configuration
func (c *Cartridge) Reset() {
	c.mapper.Reset()
}

// MapperID returns the iNES mapper number
func (c *Cartridge) MapperID() uint8 {
	return c.mapperID
}

// HasBattery reports whether PRG RAM is battery backed
func (c *Cartridge) HasBattery() bool {
	return c.hasBattery
}

// HasCHRRAM reports whether pattern memory is writable
func (c *Cartridge) HasCHRRAM() bool {
	return c.hasCHRRAM
}

// PRGRAMSize is the size of the $6000-$7FFF work RAM
const PRGRAMSize = 0x2000

// ErrRAMSize is returned when restoring PRG RAM from an image of the wrong size
var ErrRAMSize = errors.New("PRG RAM image has wrong size")

// SaveRAM returns a copy of the PRG RAM contents
func (c *Cartridge) SaveRAM() []uint8 {
	ram := make([]uint8, PRGRAMSize)
	copy(ram, c.prgRAM[:])
	return ram
}

// LoadRAM restores PRG RAM from a previously saved image
func (c *Cartridge) LoadRAM(data []uint8) error {
	if len(data) != PRGRAMSize {
		return fmt.Errorf("%d bytes: %w", len(data), ErrRAMSize)
	}
	copy(c.prgRAM[:], data)
	return nil
}
