// Package mappers implements cartridge address-space wiring for the
// mapper numbers referenced by iNES ROM headers. Only NROM (mapper 0)
// is implemented; anything else fails at cartridge.Parse time.
package mappers

import (
	"fmt"

	"github.com/nescore/nesgo/cartridge"
)

// Mapper translates CPU/PPU addresses into offsets within a
// cartridge's PRG/CHR banks.
type Mapper interface {
	// PrgRead/PrgWrite address the CPU's $8000-$FFFF window.
	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	// ChrRead/ChrWrite address the PPU's $0000-$1FFF pattern tables.
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	MirroringMode() cartridge.Mirroring
	HasSaveRAM() bool
}

// a constructor, keyed by mapper number, registered by each mapperN.go
// file's init().
var registry = map[uint8]func(*cartridge.Cartridge) Mapper{}

func register(id uint8, ctor func(*cartridge.Cartridge) Mapper) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: mapper %d already registered", id))
	}
	registry[id] = ctor
}

// Get constructs the Mapper for c's mapper number.
func Get(c *cartridge.Cartridge) (Mapper, error) {
	ctor, ok := registry[c.Mapper]
	if !ok {
		return nil, fmt.Errorf("mappers: no implementation for mapper %d: %w", c.Mapper, cartridge.ErrUnsupportedMapper)
	}
	return ctor(c), nil
}

type baseMapper struct {
	cart *cartridge.Cartridge
}

func (bm *baseMapper) MirroringMode() cartridge.Mirroring {
	return bm.cart.Mirroring
}

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.cart.BatteryRAM
}
