// Package ppu implements the NES Picture Processing Unit: VRAM, OAM
// and palette storage, the memory-mapped $2000-$2007 register
// interface, and the scanline/cycle state machine that drives VBlank
// and the CPU's non-maskable interrupt.
package ppu

import (
	"fmt"

	"github.com/nescore/nesgo/cartridge"
)

const (
	vramSize    = 2048
	oamSize     = 256
	paletteSize = 32

	scanlinesPerFrame = 262
	cyclesPerScanline = 341
	vblankScanline    = 241
)

// Bus is the PPU's view of its cartridge collaborator: CHR reads and
// writes for the pattern tables. NMI delivery is not part of it.
type Bus interface {
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
}

// PPU holds all video state. It has no knowledge of the CPU; the Bus
// mediates NMI delivery by polling NMIPending/PollNMI.
type PPU struct {
	bus       Bus
	mirroring cartridge.Mirroring

	vram    [vramSize]uint8
	oam     [oamSize]uint8
	palette [paletteSize]uint8

	ctrl   ctrlReg
	mask   maskReg
	status statusReg

	oamAddr uint8

	addr       addrLatch
	scroll     scrollLatch
	readBuffer uint8

	scanline int
	cycle    int

	nmiLatched bool
}

// New constructs a PPU wired to bus with the cartridge's nametable
// mirroring mode.
func New(bus Bus, mirroring cartridge.Mirroring) *PPU {
	return &PPU{
		bus:       bus,
		mirroring: mirroring,
		addr:      newAddrLatch(),
		scroll:    newScrollLatch(),
		scanline:  0,
		cycle:     0,
	}
}

// ReadStatus implements the $2002 read: returns the status register,
// then clears VBlank and resets both two-write latches.
func (p *PPU) ReadStatus() uint8 {
	v := p.status.val
	p.status.setVBlank(false)
	p.addr.reset()
	p.scroll.reset()
	return v
}

func (p *PPU) ReadOAMData() uint8 {
	return p.oam[p.oamAddr]
}

func (p *PPU) WriteOAMAddr(val uint8) {
	p.oamAddr = val
}

func (p *PPU) WriteOAMData(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

// WriteOAMDMA copies 256 bytes into OAM, starting at the current
// oam_addr and wrapping modulo 256, per the $4014 contract.
func (p *PPU) WriteOAMDMA(data [256]byte) {
	for _, b := range data {
		p.oam[p.oamAddr] = b
		p.oamAddr++ // uint8 wraps naturally
	}
}

func (p *PPU) WriteCtrl(val uint8) {
	wasNMI := p.ctrl.generateNMI()
	p.ctrl = ctrlReg{val: val}
	if !wasNMI && p.ctrl.generateNMI() && p.status.vblank() {
		p.nmiLatched = true
	}
}

func (p *PPU) WriteMask(val uint8) {
	p.mask = maskReg{val: val}
}

func (p *PPU) WriteScroll(val uint8) {
	p.scroll.write(val)
}

func (p *PPU) WritePPUAddr(val uint8) {
	p.addr.write(val)
}

// ReadData implements the buffered $2007 read: reads from pattern
// tables/nametables return the previous buffer contents and refill the
// buffer from the new address; palette reads return immediately (with
// the buffer filled from the mirrored nametable byte underneath it, as
// real hardware does).
func (p *PPU) ReadData() uint8 {
	addr := p.addr.get()
	p.addr.increment(p.ctrl.vramIncrement())

	if addr < 0x3F00 {
		ret := p.readBuffer
		p.readBuffer = p.readMem(addr)
		return ret
	}

	p.readBuffer = p.readMem(addr - 0x1000)
	return p.readMem(addr)
}

func (p *PPU) WriteData(val uint8) {
	addr := p.addr.get()
	p.writeMem(addr, val)
	p.addr.increment(p.ctrl.vramIncrement())
}

func (p *PPU) readMem(addr uint16) uint8 {
	a := addr & 0x3FFF
	switch {
	case a < 0x2000:
		return p.bus.ChrRead(a)
	case a < 0x3F00:
		return p.vram[p.mirrorNametable(a)]
	default:
		return p.palette[paletteIndex(a)]
	}
}

func (p *PPU) writeMem(addr uint16, val uint8) {
	a := addr & 0x3FFF
	switch {
	case a < 0x2000:
		p.bus.ChrWrite(a, val)
	case a < 0x3F00:
		p.vram[p.mirrorNametable(a)] = val
	default:
		p.palette[paletteIndex(a)] = val
	}
}

// paletteIndex folds $3F10/$3F14/$3F18/$3F1C onto $3F00/$3F04/$3F08/$3F0C.
func paletteIndex(a uint16) uint16 {
	idx := (a - 0x3F00) % 0x20
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}

// mirrorNametable maps one of the four logical 1KiB nametables onto
// the 2KiB of physical VRAM, per the cartridge's mirroring mode.
func (p *PPU) mirrorNametable(addr uint16) uint16 {
	idx := (addr & 0x2FFF) - 0x2000
	nt := idx / 0x400

	switch p.mirroring {
	case cartridge.MirrorHorizontal:
		switch nt {
		case 0:
			return idx
		case 1, 2:
			return idx - 0x400
		default:
			return idx - 0x800
		}
	case cartridge.MirrorVertical:
		switch nt {
		case 0, 1:
			return idx
		default:
			return idx - 0x800
		}
	case cartridge.MirrorFourScreen:
		// Four-screen mirroring needs 2KiB of cartridge-side VRAM
		// this core doesn't model; fall through to a 2KiB mirror so
		// reads/writes stay in range instead of panicking.
		return idx % vramSize
	default:
		panic(fmt.Sprintf("ppu: unknown mirroring mode %v", p.mirroring))
	}
}

// NMIPending peeks at the NMI latch without consuming it. The Bus uses
// this for rising-edge detection of when to fire the per-frame
// gameloop callback.
func (p *PPU) NMIPending() bool {
	return p.nmiLatched
}

// PollNMI consumes the NMI latch: if set, clears it and returns true.
// The CPU dispatcher calls this once per instruction to decide whether
// to service an NMI.
func (p *PPU) PollNMI() bool {
	if p.nmiLatched {
		p.nmiLatched = false
		return true
	}
	return false
}

// Tick advances the PPU by n PPU cycles (the Bus calls this at 3x the
// CPU's own cycle count).
func (p *PPU) Tick(n int) {
	for i := 0; i < n; i++ {
		p.tick()
	}
}

func (p *PPU) tick() {
	if p.spriteZeroHit() {
		p.status.setSprite0Hit(true)
	}

	p.cycle++
	if p.cycle < cyclesPerScanline {
		return
	}
	p.cycle -= cyclesPerScanline
	p.scanline++

	switch {
	case p.scanline == vblankScanline:
		p.status.setVBlank(true)
		p.status.setSprite0Hit(false)
		if p.ctrl.generateNMI() {
			p.nmiLatched = true
		}
	case p.scanline == scanlinesPerFrame:
		p.scanline = 0
		p.nmiLatched = false
		p.status.setSprite0Hit(false)
		p.status.setVBlank(false)
	}
}

func (p *PPU) spriteZeroHit() bool {
	if !p.mask.showSprites() {
		return false
	}
	y, x := spriteAt(p.oam, 0)
	return int(y) == p.scanline && int(x) <= p.cycle
}

// Scanline and Cycle expose the raster position, mostly for tests and
// the debug REPL.
func (p *PPU) Scanline() int { return p.scanline }
func (p *PPU) Cycle() int    { return p.cycle }

// PeekMem reads VRAM/CHR/palette space without the $2007 read-buffer
// side effect, for the renderer (which samples nametable/pattern data
// directly rather than through the CPU-facing register interface).
func (p *PPU) PeekMem(addr uint16) uint8 {
	return p.readMem(addr)
}

// BackgroundPatternTable returns the base address ($0000 or $1000) of
// the pattern table selected for background tiles by PPUCTRL bit 4.
func (p *PPU) BackgroundPatternTable() uint16 {
	return p.ctrl.bgPatternTable()
}

// Snapshot/Restore support save states: a plain value copy of
// everything that needs to round-trip, deliberately excluding the Bus
// reference (which is wired at construction, not serialized).
type Snapshot struct {
	VRAM    [vramSize]uint8
	OAM     [oamSize]uint8
	Palette [paletteSize]uint8
	Ctrl, Mask, Status uint8
	OAMAddr uint8
	AddrLatchValue uint16
	AddrLatchHiNext bool
	ScrollX, ScrollY uint8
	ScrollHiNext bool
	ReadBuffer uint8
	Scanline, Cycle int
	NMILatched bool
}

func (p *PPU) Snapshot() Snapshot {
	return Snapshot{
		VRAM:            p.vram,
		OAM:             p.oam,
		Palette:         p.palette,
		Ctrl:            p.ctrl.val,
		Mask:            p.mask.val,
		Status:          p.status.val,
		OAMAddr:         p.oamAddr,
		AddrLatchValue:  p.addr.value,
		AddrLatchHiNext: p.addr.hiNext,
		ScrollX:         p.scroll.x,
		ScrollY:         p.scroll.y,
		ScrollHiNext:    p.scroll.hiNext,
		ReadBuffer:      p.readBuffer,
		Scanline:        p.scanline,
		Cycle:           p.cycle,
		NMILatched:      p.nmiLatched,
	}
}

func (p *PPU) Restore(s Snapshot) {
	p.vram = s.VRAM
	p.oam = s.OAM
	p.palette = s.Palette
	p.ctrl = ctrlReg{val: s.Ctrl}
	p.mask = maskReg{val: s.Mask}
	p.status = statusReg{val: s.Status}
	p.oamAddr = s.OAMAddr
	p.addr = addrLatch{value: s.AddrLatchValue, hiNext: s.AddrLatchHiNext}
	p.scroll = scrollLatch{x: s.ScrollX, y: s.ScrollY, hiNext: s.ScrollHiNext}
	p.readBuffer = s.ReadBuffer
	p.scanline = s.Scanline
	p.cycle = s.Cycle
	p.nmiLatched = s.NMILatched
}
