// Package bus wires together RAM, the PPU, a cartridge mapper and a
// joypad behind the 6502's 16-bit address space, and drives the PPU at
// 3x the CPU's own clock.
package bus

import (
	"github.com/golang/glog"

	"github.com/nescore/nesgo/input"
	"github.com/nescore/nesgo/mappers"
	"github.com/nescore/nesgo/ppu"
)

const (
	ramSize   = 0x0800
	oamDMA    = 0x4014
	joypad1   = 0x4016
	joypad2   = 0x4017
	dmaCycles = 513
)

// Action is what the gameloop callback asks the Bus to do once it
// returns, evaluated between instructions on the NMI rising edge.
type Action int

const (
	NoAction Action = iota
	SaveState
	LoadState
)

// GameloopCallback runs once per frame, on the PPU's NMI rising edge,
// with exclusive access to the PPU and joypad for its duration.
type GameloopCallback func(p *ppu.PPU, j *input.Joypad) Action

// Bus is the CPU's memory map and the owner of the PPU and joypad; see
// cpu.Bus for the interface it satisfies.
type Bus struct {
	ram     [ramSize]uint8
	ppu     *ppu.PPU
	mapper  mappers.Mapper
	Joypad1 input.Joypad

	cycles  uint64
	nmiEdge bool // whether the PPU's NMI latch was already pending last Tick

	Callback GameloopCallback

	// OnSaveState/OnLoadState are invoked when Callback returns
	// SaveState/LoadState; nil hooks are a no-op. Wired by the
	// caller rather than by the Bus itself, since the Bus has no
	// opinion about save-file naming; cmd/emu leaves both nil.
	OnSaveState func()
	OnLoadState func()
}

// New constructs a Bus over mapper's CHR/PRG data, with a PPU wired to
// it directly (the mapper already satisfies ppu.Bus).
func New(m mappers.Mapper) *Bus {
	b := &Bus{mapper: m}
	b.ppu = ppu.New(m, m.MirroringMode())
	return b
}

// PPU exposes the owned PPU, mostly for the renderer and save-state
// wiring.
func (b *Bus) PPU() *ppu.PPU { return b.ppu }

// Read implements the CPU-facing memory map.
// https://www.nesdev.org/wiki/CPU_memory_map
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]
	case addr < 0x4000:
		return b.readPPU(0x2000 + addr%8)
	case addr == joypad1:
		return b.Joypad1.Read()
	case addr == joypad2:
		return 0
	case addr < 0x4018:
		return 0 // APU stub
	case addr < 0x8000:
		glog.V(1).Infof("bus: read from undecoded address %#04x", addr)
		return 0
	default:
		return b.mapper.PrgRead(addr)
	}
}

func (b *Bus) readPPU(reg uint16) uint8 {
	switch reg {
	case 0x2002:
		return b.ppu.ReadStatus()
	case 0x2004:
		return b.ppu.ReadOAMData()
	case 0x2007:
		return b.ppu.ReadData()
	default:
		return 0 // write-only registers
	}
}

// Write implements the CPU-facing memory map.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = val
	case addr < 0x4000:
		b.writePPU(0x2000+addr%8, val)
	case addr == oamDMA:
		b.doOAMDMA(val)
	case addr == joypad1:
		b.Joypad1.Write(val)
	case addr == joypad2:
		// no second controller modeled
	case addr < 0x4018:
		// APU stub, writes ignored
	case addr < 0x8000:
		glog.V(1).Infof("bus: write to undecoded address %#04x", addr)
	default:
		glog.Fatalf("bus: write to read-only PRG-ROM at %#04x", addr)
	}
}

func (b *Bus) writePPU(reg uint16, val uint8) {
	switch reg {
	case 0x2000:
		b.ppu.WriteCtrl(val)
	case 0x2001:
		b.ppu.WriteMask(val)
	case 0x2003:
		b.ppu.WriteOAMAddr(val)
	case 0x2004:
		b.ppu.WriteOAMData(val)
	case 0x2005:
		b.ppu.WriteScroll(val)
	case 0x2006:
		b.ppu.WritePPUAddr(val)
	case 0x2007:
		b.ppu.WriteData(val)
	}
}

// doOAMDMA copies 256 bytes starting at val<<8 into OAM, then bills
// the 513-cycle DMA stall (see the DMA open question in DESIGN.md).
func (b *Bus) doOAMDMA(val uint8) {
	base := uint16(val) << 8
	var data [256]byte
	for i := range data {
		data[i] = b.Read(base + uint16(i))
	}
	b.ppu.WriteOAMDMA(data)
	b.Tick(dmaCycles)
}

// Tick advances the CPU cycle counter by n and the PPU by 3n, firing
// Callback once on each NMI rising edge (i.e. at most once per frame).
func (b *Bus) Tick(n int) {
	b.cycles += uint64(n)
	b.ppu.Tick(3 * n)

	pending := b.ppu.NMIPending()
	if pending && !b.nmiEdge && b.Callback != nil {
		switch b.Callback(b.ppu, &b.Joypad1) {
		case SaveState:
			if b.OnSaveState != nil {
				b.OnSaveState()
			}
		case LoadState:
			if b.OnLoadState != nil {
				b.OnLoadState()
			}
		}
	}
	b.nmiEdge = pending
}

// PollNMI forwards to the PPU, consuming its latched NMI for the CPU
// dispatcher to service.
func (b *Bus) PollNMI() bool {
	return b.ppu.PollNMI()
}

// Cycles returns the running CPU cycle count, mostly for debug tooling.
func (b *Bus) Cycles() uint64 { return b.cycles }

// RAM exposes the 2 KiB internal RAM array for save-state snapshotting.
func (b *Bus) RAM() *[ramSize]uint8 { return &b.ram }
