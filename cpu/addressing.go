package cpu

// Mode identifies one of the 6502's addressing modes.
type Mode uint8

const (
	NoneAddressing Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

var modeNames = map[Mode]string{
	NoneAddressing: "NoneAddressing",
	Accumulator:    "Accumulator",
	Immediate:      "Immediate",
	ZeroPage:       "ZeroPage",
	ZeroPageX:      "ZeroPageX",
	ZeroPageY:      "ZeroPageY",
	Relative:       "Relative",
	Absolute:       "Absolute",
	AbsoluteX:      "AbsoluteX",
	AbsoluteY:      "AbsoluteY",
	Indirect:       "Indirect",
	IndirectX:      "IndirectX",
	IndirectY:      "IndirectY",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return "Unknown"
}

// pageCrossed reports whether a and b fall in different 256-byte pages.
func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// resolveAddr computes the effective address for mode, assuming PC
// points at the first operand byte (i.e. past the opcode byte itself).
// It returns the address and whether resolving it crossed a page
// boundary, for callers that bill an extra cycle on read-style ops.
//
// Accumulator and NoneAddressing have no memory operand; callers must
// not invoke resolveAddr for them.
func (c *CPU) resolveAddr(mode Mode) (uint16, bool) {
	switch mode {
	case Immediate:
		return c.PC, false
	case ZeroPage:
		return uint16(c.bus.Read(c.PC)), false
	case ZeroPageX:
		return uint16(c.bus.Read(c.PC) + c.X), false
	case ZeroPageY:
		return uint16(c.bus.Read(c.PC) + c.Y), false
	case Absolute:
		return c.read16(c.PC), false
	case AbsoluteX:
		base := c.read16(c.PC)
		addr := base + uint16(c.X)
		return addr, pageCrossed(base, addr)
	case AbsoluteY:
		base := c.read16(c.PC)
		addr := base + uint16(c.Y)
		return addr, pageCrossed(base, addr)
	case Indirect:
		return c.read16Indirect(c.read16(c.PC)), false
	case IndirectX:
		ptr := c.bus.Read(c.PC) + c.X
		return c.read16ZeroPage(ptr), false
	case IndirectY:
		base := c.read16ZeroPage(c.bus.Read(c.PC))
		addr := base + uint16(c.Y)
		return addr, pageCrossed(base, addr)
	case Relative:
		// Relative displacement is signed, from the PC *after* the
		// instruction's operand byte is consumed.
		return (c.PC + 1) + uint16(int8(c.bus.Read(c.PC))), false
	default:
		panic("cpu: resolveAddr called with an addressing mode that has no memory operand")
	}
}

// read16ZeroPage reads a 16-bit pointer out of zero page, wrapping the
// high-byte fetch within page 0 (the IndirectX/Y hardware behavior).
func (c *CPU) read16ZeroPage(addr uint8) uint16 {
	lo := uint16(c.bus.Read(uint16(addr)))
	hi := uint16(c.bus.Read(uint16(addr + 1)))
	return lo | hi<<8
}

// read16 reads a plain little-endian 16-bit value at addr/addr+1. Used
// for instruction operands and interrupt vectors, neither of which
// exhibits the indirect-jump page-wrap bug below.
func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return lo | hi<<8
}

// read16Indirect reads the 16-bit target of a pointer, reproducing the
// JMP ($xxFF) hardware bug: when the pointer's low byte is $FF, the
// high byte of the target is fetched from the start of the same page
// instead of the next page.
func (c *CPU) read16Indirect(ptr uint16) uint16 {
	lo := uint16(c.bus.Read(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.bus.Read(hiAddr))
	return lo | hi<<8
}
