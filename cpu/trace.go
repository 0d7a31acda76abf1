package cpu

import (
	"fmt"
	"strings"
)

// Trace renders one nestest-log-format line for the instruction about
// to execute (PC currently points at its opcode byte, not yet
// fetched/advanced). Column layout and the operand disassembly rules
// per addressing mode follow the reference trace() this core's
// conformance testing is checked against.
func (c *CPU) Trace() string {
	begin := c.PC
	code := c.bus.Read(begin)
	in := opcodes[code]

	hexDump := []uint8{code}
	operand := c.traceOperand(&hexDump, begin, code, in)

	hexStrs := make([]string, len(hexDump))
	for i, b := range hexDump {
		hexStrs[i] = fmt.Sprintf("%02x", b)
	}
	hexStr := strings.Join(hexStrs, " ")

	asm := strings.TrimSpace(fmt.Sprintf("%04x  %-8s %4s %s", begin, hexStr, in.mnemonic, operand))

	return strings.ToUpper(fmt.Sprintf("%-47s A:%02x X:%02x Y:%02x P:%02x SP:%02x",
		asm, c.A, c.X, c.Y, c.P, c.SP))
}

// traceOperand formats the operand column and appends any additional
// instruction bytes to hexDump.
func (c *CPU) traceOperand(hexDump *[]uint8, begin uint16, code uint8, in instr) string {
	memAddr, stored := c.traceTargetAndValue(begin, in)

	switch in.bytes {
	case 1:
		switch code {
		case 0x0a, 0x4a, 0x2a, 0x6a:
			return "A"
		default:
			return ""
		}
	case 2:
		address := c.bus.Read(begin + 1)
		*hexDump = append(*hexDump, address)

		switch in.mode {
		case Immediate:
			return fmt.Sprintf("#$%02x", address)
		case ZeroPage:
			return fmt.Sprintf("$%02x = %02x", memAddr, stored)
		case ZeroPageX:
			return fmt.Sprintf("$%02x,X @ %02x = %02x", address, memAddr, stored)
		case ZeroPageY:
			return fmt.Sprintf("$%02x,Y @ %02x = %02x", address, memAddr, stored)
		case IndirectX:
			return fmt.Sprintf("($%02x,X) @ %02x = %04x = %02x",
				address, address+c.X, memAddr, stored)
		case IndirectY:
			return fmt.Sprintf("($%02x),Y = %04x @ %04x = %02x",
				address, memAddr-uint16(c.Y), memAddr, stored)
		case NoneAddressing, Relative:
			target := int(begin) + 2 + int(int8(address))
			return fmt.Sprintf("$%04x", uint16(target))
		default:
			return fmt.Sprintf("$%02x", address)
		}
	case 3:
		lo := c.bus.Read(begin + 1)
		hi := c.bus.Read(begin + 2)
		*hexDump = append(*hexDump, lo, hi)
		address := uint16(hi)<<8 | uint16(lo)

		// JMP/JSR absolute name a jump target, not a memory operand, so
		// the reference trace shows no stored value for them.
		if code == 0x4c || code == 0x20 {
			return fmt.Sprintf("$%04x", address)
		}

		switch in.mode {
		case Indirect:
			jmpAddr := c.read16Indirect(address)
			return fmt.Sprintf("($%04x) = %04x", address, jmpAddr)
		case NoneAddressing:
			return fmt.Sprintf("$%04x", address)
		case Absolute:
			return fmt.Sprintf("$%04x = %02x", memAddr, stored)
		case AbsoluteX:
			return fmt.Sprintf("$%04x,X @ %04x = %02x", address, memAddr, stored)
		case AbsoluteY:
			return fmt.Sprintf("$%04x,Y @ %04x = %02x", address, memAddr, stored)
		default:
			return fmt.Sprintf("$%04x", address)
		}
	default:
		return ""
	}
}

// traceTargetAndValue resolves the effective address and the byte
// currently stored there, for modes that read memory; Immediate,
// Relative and NoneAddressing have no such target.
func (c *CPU) traceTargetAndValue(begin uint16, in instr) (uint16, uint8) {
	switch in.mode {
	case Immediate, NoneAddressing, Relative, Accumulator:
		return 0, 0
	}

	save := c.PC
	c.PC = begin + 1
	addr, _ := c.resolveAddr(in.mode)
	c.PC = save

	return addr, c.bus.Read(addr)
}
