package cpu

// instr describes one of the 256 possible opcode bytes: its mnemonic
// (also the name of the Go method implementing it, dispatched via
// reflection), addressing mode, instruction length, and base cycle
// cost. extraOnPageCross marks the read-style instructions that bill
// one additional cycle when their operand address computation crosses
// a page boundary.
type instr struct {
	mnemonic         string
	mode             Mode
	bytes            uint8
	cycles           uint8
	extraOnPageCross bool
}

// opcodes maps each of the 256 opcode bytes to its descriptor; every
// byte has an entry, including the KIL/JAM opcodes at the end, which
// halt the CPU. Step returns an error for any entry left empty.
var opcodes = [256]instr{
	0x69: {"ADC", Immediate, 2, 2, false},
	0x65: {"ADC", ZeroPage, 2, 3, false},
	0x75: {"ADC", ZeroPageX, 2, 4, false},
	0x6D: {"ADC", Absolute, 3, 4, false},
	0x7D: {"ADC", AbsoluteX, 3, 4, true},
	0x79: {"ADC", AbsoluteY, 3, 4, true},
	0x61: {"ADC", IndirectX, 2, 6, false},
	0x71: {"ADC", IndirectY, 2, 5, true},

	0x29: {"AND", Immediate, 2, 2, false},
	0x25: {"AND", ZeroPage, 2, 3, false},
	0x35: {"AND", ZeroPageX, 2, 4, false},
	0x2D: {"AND", Absolute, 3, 4, false},
	0x3D: {"AND", AbsoluteX, 3, 4, true},
	0x39: {"AND", AbsoluteY, 3, 4, true},
	0x21: {"AND", IndirectX, 2, 6, false},
	0x31: {"AND", IndirectY, 2, 5, true},

	0x0A: {"ASL", Accumulator, 1, 2, false},
	0x06: {"ASL", ZeroPage, 2, 5, false},
	0x16: {"ASL", ZeroPageX, 2, 6, false},
	0x0E: {"ASL", Absolute, 3, 6, false},
	0x1E: {"ASL", AbsoluteX, 3, 7, false},

	0x90: {"BCC", Relative, 2, 2, false},
	0xB0: {"BCS", Relative, 2, 2, false},
	0xF0: {"BEQ", Relative, 2, 2, false},
	0x24: {"BIT", ZeroPage, 2, 3, false},
	0x2C: {"BIT", Absolute, 3, 4, false},
	0x30: {"BMI", Relative, 2, 2, false},
	0xD0: {"BNE", Relative, 2, 2, false},
	0x10: {"BPL", Relative, 2, 2, false},
	0x00: {"BRK", NoneAddressing, 1, 7, false},
	0x50: {"BVC", Relative, 2, 2, false},
	0x70: {"BVS", Relative, 2, 2, false},

	0x18: {"CLC", NoneAddressing, 1, 2, false},
	0xD8: {"CLD", NoneAddressing, 1, 2, false},
	0x58: {"CLI", NoneAddressing, 1, 2, false},
	0xB8: {"CLV", NoneAddressing, 1, 2, false},

	0xC9: {"CMP", Immediate, 2, 2, false},
	0xC5: {"CMP", ZeroPage, 2, 3, false},
	0xD5: {"CMP", ZeroPageX, 2, 4, false},
	0xCD: {"CMP", Absolute, 3, 4, false},
	0xDD: {"CMP", AbsoluteX, 3, 4, true},
	0xD9: {"CMP", AbsoluteY, 3, 4, true},
	0xC1: {"CMP", IndirectX, 2, 6, false},
	0xD1: {"CMP", IndirectY, 2, 5, true},

	0xE0: {"CPX", Immediate, 2, 2, false},
	0xE4: {"CPX", ZeroPage, 2, 3, false},
	0xEC: {"CPX", Absolute, 3, 4, false},
	0xC0: {"CPY", Immediate, 2, 2, false},
	0xC4: {"CPY", ZeroPage, 2, 3, false},
	0xCC: {"CPY", Absolute, 3, 4, false},

	0xC6: {"DEC", ZeroPage, 2, 5, false},
	0xD6: {"DEC", ZeroPageX, 2, 6, false},
	0xCE: {"DEC", Absolute, 3, 6, false},
	0xDE: {"DEC", AbsoluteX, 3, 7, false},
	0xCA: {"DEX", NoneAddressing, 1, 2, false},
	0x88: {"DEY", NoneAddressing, 1, 2, false},

	0x49: {"EOR", Immediate, 2, 2, false},
	0x45: {"EOR", ZeroPage, 2, 3, false},
	0x55: {"EOR", ZeroPageX, 2, 4, false},
	0x4D: {"EOR", Absolute, 3, 4, false},
	0x5D: {"EOR", AbsoluteX, 3, 4, true},
	0x59: {"EOR", AbsoluteY, 3, 4, true},
	0x41: {"EOR", IndirectX, 2, 6, false},
	0x51: {"EOR", IndirectY, 2, 5, true},

	0xE6: {"INC", ZeroPage, 2, 5, false},
	0xF6: {"INC", ZeroPageX, 2, 6, false},
	0xEE: {"INC", Absolute, 3, 6, false},
	0xFE: {"INC", AbsoluteX, 3, 7, false},
	0xE8: {"INX", NoneAddressing, 1, 2, false},
	0xC8: {"INY", NoneAddressing, 1, 2, false},

	0x4C: {"JMP", Absolute, 3, 3, false},
	0x6C: {"JMP", Indirect, 3, 5, false},
	0x20: {"JSR", Absolute, 3, 6, false},

	0xA9: {"LDA", Immediate, 2, 2, false},
	0xA5: {"LDA", ZeroPage, 2, 3, false},
	0xB5: {"LDA", ZeroPageX, 2, 4, false},
	0xAD: {"LDA", Absolute, 3, 4, false},
	0xBD: {"LDA", AbsoluteX, 3, 4, true},
	0xB9: {"LDA", AbsoluteY, 3, 4, true},
	0xA1: {"LDA", IndirectX, 2, 6, false},
	0xB1: {"LDA", IndirectY, 2, 5, true},

	0xA2: {"LDX", Immediate, 2, 2, false},
	0xA6: {"LDX", ZeroPage, 2, 3, false},
	0xB6: {"LDX", ZeroPageY, 2, 4, false},
	0xAE: {"LDX", Absolute, 3, 4, false},
	0xBE: {"LDX", AbsoluteY, 3, 4, true},

	0xA0: {"LDY", Immediate, 2, 2, false},
	0xA4: {"LDY", ZeroPage, 2, 3, false},
	0xB4: {"LDY", ZeroPageX, 2, 4, false},
	0xAC: {"LDY", Absolute, 3, 4, false},
	0xBC: {"LDY", AbsoluteX, 3, 4, true},

	0x4A: {"LSR", Accumulator, 1, 2, false},
	0x46: {"LSR", ZeroPage, 2, 5, false},
	0x56: {"LSR", ZeroPageX, 2, 6, false},
	0x4E: {"LSR", Absolute, 3, 6, false},
	0x5E: {"LSR", AbsoluteX, 3, 7, false},

	0xEA: {"NOP", NoneAddressing, 1, 2, false},
	0x1A: {"NOP", NoneAddressing, 1, 2, false},
	0x3A: {"NOP", NoneAddressing, 1, 2, false},
	0x5A: {"NOP", NoneAddressing, 1, 2, false},
	0xDA: {"NOP", NoneAddressing, 1, 2, false},
	0xFA: {"NOP", NoneAddressing, 1, 2, false},
	0x7A: {"NOP", NoneAddressing, 1, 2, false},
	0x80: {"NOP", Immediate, 2, 2, false},
	0x82: {"NOP", Immediate, 2, 2, false},
	0x89: {"NOP", Immediate, 2, 2, false},
	0xC2: {"NOP", Immediate, 2, 2, false},
	0xE2: {"NOP", Immediate, 2, 2, false},
	0x04: {"NOP", ZeroPage, 2, 3, false},
	0x44: {"NOP", ZeroPage, 2, 3, false},
	0x64: {"NOP", ZeroPage, 2, 3, false},
	0x14: {"NOP", ZeroPageX, 2, 4, false},
	0x34: {"NOP", ZeroPageX, 2, 4, false},
	0x54: {"NOP", ZeroPageX, 2, 4, false},
	0x74: {"NOP", ZeroPageX, 2, 4, false},
	0xD4: {"NOP", ZeroPageX, 2, 4, false},
	0xF4: {"NOP", ZeroPageX, 2, 4, false},
	0x0C: {"NOP", Absolute, 3, 4, false},
	0x1C: {"NOP", AbsoluteX, 3, 4, true},
	0x3C: {"NOP", AbsoluteX, 3, 4, true},
	0x5C: {"NOP", AbsoluteX, 3, 4, true},
	0x7C: {"NOP", AbsoluteX, 3, 4, true},
	0xDC: {"NOP", AbsoluteX, 3, 4, true},
	0xFC: {"NOP", AbsoluteX, 3, 4, true},

	0x09: {"ORA", Immediate, 2, 2, false},
	0x05: {"ORA", ZeroPage, 2, 3, false},
	0x15: {"ORA", ZeroPageX, 2, 4, false},
	0x0D: {"ORA", Absolute, 3, 4, false},
	0x1D: {"ORA", AbsoluteX, 3, 4, true},
	0x19: {"ORA", AbsoluteY, 3, 4, true},
	0x01: {"ORA", IndirectX, 2, 6, false},
	0x11: {"ORA", IndirectY, 2, 5, true},

	0x48: {"PHA", NoneAddressing, 1, 3, false},
	0x08: {"PHP", NoneAddressing, 1, 3, false},
	0x68: {"PLA", NoneAddressing, 1, 4, false},
	0x28: {"PLP", NoneAddressing, 1, 4, false},

	0x2A: {"ROL", Accumulator, 1, 2, false},
	0x26: {"ROL", ZeroPage, 2, 5, false},
	0x36: {"ROL", ZeroPageX, 2, 6, false},
	0x2E: {"ROL", Absolute, 3, 6, false},
	0x3E: {"ROL", AbsoluteX, 3, 7, false},

	0x6A: {"ROR", Accumulator, 1, 2, false},
	0x66: {"ROR", ZeroPage, 2, 5, false},
	0x76: {"ROR", ZeroPageX, 2, 6, false},
	0x6E: {"ROR", Absolute, 3, 6, false},
	0x7E: {"ROR", AbsoluteX, 3, 7, false},

	0x40: {"RTI", NoneAddressing, 1, 6, false},
	0x60: {"RTS", NoneAddressing, 1, 6, false},

	0xE9: {"SBC", Immediate, 2, 2, false},
	0xEB: {"SBC", Immediate, 2, 2, false}, // unofficial alias
	0xE5: {"SBC", ZeroPage, 2, 3, false},
	0xF5: {"SBC", ZeroPageX, 2, 4, false},
	0xED: {"SBC", Absolute, 3, 4, false},
	0xFD: {"SBC", AbsoluteX, 3, 4, true},
	0xF9: {"SBC", AbsoluteY, 3, 4, true},
	0xE1: {"SBC", IndirectX, 2, 6, false},
	0xF1: {"SBC", IndirectY, 2, 5, true},

	0x38: {"SEC", NoneAddressing, 1, 2, false},
	0xF8: {"SED", NoneAddressing, 1, 2, false},
	0x78: {"SEI", NoneAddressing, 1, 2, false},

	0x85: {"STA", ZeroPage, 2, 3, false},
	0x95: {"STA", ZeroPageX, 2, 4, false},
	0x8D: {"STA", Absolute, 3, 4, false},
	0x9D: {"STA", AbsoluteX, 3, 5, false},
	0x99: {"STA", AbsoluteY, 3, 5, false},
	0x81: {"STA", IndirectX, 2, 6, false},
	0x91: {"STA", IndirectY, 2, 6, false},

	0x86: {"STX", ZeroPage, 2, 3, false},
	0x96: {"STX", ZeroPageY, 2, 4, false},
	0x8E: {"STX", Absolute, 3, 4, false},
	0x84: {"STY", ZeroPage, 2, 3, false},
	0x94: {"STY", ZeroPageX, 2, 4, false},
	0x8C: {"STY", Absolute, 3, 4, false},

	0xAA: {"TAX", NoneAddressing, 1, 2, false},
	0xA8: {"TAY", NoneAddressing, 1, 2, false},
	0xBA: {"TSX", NoneAddressing, 1, 2, false},
	0x8A: {"TXA", NoneAddressing, 1, 2, false},
	0x9A: {"TXS", NoneAddressing, 1, 2, false},
	0x98: {"TYA", NoneAddressing, 1, 2, false},

	// Unofficial opcodes. Grounded in the public 6502 "illegal opcode"
	// references; several (XAA, LXA, AHX, SHX, SHY, TAS, LAS) have no
	// single agreed hardware behavior and implement the commonly cited
	// reference semantics instead.
	0xA3: {"LAX", IndirectX, 2, 6, false},
	0xA7: {"LAX", ZeroPage, 2, 3, false},
	0xAF: {"LAX", Absolute, 3, 4, false},
	0xB3: {"LAX", IndirectY, 2, 5, true},
	0xB7: {"LAX", ZeroPageY, 2, 4, false},
	0xBF: {"LAX", AbsoluteY, 3, 4, true},
	0xAB: {"LXA", Immediate, 2, 2, false},

	0x83: {"SAX", IndirectX, 2, 6, false},
	0x87: {"SAX", ZeroPage, 2, 3, false},
	0x8F: {"SAX", Absolute, 3, 4, false},
	0x97: {"SAX", ZeroPageY, 2, 4, false},

	0xC3: {"DCP", IndirectX, 2, 8, false},
	0xC7: {"DCP", ZeroPage, 2, 5, false},
	0xCF: {"DCP", Absolute, 3, 6, false},
	0xD3: {"DCP", IndirectY, 2, 8, false},
	0xD7: {"DCP", ZeroPageX, 2, 6, false},
	0xDB: {"DCP", AbsoluteY, 3, 7, false},
	0xDF: {"DCP", AbsoluteX, 3, 7, false},

	0xE3: {"ISB", IndirectX, 2, 8, false},
	0xE7: {"ISB", ZeroPage, 2, 5, false},
	0xEF: {"ISB", Absolute, 3, 6, false},
	0xF3: {"ISB", IndirectY, 2, 8, false},
	0xF7: {"ISB", ZeroPageX, 2, 6, false},
	0xFB: {"ISB", AbsoluteY, 3, 7, false},
	0xFF: {"ISB", AbsoluteX, 3, 7, false},

	0x23: {"RLA", IndirectX, 2, 8, false},
	0x27: {"RLA", ZeroPage, 2, 5, false},
	0x2F: {"RLA", Absolute, 3, 6, false},
	0x33: {"RLA", IndirectY, 2, 8, false},
	0x37: {"RLA", ZeroPageX, 2, 6, false},
	0x3B: {"RLA", AbsoluteY, 3, 7, false},
	0x3F: {"RLA", AbsoluteX, 3, 7, false},

	0x03: {"SLO", IndirectX, 2, 8, false},
	0x07: {"SLO", ZeroPage, 2, 5, false},
	0x0F: {"SLO", Absolute, 3, 6, false},
	0x13: {"SLO", IndirectY, 2, 8, false},
	0x17: {"SLO", ZeroPageX, 2, 6, false},
	0x1B: {"SLO", AbsoluteY, 3, 7, false},
	0x1F: {"SLO", AbsoluteX, 3, 7, false},

	0x43: {"SRE", IndirectX, 2, 8, false},
	0x47: {"SRE", ZeroPage, 2, 5, false},
	0x4F: {"SRE", Absolute, 3, 6, false},
	0x53: {"SRE", IndirectY, 2, 8, false},
	0x57: {"SRE", ZeroPageX, 2, 6, false},
	0x5B: {"SRE", AbsoluteY, 3, 7, false},
	0x5F: {"SRE", AbsoluteX, 3, 7, false},

	0x63: {"RRA", IndirectX, 2, 8, false},
	0x67: {"RRA", ZeroPage, 2, 5, false},
	0x6F: {"RRA", Absolute, 3, 6, false},
	0x73: {"RRA", IndirectY, 2, 8, false},
	0x77: {"RRA", ZeroPageX, 2, 6, false},
	0x7B: {"RRA", AbsoluteY, 3, 7, false},
	0x7F: {"RRA", AbsoluteX, 3, 7, false},

	0x0B: {"ANC", Immediate, 2, 2, false},
	0x2B: {"ANC", Immediate, 2, 2, false},
	0x4B: {"ALR", Immediate, 2, 2, false},
	0x6B: {"ARR", Immediate, 2, 2, false},
	0xCB: {"AXS", Immediate, 2, 2, false},
	0xBB: {"LAS", AbsoluteY, 3, 4, true},
	0x9B: {"TAS", AbsoluteY, 3, 5, false},
	0x93: {"AHX", IndirectY, 2, 6, false},
	0x9F: {"AHX", AbsoluteY, 3, 5, false},
	0x9E: {"SHX", AbsoluteY, 3, 5, false},
	0x9C: {"SHY", AbsoluteX, 3, 5, false},
	0x8B: {"XAA", Immediate, 2, 2, false},

	// JAM/KIL: real hardware locks up the address/data bus permanently.
	// Modeled here as an immediate halt, since no commercial cartridge
	// executes one deliberately.
	0x02: {"JAM", NoneAddressing, 1, 2, false},
	0x12: {"JAM", NoneAddressing, 1, 2, false},
	0x22: {"JAM", NoneAddressing, 1, 2, false},
	0x32: {"JAM", NoneAddressing, 1, 2, false},
	0x42: {"JAM", NoneAddressing, 1, 2, false},
	0x52: {"JAM", NoneAddressing, 1, 2, false},
	0x62: {"JAM", NoneAddressing, 1, 2, false},
	0x72: {"JAM", NoneAddressing, 1, 2, false},
	0x92: {"JAM", NoneAddressing, 1, 2, false},
	0xB2: {"JAM", NoneAddressing, 1, 2, false},
	0xD2: {"JAM", NoneAddressing, 1, 2, false},
	0xF2: {"JAM", NoneAddressing, 1, 2, false},
}
