package cpu

// An Opcode is associated with a unique byte value (0x00-0xff). There are 256
// possible opcodes (16x16), but only 151 correspond to an official Cpu
// instruction; the rest are illegal and decoding one is a fatal DecodeError.
//
// The Opcode carries the AddressingMode, the instruction size in bytes, the
// base cycle count, and whether indexed addressing on this opcode ever earns
// a page-cross penalty cycle.
type Opcode struct {
	AddressingMode AddressingMode

	Size byte // 1-3 bytes, including the opcode byte itself

	// Clock cycles required; typically 2 to 7. Store instructions and
	// non-indexed modes other than Relative carry a PageCrossPenalty of
	// 0, since a page cross never costs them anything. Branch entries
	// carry 1 for reference, but Step does not add it: branch() charges
	// the page-cross cycle of a taken branch itself.
	Cycles           byte
	PageCrossPenalty byte

	// Instruction performs the op's effect given the effective address
	// resolved by the Addressing Unit, and returns any extra cycles
	// earned beyond Cycles. Only branch instructions ever return
	// nonzero: +1 if taken, +1 more if the branch crosses a page.
	Instruction func(c *Cpu, ea uint16) byte

	Name string // for tracing and the debugger
}

// Opcodes maps each of the 256 possible opcode bytes to its decoded
// Instruction. A missing key means the byte is not an official 6502
// opcode. Generated from the canonical MOS-6502 opcode map (see e.g.
// https://www.nesdev.org/obelisk-6502-guide/reference.html and
// https://www.masswerk.at/6502/6502_instruction_set.html), not copied
// from any single emulator's table — several well-known ones disagree
// with each other (and with silicon) on edge cases.
var Opcodes = map[byte]Opcode{
	0x69: {Instruction: opADC, Name: "ADC", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0x65: {Instruction: opADC, Name: "ADC", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0x75: {Instruction: opADC, Name: "ADC", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0x6D: {Instruction: opADC, Name: "ADC", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0x7D: {Instruction: opADC, Name: "ADC", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteX},
	0x79: {Instruction: opADC, Name: "ADC", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteY},
	0x61: {Instruction: opADC, Name: "ADC", Size: 2, Cycles: 6, AddressingMode: IndirectX},
	0x71: {Instruction: opADC, Name: "ADC", Size: 2, Cycles: 5, PageCrossPenalty: 1, AddressingMode: IndirectY},

	0x29: {Instruction: opAND, Name: "AND", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0x25: {Instruction: opAND, Name: "AND", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0x35: {Instruction: opAND, Name: "AND", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0x2D: {Instruction: opAND, Name: "AND", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0x3D: {Instruction: opAND, Name: "AND", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteX},
	0x39: {Instruction: opAND, Name: "AND", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteY},
	0x21: {Instruction: opAND, Name: "AND", Size: 2, Cycles: 6, AddressingMode: IndirectX},
	0x31: {Instruction: opAND, Name: "AND", Size: 2, Cycles: 5, PageCrossPenalty: 1, AddressingMode: IndirectY},

	0x0A: {Instruction: opASL, Name: "ASL", Size: 1, Cycles: 2, AddressingMode: Accumulator},
	0x06: {Instruction: opASL, Name: "ASL", Size: 2, Cycles: 5, AddressingMode: ZeroPage},
	0x16: {Instruction: opASL, Name: "ASL", Size: 2, Cycles: 6, AddressingMode: ZeroPageX},
	0x0E: {Instruction: opASL, Name: "ASL", Size: 3, Cycles: 6, AddressingMode: Absolute},
	0x1E: {Instruction: opASL, Name: "ASL", Size: 3, Cycles: 7, AddressingMode: AbsoluteX},

	0x90: {Instruction: opBCC, Name: "BCC", Size: 2, Cycles: 2, PageCrossPenalty: 1, AddressingMode: Relative},
	0xB0: {Instruction: opBCS, Name: "BCS", Size: 2, Cycles: 2, PageCrossPenalty: 1, AddressingMode: Relative},
	0xF0: {Instruction: opBEQ, Name: "BEQ", Size: 2, Cycles: 2, PageCrossPenalty: 1, AddressingMode: Relative},

	0x24: {Instruction: opBIT, Name: "BIT", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0x2C: {Instruction: opBIT, Name: "BIT", Size: 3, Cycles: 4, AddressingMode: Absolute},

	0x30: {Instruction: opBMI, Name: "BMI", Size: 2, Cycles: 2, PageCrossPenalty: 1, AddressingMode: Relative},
	0xD0: {Instruction: opBNE, Name: "BNE", Size: 2, Cycles: 2, PageCrossPenalty: 1, AddressingMode: Relative},
	0x10: {Instruction: opBPL, Name: "BPL", Size: 2, Cycles: 2, PageCrossPenalty: 1, AddressingMode: Relative},

	0x00: {Instruction: opBRK, Name: "BRK", Size: 1, Cycles: 7, AddressingMode: Implied},

	0x50: {Instruction: opBVC, Name: "BVC", Size: 2, Cycles: 2, PageCrossPenalty: 1, AddressingMode: Relative},
	0x70: {Instruction: opBVS, Name: "BVS", Size: 2, Cycles: 2, PageCrossPenalty: 1, AddressingMode: Relative},

	0x18: {Instruction: opCLC, Name: "CLC", Size: 1, Cycles: 2, AddressingMode: Implied},
	0xD8: {Instruction: opCLD, Name: "CLD", Size: 1, Cycles: 2, AddressingMode: Implied},
	0x58: {Instruction: opCLI, Name: "CLI", Size: 1, Cycles: 2, AddressingMode: Implied},
	0xB8: {Instruction: opCLV, Name: "CLV", Size: 1, Cycles: 2, AddressingMode: Implied},

	0xC9: {Instruction: opCMP, Name: "CMP", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0xC5: {Instruction: opCMP, Name: "CMP", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0xD5: {Instruction: opCMP, Name: "CMP", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0xCD: {Instruction: opCMP, Name: "CMP", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0xDD: {Instruction: opCMP, Name: "CMP", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteX},
	0xD9: {Instruction: opCMP, Name: "CMP", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteY},
	0xC1: {Instruction: opCMP, Name: "CMP", Size: 2, Cycles: 6, AddressingMode: IndirectX},
	0xD1: {Instruction: opCMP, Name: "CMP", Size: 2, Cycles: 5, PageCrossPenalty: 1, AddressingMode: IndirectY},

	0xE0: {Instruction: opCPX, Name: "CPX", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0xE4: {Instruction: opCPX, Name: "CPX", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0xEC: {Instruction: opCPX, Name: "CPX", Size: 3, Cycles: 4, AddressingMode: Absolute},

	0xC0: {Instruction: opCPY, Name: "CPY", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0xC4: {Instruction: opCPY, Name: "CPY", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0xCC: {Instruction: opCPY, Name: "CPY", Size: 3, Cycles: 4, AddressingMode: Absolute},

	0xC6: {Instruction: opDEC, Name: "DEC", Size: 2, Cycles: 5, AddressingMode: ZeroPage},
	0xD6: {Instruction: opDEC, Name: "DEC", Size: 2, Cycles: 6, AddressingMode: ZeroPageX},
	0xCE: {Instruction: opDEC, Name: "DEC", Size: 3, Cycles: 6, AddressingMode: Absolute},
	0xDE: {Instruction: opDEC, Name: "DEC", Size: 3, Cycles: 7, AddressingMode: AbsoluteX},

	0xCA: {Instruction: opDEX, Name: "DEX", Size: 1, Cycles: 2, AddressingMode: Implied},
	0x88: {Instruction: opDEY, Name: "DEY", Size: 1, Cycles: 2, AddressingMode: Implied},

	0x49: {Instruction: opEOR, Name: "EOR", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0x45: {Instruction: opEOR, Name: "EOR", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0x55: {Instruction: opEOR, Name: "EOR", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0x4D: {Instruction: opEOR, Name: "EOR", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0x5D: {Instruction: opEOR, Name: "EOR", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteX},
	0x59: {Instruction: opEOR, Name: "EOR", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteY},
	0x41: {Instruction: opEOR, Name: "EOR", Size: 2, Cycles: 6, AddressingMode: IndirectX},
	0x51: {Instruction: opEOR, Name: "EOR", Size: 2, Cycles: 5, PageCrossPenalty: 1, AddressingMode: IndirectY},

	0xE6: {Instruction: opINC, Name: "INC", Size: 2, Cycles: 5, AddressingMode: ZeroPage},
	0xF6: {Instruction: opINC, Name: "INC", Size: 2, Cycles: 6, AddressingMode: ZeroPageX},
	0xEE: {Instruction: opINC, Name: "INC", Size: 3, Cycles: 6, AddressingMode: Absolute},
	0xFE: {Instruction: opINC, Name: "INC", Size: 3, Cycles: 7, AddressingMode: AbsoluteX},

	0xE8: {Instruction: opINX, Name: "INX", Size: 1, Cycles: 2, AddressingMode: Implied},
	0xC8: {Instruction: opINY, Name: "INY", Size: 1, Cycles: 2, AddressingMode: Implied},

	0x4C: {Instruction: opJMP, Name: "JMP", Size: 3, Cycles: 3, AddressingMode: Absolute},
	0x6C: {Instruction: opJMP, Name: "JMP", Size: 3, Cycles: 5, AddressingMode: Indirect},

	0x20: {Instruction: opJSR, Name: "JSR", Size: 3, Cycles: 6, AddressingMode: Absolute},

	0xA9: {Instruction: opLDA, Name: "LDA", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0xA5: {Instruction: opLDA, Name: "LDA", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0xB5: {Instruction: opLDA, Name: "LDA", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0xAD: {Instruction: opLDA, Name: "LDA", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0xBD: {Instruction: opLDA, Name: "LDA", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteX},
	0xB9: {Instruction: opLDA, Name: "LDA", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteY},
	0xA1: {Instruction: opLDA, Name: "LDA", Size: 2, Cycles: 6, AddressingMode: IndirectX},
	0xB1: {Instruction: opLDA, Name: "LDA", Size: 2, Cycles: 5, PageCrossPenalty: 1, AddressingMode: IndirectY},

	0xA2: {Instruction: opLDX, Name: "LDX", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0xA6: {Instruction: opLDX, Name: "LDX", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0xB6: {Instruction: opLDX, Name: "LDX", Size: 2, Cycles: 4, AddressingMode: ZeroPageY},
	0xAE: {Instruction: opLDX, Name: "LDX", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0xBE: {Instruction: opLDX, Name: "LDX", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteY},

	0xA0: {Instruction: opLDY, Name: "LDY", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0xA4: {Instruction: opLDY, Name: "LDY", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0xB4: {Instruction: opLDY, Name: "LDY", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0xAC: {Instruction: opLDY, Name: "LDY", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0xBC: {Instruction: opLDY, Name: "LDY", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteX},

	0x4A: {Instruction: opLSR, Name: "LSR", Size: 1, Cycles: 2, AddressingMode: Accumulator},
	0x46: {Instruction: opLSR, Name: "LSR", Size: 2, Cycles: 5, AddressingMode: ZeroPage},
	0x56: {Instruction: opLSR, Name: "LSR", Size: 2, Cycles: 6, AddressingMode: ZeroPageX},
	0x4E: {Instruction: opLSR, Name: "LSR", Size: 3, Cycles: 6, AddressingMode: Absolute},
	0x5E: {Instruction: opLSR, Name: "LSR", Size: 3, Cycles: 7, AddressingMode: AbsoluteX},

	0xEA: {Instruction: opNOP, Name: "NOP", Size: 1, Cycles: 2, AddressingMode: Implied},

	0x09: {Instruction: opORA, Name: "ORA", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0x05: {Instruction: opORA, Name: "ORA", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0x15: {Instruction: opORA, Name: "ORA", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0x0D: {Instruction: opORA, Name: "ORA", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0x1D: {Instruction: opORA, Name: "ORA", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteX},
	0x19: {Instruction: opORA, Name: "ORA", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteY},
	0x01: {Instruction: opORA, Name: "ORA", Size: 2, Cycles: 6, AddressingMode: IndirectX},
	0x11: {Instruction: opORA, Name: "ORA", Size: 2, Cycles: 5, PageCrossPenalty: 1, AddressingMode: IndirectY},

	0x48: {Instruction: opPHA, Name: "PHA", Size: 1, Cycles: 3, AddressingMode: Implied},
	0x08: {Instruction: opPHP, Name: "PHP", Size: 1, Cycles: 3, AddressingMode: Implied},
	0x68: {Instruction: opPLA, Name: "PLA", Size: 1, Cycles: 4, AddressingMode: Implied},
	0x28: {Instruction: opPLP, Name: "PLP", Size: 1, Cycles: 4, AddressingMode: Implied},

	0x2A: {Instruction: opROL, Name: "ROL", Size: 1, Cycles: 2, AddressingMode: Accumulator},
	0x26: {Instruction: opROL, Name: "ROL", Size: 2, Cycles: 5, AddressingMode: ZeroPage},
	0x36: {Instruction: opROL, Name: "ROL", Size: 2, Cycles: 6, AddressingMode: ZeroPageX},
	0x2E: {Instruction: opROL, Name: "ROL", Size: 3, Cycles: 6, AddressingMode: Absolute},
	0x3E: {Instruction: opROL, Name: "ROL", Size: 3, Cycles: 7, AddressingMode: AbsoluteX},

	0x6A: {Instruction: opROR, Name: "ROR", Size: 1, Cycles: 2, AddressingMode: Accumulator},
	0x66: {Instruction: opROR, Name: "ROR", Size: 2, Cycles: 5, AddressingMode: ZeroPage},
	0x76: {Instruction: opROR, Name: "ROR", Size: 2, Cycles: 6, AddressingMode: ZeroPageX},
	0x6E: {Instruction: opROR, Name: "ROR", Size: 3, Cycles: 6, AddressingMode: Absolute},
	0x7E: {Instruction: opROR, Name: "ROR", Size: 3, Cycles: 7, AddressingMode: AbsoluteX},

	0x40: {Instruction: opRTI, Name: "RTI", Size: 1, Cycles: 6, AddressingMode: Implied},
	0x60: {Instruction: opRTS, Name: "RTS", Size: 1, Cycles: 6, AddressingMode: Implied},

	0xE9: {Instruction: opSBC, Name: "SBC", Size: 2, Cycles: 2, AddressingMode: Immediate},
	0xE5: {Instruction: opSBC, Name: "SBC", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0xF5: {Instruction: opSBC, Name: "SBC", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0xED: {Instruction: opSBC, Name: "SBC", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0xFD: {Instruction: opSBC, Name: "SBC", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteX},
	0xF9: {Instruction: opSBC, Name: "SBC", Size: 3, Cycles: 4, PageCrossPenalty: 1, AddressingMode: AbsoluteY},
	0xE1: {Instruction: opSBC, Name: "SBC", Size: 2, Cycles: 6, AddressingMode: IndirectX},
	0xF1: {Instruction: opSBC, Name: "SBC", Size: 2, Cycles: 5, PageCrossPenalty: 1, AddressingMode: IndirectY},

	0x38: {Instruction: opSEC, Name: "SEC", Size: 1, Cycles: 2, AddressingMode: Implied},
	0xF8: {Instruction: opSED, Name: "SED", Size: 1, Cycles: 2, AddressingMode: Implied},
	0x78: {Instruction: opSEI, Name: "SEI", Size: 1, Cycles: 2, AddressingMode: Implied},

	0x85: {Instruction: opSTA, Name: "STA", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0x95: {Instruction: opSTA, Name: "STA", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0x8D: {Instruction: opSTA, Name: "STA", Size: 3, Cycles: 4, AddressingMode: Absolute},
	0x9D: {Instruction: opSTA, Name: "STA", Size: 3, Cycles: 5, AddressingMode: AbsoluteX},
	0x99: {Instruction: opSTA, Name: "STA", Size: 3, Cycles: 5, AddressingMode: AbsoluteY},
	0x81: {Instruction: opSTA, Name: "STA", Size: 2, Cycles: 6, AddressingMode: IndirectX},
	0x91: {Instruction: opSTA, Name: "STA", Size: 2, Cycles: 6, AddressingMode: IndirectY},

	0x86: {Instruction: opSTX, Name: "STX", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0x96: {Instruction: opSTX, Name: "STX", Size: 2, Cycles: 4, AddressingMode: ZeroPageY},
	0x8E: {Instruction: opSTX, Name: "STX", Size: 3, Cycles: 4, AddressingMode: Absolute},

	0x84: {Instruction: opSTY, Name: "STY", Size: 2, Cycles: 3, AddressingMode: ZeroPage},
	0x94: {Instruction: opSTY, Name: "STY", Size: 2, Cycles: 4, AddressingMode: ZeroPageX},
	0x8C: {Instruction: opSTY, Name: "STY", Size: 3, Cycles: 4, AddressingMode: Absolute},

	0xAA: {Instruction: opTAX, Name: "TAX", Size: 1, Cycles: 2, AddressingMode: Implied},
	0xA8: {Instruction: opTAY, Name: "TAY", Size: 1, Cycles: 2, AddressingMode: Implied},
	0xBA: {Instruction: opTSX, Name: "TSX", Size: 1, Cycles: 2, AddressingMode: Implied},
	0x8A: {Instruction: opTXA, Name: "TXA", Size: 1, Cycles: 2, AddressingMode: Implied},
	0x9A: {Instruction: opTXS, Name: "TXS", Size: 1, Cycles: 2, AddressingMode: Implied},
	0x98: {Instruction: opTYA, Name: "TYA", Size: 1, Cycles: 2, AddressingMode: Implied},
}

// pageCrossEligible reports whether mode is one of the three indexed
// modes that can ever earn a page-cross penalty cycle. Store
// instructions never pay it regardless of mode — their table entries
// above all carry a zero PageCrossPenalty, so this check alone is
// sufficient without special-casing stores.
func pageCrossEligible(mode AddressingMode) bool {
	return mode == AbsoluteX || mode == AbsoluteY || mode == IndirectY
}
