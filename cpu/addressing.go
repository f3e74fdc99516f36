package cpu

// An AddressingMode tells the Cpu where to find a given instruction's
// operand. There are 13 possible modes. Most can index the full 64 KiB
// address space; ZeroPage-family modes are confined to the first page.
type AddressingMode int

const (
	Implied     AddressingMode = iota // no operand
	Accumulator                       // operand is the A register itself

	Immediate // operand is the byte following the opcode
	ZeroPage  // 0x0000-0x00ff
	ZeroPageX
	ZeroPageY // only used by LDX/STX
	IndirectX // (zp,X): pointer built from a zero-page byte indexed by X before dereferencing
	IndirectY // (zp),Y: pointer dereferenced first, then indexed by Y

	Relative // branch target, signed 8-bit offset from the following instruction

	Absolute
	AbsoluteX
	AbsoluteY

	Indirect // JMP only; reproduces the page-boundary fetch bug
)

// page returns the high byte of addr, used to detect page crosses.
func page(addr uint16) uint16 { return addr & 0xff00 }

// resolveAddress is the Addressing Unit: given the current instruction's
// mode, it computes the effective address and whether computing it
// crossed a page boundary, reading operand bytes relative to c.PC
// (which still points at the opcode byte — Step advances it separately,
// after this call). It never mutates c.PC itself.
func resolveAddress(c *Cpu, mode AddressingMode) (ea uint16, pageCrossed bool) {
	pc := c.PC
	switch mode {
	case Implied, Accumulator:
		return 0, false

	case Immediate:
		return pc + 1, false

	case ZeroPage:
		return uint16(c.Read(pc + 1)), false

	case ZeroPageX:
		return uint16(c.Read(pc+1) + c.X), false

	case ZeroPageY:
		return uint16(c.Read(pc+1) + c.Y), false

	case Absolute:
		return c.Bus.Read16(pc + 1), false

	case AbsoluteX:
		base := c.Bus.Read16(pc + 1)
		addr := base + uint16(c.X)
		return addr, page(base) != page(addr)

	case AbsoluteY:
		base := c.Bus.Read16(pc + 1)
		addr := base + uint16(c.Y)
		return addr, page(base) != page(addr)

	case IndirectX:
		zp := uint16(c.Read(pc+1) + c.X)
		return c.Bus.Read16Wrap(zp), false

	case IndirectY:
		zp := uint16(c.Read(pc + 1))
		base := c.Bus.Read16Wrap(zp)
		addr := base + uint16(c.Y)
		return addr, page(base) != page(addr)

	case Indirect:
		ptr := c.Bus.Read16(pc + 1)
		return c.Bus.Read16Wrap(ptr), false

	case Relative:
		offset := c.Read(pc + 1)
		return pc + 2 + uint16(int8(offset)), false
	}
	return 0, false
}
