package cpu

// Execution Unit: one function per official mnemonic. Each receives
// the effective address the Addressing Unit resolved and returns any
// extra cycles it earns beyond the opcode's table entry (nonzero only
// for taken branches). Reference:
// https://www.nesdev.org/obelisk-6502-guide/reference.html

// loadByte reads the operand for an Accumulator/memory dual-mode
// instruction (the shift/rotate family): the A register for
// Accumulator mode, memory otherwise.
func (c *Cpu) loadByte(ea uint16) byte {
	if c.mode == Accumulator {
		return c.A
	}
	return c.Read(ea)
}

// storeByte is loadByte's write-back counterpart.
func (c *Cpu) storeByte(ea uint16, v byte) {
	if c.mode == Accumulator {
		c.A = v
	} else {
		c.Write(ea, v)
	}
}

// adcCore performs A = A + m + carry, setting C, V, Z, N. SBC is
// expressed in terms of this: SBC(A, M, C) == ADC(A, ^M, C).
func adcCore(c *Cpu, m byte) {
	a := c.A
	var carryIn uint16
	if c.getFlag(flagC) {
		carryIn = 1
	}
	sum := uint16(a) + uint16(m) + carryIn
	result := byte(sum)

	c.setFlag(flagC, sum > 0xff)
	c.setFlag(flagV, (a^m)&0x80 == 0 && (a^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func opADC(c *Cpu, ea uint16) byte {
	adcCore(c, c.Read(ea))
	return 0
}

func opSBC(c *Cpu, ea uint16) byte {
	adcCore(c, ^c.Read(ea))
	return 0
}

func opAND(c *Cpu, ea uint16) byte {
	c.A &= c.Read(ea)
	c.setZN(c.A)
	return 0
}

func opASL(c *Cpu, ea uint16) byte {
	v := c.loadByte(ea)
	c.setFlag(flagC, v&0x80 != 0)
	v <<= 1
	c.setZN(v)
	c.storeByte(ea, v)
	return 0
}

// branch is the shared tail of every conditional branch: if taken, it
// moves PC to ea and reports the extra cycles earned (1 for taking the
// branch, one more if it crosses into a different page). c.PC here is
// already the address of the instruction following the branch, since
// Step advances PC before dispatching.
func branch(c *Cpu, taken bool, ea uint16) byte {
	if !taken {
		return 0
	}
	extra := byte(1)
	if page(c.PC) != page(ea) {
		extra++
	}
	c.PC = ea
	return extra
}

func opBCC(c *Cpu, ea uint16) byte { return branch(c, !c.getFlag(flagC), ea) }
func opBCS(c *Cpu, ea uint16) byte { return branch(c, c.getFlag(flagC), ea) }
func opBEQ(c *Cpu, ea uint16) byte { return branch(c, c.getFlag(flagZ), ea) }
func opBMI(c *Cpu, ea uint16) byte { return branch(c, c.getFlag(flagN), ea) }
func opBNE(c *Cpu, ea uint16) byte { return branch(c, !c.getFlag(flagZ), ea) }
func opBPL(c *Cpu, ea uint16) byte { return branch(c, !c.getFlag(flagN), ea) }
func opBVC(c *Cpu, ea uint16) byte { return branch(c, !c.getFlag(flagV), ea) }
func opBVS(c *Cpu, ea uint16) byte { return branch(c, c.getFlag(flagV), ea) }

func opBIT(c *Cpu, ea uint16) byte {
	m := c.Read(ea)
	c.setFlag(flagZ, c.A&m == 0)
	c.setFlag(flagV, m&0x40 != 0)
	c.setFlag(flagN, m&0x80 != 0)
	return 0
}

// opBRK forces an interrupt: the byte after the BRK opcode is skipped
// (conventionally a break-reason mark), the return address pushed is
// PC+1 beyond that, and the pushed status has B set (unlike NMI/IRQ).
func opBRK(c *Cpu, ea uint16) byte {
	c.push16(c.PC + 1)
	c.push8(c.P | flagB | flagU)
	c.setFlag(flagI, true)
	c.PC = c.Bus.Read16(0xfffe)
	return 0
}

func opCLC(c *Cpu, ea uint16) byte { c.setFlag(flagC, false); return 0 }
func opCLD(c *Cpu, ea uint16) byte { c.setFlag(flagD, false); return 0 }
func opCLI(c *Cpu, ea uint16) byte { c.setFlag(flagI, false); return 0 }
func opCLV(c *Cpu, ea uint16) byte { c.setFlag(flagV, false); return 0 }
func opSEC(c *Cpu, ea uint16) byte { c.setFlag(flagC, true); return 0 }
func opSED(c *Cpu, ea uint16) byte { c.setFlag(flagD, true); return 0 }
func opSEI(c *Cpu, ea uint16) byte { c.setFlag(flagI, true); return 0 }

// compare is shared by CMP/CPX/CPY, which differ only in which
// register participates; unlike some emulators' shortcuts, each is
// implemented against its own register rather than routed through CMP.
func compare(c *Cpu, reg, m byte) {
	c.setFlag(flagC, reg >= m)
	c.setZN(reg - m)
}

func opCMP(c *Cpu, ea uint16) byte { compare(c, c.A, c.Read(ea)); return 0 }
func opCPX(c *Cpu, ea uint16) byte { compare(c, c.X, c.Read(ea)); return 0 }
func opCPY(c *Cpu, ea uint16) byte { compare(c, c.Y, c.Read(ea)); return 0 }

func opDEC(c *Cpu, ea uint16) byte {
	v := c.Read(ea) - 1
	c.Write(ea, v)
	c.setZN(v)
	return 0
}

func opDEX(c *Cpu, ea uint16) byte { c.X--; c.setZN(c.X); return 0 }
func opDEY(c *Cpu, ea uint16) byte { c.Y--; c.setZN(c.Y); return 0 }

func opEOR(c *Cpu, ea uint16) byte {
	c.A ^= c.Read(ea)
	c.setZN(c.A)
	return 0
}

func opINC(c *Cpu, ea uint16) byte {
	v := c.Read(ea) + 1
	c.Write(ea, v)
	c.setZN(v)
	return 0
}

func opINX(c *Cpu, ea uint16) byte { c.X++; c.setZN(c.X); return 0 }
func opINY(c *Cpu, ea uint16) byte { c.Y++; c.setZN(c.Y); return 0 }

func opJMP(c *Cpu, ea uint16) byte {
	c.PC = ea
	return 0
}

// opJSR pushes the address of the last byte of the JSR instruction
// (not the next instruction's address — RTS adds 1 back). PC has
// already advanced to the byte past JSR's 3 bytes by the time this
// runs, so that address is PC-1.
func opJSR(c *Cpu, ea uint16) byte {
	c.push16(c.PC - 1)
	c.PC = ea
	return 0
}

func opRTS(c *Cpu, ea uint16) byte {
	c.PC = c.pull16() + 1
	return 0
}

func opRTI(c *Cpu, ea uint16) byte {
	c.P = (c.pull8() | flagU) &^ flagB
	c.PC = c.pull16()
	return 0
}

func opLDA(c *Cpu, ea uint16) byte { c.A = c.Read(ea); c.setZN(c.A); return 0 }
func opLDX(c *Cpu, ea uint16) byte { c.X = c.Read(ea); c.setZN(c.X); return 0 }
func opLDY(c *Cpu, ea uint16) byte { c.Y = c.Read(ea); c.setZN(c.Y); return 0 }

func opLSR(c *Cpu, ea uint16) byte {
	v := c.loadByte(ea)
	c.setFlag(flagC, v&0x01 != 0)
	v >>= 1
	c.setZN(v)
	c.storeByte(ea, v)
	return 0
}

func opNOP(c *Cpu, ea uint16) byte { return 0 }

func opORA(c *Cpu, ea uint16) byte {
	c.A |= c.Read(ea)
	c.setZN(c.A)
	return 0
}

func opPHA(c *Cpu, ea uint16) byte { c.push8(c.A); return 0 }

// opPHP pushes the status byte with B and U both forced to 1, per the
// stacking convention: a software-initiated push always shows B set.
func opPHP(c *Cpu, ea uint16) byte {
	c.push8(c.P | flagB | flagU)
	return 0
}

func opPLA(c *Cpu, ea uint16) byte {
	c.A = c.pull8()
	c.setZN(c.A)
	return 0
}

// opPLP restores P from the stack, but B and U are not real storage:
// U always reads 1 and B is never observed in P itself.
func opPLP(c *Cpu, ea uint16) byte {
	c.P = (c.pull8() | flagU) &^ flagB
	return 0
}

func opROL(c *Cpu, ea uint16) byte {
	v := c.loadByte(ea)
	carryIn := byte(0)
	if c.getFlag(flagC) {
		carryIn = 1
	}
	c.setFlag(flagC, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.setZN(v)
	c.storeByte(ea, v)
	return 0
}

func opROR(c *Cpu, ea uint16) byte {
	v := c.loadByte(ea)
	carryIn := byte(0)
	if c.getFlag(flagC) {
		carryIn = 0x80
	}
	c.setFlag(flagC, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.setZN(v)
	c.storeByte(ea, v)
	return 0
}

func opSTA(c *Cpu, ea uint16) byte { c.Write(ea, c.A); return 0 }
func opSTX(c *Cpu, ea uint16) byte { c.Write(ea, c.X); return 0 }
func opSTY(c *Cpu, ea uint16) byte { c.Write(ea, c.Y); return 0 }

func opTAX(c *Cpu, ea uint16) byte { c.X = c.A; c.setZN(c.X); return 0 }
func opTAY(c *Cpu, ea uint16) byte { c.Y = c.A; c.setZN(c.Y); return 0 }
func opTXA(c *Cpu, ea uint16) byte { c.A = c.X; c.setZN(c.A); return 0 }
func opTYA(c *Cpu, ea uint16) byte { c.A = c.Y; c.setZN(c.A); return 0 }

// opTSX/opTXS move the stack pointer register directly; unlike most
// other register transfers they never touch the memory SP points at.
func opTSX(c *Cpu, ea uint16) byte { c.X = c.SP; c.setZN(c.X); return 0 }
func opTXS(c *Cpu, ea uint16) byte { c.SP = c.X; return 0 }
