// Package cpu implements the MOS Technology 6502 microprocessor (more
// precisely, the Ricoh 2A03's CPU core) as used in the NES.
package cpu

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Alenthus/nestake/bus"
)

// Flags are packed into a single status byte (the P register), rather
// than eight separate bools. This is how the hardware actually stores
// them, it makes PHP/PLP/BRK/RTI trivial (push/pull one byte instead
// of eight), and it gives branch/compare logic a single value to
// compare against saved trace snapshots.
//
// 7654 3210
// NV1B DIZC
const (
	flagC byte = 1 << iota // carry
	flagZ                  // zero
	flagI                  // interrupt disable
	flagD                  // decimal (accepted, never consulted: NES 2A03 has no BCD mode)
	flagB                  // break (only ever observed on the stack, never in P itself)
	flagU                  // unused, always reads as 1
	flagV                  // overflow
	flagN                  // negative
)

// pendingInterrupt latches an interrupt request between Step calls.
type pendingInterrupt int

const (
	pendingNone pendingInterrupt = iota
	pendingIRQ
	pendingNMI
)

// The Cpu has no memory of its own beyond its registers. It interfaces
// with a bus.Bus for everything else.
type Cpu struct {
	Bus *bus.Bus

	A  byte // accumulator
	X  byte
	Y  byte
	SP byte // stack pointer, always addresses page 1 ($0100-$01ff)
	PC uint16
	P  byte // packed status flags, see the flag* constants above

	Cycles uint64 // total elapsed cycles since construction

	// Stall counts cycles the CPU is frozen for, e.g. during OAM DMA.
	// Step consumes one stalled cycle at a time rather than all at
	// once, so callers that drive Step in a loop see it tick down.
	Stall int

	pending pendingInterrupt
	mode    AddressingMode // set by Step before the Instruction handler runs; lets Accumulator-mode ops find their operand

	debug     bool
	traceSink io.Writer
}

// NewCpu wires a Cpu to a bus and brings it up via Reset, the same
// sequence a real 2A03 goes through when power is first applied.
func NewCpu(b *bus.Bus) *Cpu {
	c := &Cpu{Bus: b}
	c.Reset()
	return c
}

// Read reads one byte from the given addr via the bus.
func (c *Cpu) Read(addr uint16) byte {
	return c.Bus.Read8(addr)
}

// Write passes data to the bus. A write to $4014 additionally starts
// an OAM DMA stall: the bus performs the memory copy synchronously,
// but only the Cpu knows the parity of its own running cycle count,
// so the 513/514-cycle stall is accounted for here rather than in
// package bus.
func (c *Cpu) Write(addr uint16, data byte) {
	c.Bus.Write8(addr, data)
	if addr == 0x4014 {
		stall := 513
		if c.Cycles%2 != 0 {
			stall = 514
		}
		c.AddStall(stall)
	}
}

// AddStall adds n cycles of stall time, consumed one at a time by
// subsequent Step calls before any instruction executes.
func (c *Cpu) AddStall(n int) {
	c.Stall += n
}

// LoadProgram writes a whitespace-separated string of hex byte pairs
// into memory starting at addr. It exists for tests and the debugger;
// no real cartridge is loaded this way.
func (c *Cpu) LoadProgram(program []byte, addr uint16) {
	for i, s := range strings.Fields(string(program)) {
		b, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			panic(err)
		}
		c.Write(addr+uint16(i), byte(b))
	}
}

func (c *Cpu) getFlag(f byte) bool    { return c.P&f != 0 }
func (c *Cpu) setFlag(f byte, v bool) {
	if v {
		c.P |= f
	} else {
		c.P &^= f
	}
}

// setZN sets the Zero and Negative flags from v, the common tail end
// of almost every load/arithmetic/logic instruction.
func (c *Cpu) setZN(v byte) {
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagN, v&0x80 != 0)
}

// Flag accessors, mostly useful for tests and the debugger.
func (c *Cpu) Carry() bool     { return c.getFlag(flagC) }
func (c *Cpu) Zero() bool      { return c.getFlag(flagZ) }
func (c *Cpu) Interrupt() bool { return c.getFlag(flagI) }
func (c *Cpu) Decimal() bool   { return c.getFlag(flagD) }
func (c *Cpu) Overflow() bool  { return c.getFlag(flagV) }
func (c *Cpu) Negative() bool  { return c.getFlag(flagN) }

// push8 writes v to the stack and decrements SP.
func (c *Cpu) push8(v byte) {
	c.Write(0x0100|uint16(c.SP), v)
	c.SP--
}

// pull8 increments SP and reads the stack.
func (c *Cpu) pull8() byte {
	c.SP++
	return c.Read(0x0100 | uint16(c.SP))
}

// push16 pushes the high byte, then the low byte, matching pull16's
// read order (low, then high) so push16(v); pull16() round-trips.
func (c *Cpu) push16(v uint16) {
	c.push8(byte(v >> 8))
	c.push8(byte(v))
}

func (c *Cpu) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

// Reset brings the Cpu to its power-up/reset state: registers take
// their documented reset values and PC loads from the reset vector.
// Reset may be invoked more than once (a real NES's reset line can be
// pulled at any time); repeated calls reinitialize registers but do
// not perturb Cycles, which only ever counts up.
func (c *Cpu) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xfd
	c.P = flagI | flagU
	c.pending = pendingNone
	c.Stall = 0
	c.PC = c.Bus.Read16(0xfffc)
}

// TriggerNMI latches a pending non-maskable interrupt. NMI cannot be
// masked or ignored and always wins a race against a pending IRQ, so
// it unconditionally overwrites whatever was latched before.
func (c *Cpu) TriggerNMI() {
	c.pending = pendingNMI
}

// TriggerIRQ latches a pending maskable interrupt, unless the
// interrupt-disable flag is set or an NMI is already waiting to fire
// (NMI must not be clobbered by a subsequent IRQ request).
func (c *Cpu) TriggerIRQ() {
	if c.getFlag(flagI) || c.pending == pendingNMI {
		return
	}
	c.pending = pendingIRQ
}

// serviceInterrupt runs the pending interrupt, if any, per §4.5: push
// PC, push status with B clear and U set, set I, load PC from the
// interrupt vector, and spend 7 cycles. It reports whether it did
// anything, so Step knows to skip instruction dispatch this call.
func (c *Cpu) serviceInterrupt() bool {
	var vector uint16
	switch c.pending {
	case pendingNMI:
		vector = 0xfffa
	case pendingIRQ:
		vector = 0xfffe
	default:
		return false
	}
	c.push16(c.PC)
	c.push8((c.P | flagU) &^ flagB)
	c.setFlag(flagI, true)
	c.PC = c.Bus.Read16(vector)
	c.Cycles += 7
	c.pending = pendingNone
	return true
}

// DecodeError reports an attempt to decode a byte that is not one of
// the 151 official 6502 opcodes. Unofficial opcodes are a non-goal;
// hitting one is a fatal decode error rather than a silent NOP.
type DecodeError struct {
	PC     uint16
	Opcode byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode $%02X at $%04X", e.Opcode, e.PC)
}

// Step drives exactly one instruction boundary: service a pending
// interrupt or consume one stall cycle, or fetch/decode/execute one
// instruction. It returns the number of cycles the step consumed.
func (c *Cpu) Step() (uint64, error) {
	if c.Stall > 0 {
		c.Stall--
		c.Cycles++
		return 1, nil
	}

	before := c.Cycles
	if c.serviceInterrupt() {
		return c.Cycles - before, nil
	}

	startPC := c.PC
	op := c.Read(c.PC)
	instr, ok := Opcodes[op]
	if !ok {
		return 0, &DecodeError{PC: c.PC, Opcode: op}
	}

	c.mode = instr.AddressingMode
	ea, pageCrossed := resolveAddress(c, instr.AddressingMode)

	c.PC += uint16(instr.Size)
	c.Cycles += uint64(instr.Cycles)
	if pageCrossed && pageCrossEligible(instr.AddressingMode) {
		c.Cycles += uint64(instr.PageCrossPenalty)
	}

	extra := instr.Instruction(c, ea)
	c.Cycles += uint64(extra)

	if c.debug {
		c.emitTrace(startPC, op, instr, ea)
	}

	return c.Cycles - before, nil
}

// SetDebug turns trace emission on or off. Tracing has no effect
// unless a sink has also been set via SetTraceSink.
func (c *Cpu) SetDebug(v bool) { c.debug = v }

// SetTraceSink directs per-instruction trace records to w.
func (c *Cpu) SetTraceSink(w io.Writer) { c.traceSink = w }

// TraceRecord is one decoded instruction's worth of CPU state,
// captured right after the instruction executes: PC is the address of
// the instruction itself, while the registers and Cycles are the
// values it left behind.
type TraceRecord struct {
	PC     uint16
	Opcode byte
	Name   string
	Mode   AddressingMode
	EA     uint16
	A, X, Y, SP, P byte
	Cycles uint64
}

func (r TraceRecord) String() string {
	return fmt.Sprintf("%04X  %02X  %-4s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		r.PC, r.Opcode, r.Name, r.A, r.X, r.Y, r.P, r.SP, r.Cycles)
}

func (c *Cpu) emitTrace(pc uint16, op byte, instr Opcode, ea uint16) {
	if c.traceSink == nil {
		return
	}
	rec := TraceRecord{
		PC: pc, Opcode: op, Name: instr.Name, Mode: instr.AddressingMode, EA: ea,
		A: c.A, X: c.X, Y: c.Y, SP: c.SP, P: c.P, Cycles: c.Cycles,
	}
	fmt.Fprintln(c.traceSink, rec.String())
}
