// Package cpu implements the Intel 8080 executor: register and flag state,
// the 64 KiB address space, and the Step loop that fetches, decodes via
// package isa, and executes one instruction at a time. It has no notion of
// wall-clock timing or peripheral devices; see package host for those.
package cpu

import "github.com/go8080/i8080/isa"

// BusWriter receives OUT instruction writes. A nil bus makes OUT a no-op.
type BusWriter interface {
	OUT(port, value byte)
}

// BusReader receives IN instruction reads. CPU type-asserts its bus against
// this interface, so a BusWriter that does not also implement BusReader
// simply returns 0 for every IN.
type BusReader interface {
	IN(port byte) byte
}

// CPU holds the full architectural state of an 8080: the seven working
// registers, program counter and stack pointer, condition flags, the 64 KiB
// memory array, and the halt/interrupt-enable latches.
type CPU struct {
	A, B, C, D, E, H, L byte
	PC, SP              uint16
	Flags               Flags

	halted    bool
	intEnable bool

	memory [65536]byte
	bus    BusWriter
}

// New returns a CPU with zeroed registers and memory, PC and SP at 0, and
// interrupts disabled. bus may be nil if the program never executes IN/OUT.
func New(bus BusWriter) *CPU {
	return &CPU{bus: bus}
}

// LoadIntoMemory copies program into memory starting at address 0. It
// returns ErrOutOfMemory if program does not fit in the 64 KiB space.
func (c *CPU) LoadIntoMemory(program []byte) error {
	if len(program) > len(c.memory) {
		return ErrOutOfMemory
	}
	copy(c.memory[:], program)
	return nil
}

// Halted reports whether the CPU has executed HLT and not yet received an
// interrupt to release it.
func (c *CPU) Halted() bool { return c.halted }

// InterruptsEnabled reports the state of the interrupt-enable latch set by
// EI and cleared by DI and by interrupt acceptance.
func (c *CPU) InterruptsEnabled() bool { return c.intEnable }

// Memory returns a copy of the 64 KiB address space, for disassembly or
// inspection by callers. It copies rather than aliasing the live array, so
// later Steps do not change the slice a caller holds. The copy itself is
// not synchronized with a concurrently running Step.
func (c *CPU) Memory() []byte {
	cp := c.memory
	return cp[:]
}

func (c *CPU) readByte(addr uint16) byte     { return c.memory[addr] }
func (c *CPU) writeByte(addr uint16, v byte) { c.memory[addr] = v }

func (c *CPU) bc() uint16 { return pack(c.B, c.C) }
func (c *CPU) de() uint16 { return pack(c.D, c.E) }
func (c *CPU) hl() uint16 { return pack(c.H, c.L) }

func (c *CPU) setBC(v uint16) { c.B, c.C = unpack(v) }
func (c *CPU) setDE(v uint16) { c.D, c.E = unpack(v) }
func (c *CPU) setHL(v uint16) { c.H, c.L = unpack(v) }

func pack(hi, lo byte) uint16 { return uint16(hi)<<8 | uint16(lo) }
func unpack(v uint16) (hi, lo byte) { return byte(v >> 8), byte(v) }

// pairValue reads a RegPair as used by LXI, INX, DCX, DAD, STAX and LDAX.
func (c *CPU) pairValue(p isa.RegPair) uint16 {
	switch p {
	case isa.BC:
		return c.bc()
	case isa.DE:
		return c.de()
	case isa.HL:
		return c.hl()
	default: // isa.SP
		return c.SP
	}
}

func (c *CPU) setPair(p isa.RegPair, v uint16) {
	switch p {
	case isa.BC:
		c.setBC(v)
	case isa.DE:
		c.setDE(v)
	case isa.HL:
		c.setHL(v)
	default: // isa.SP
		c.SP = v
	}
}

// stackPairValue reads a StackPair as pushed by PUSH: the PSW slot packs A
// and Flags into a single 16-bit value, high byte first.
func (c *CPU) stackPairValue(sp isa.StackPair) uint16 {
	switch sp {
	case isa.StackBC:
		return c.bc()
	case isa.StackDE:
		return c.de()
	case isa.StackHL:
		return c.hl()
	default: // isa.PSW
		return pack(c.A, c.Flags.Pack())
	}
}

func (c *CPU) setStackPair(sp isa.StackPair, v uint16) {
	switch sp {
	case isa.StackBC:
		c.setBC(v)
	case isa.StackDE:
		c.setDE(v)
	case isa.StackHL:
		c.setHL(v)
	default: // isa.PSW
		hi, lo := unpack(v)
		c.A = hi
		c.Flags = UnpackFlags(lo)
	}
}

// readReg8 reads an 8-bit operand, dereferencing through (H,L) for M.
func (c *CPU) readReg8(r isa.Reg8) byte {
	switch r {
	case isa.A:
		return c.A
	case isa.B:
		return c.B
	case isa.C:
		return c.C
	case isa.D:
		return c.D
	case isa.E:
		return c.E
	case isa.H:
		return c.H
	case isa.L:
		return c.L
	default: // isa.M
		return c.readByte(c.hl())
	}
}

func (c *CPU) writeReg8(r isa.Reg8, v byte) {
	switch r {
	case isa.A:
		c.A = v
	case isa.B:
		c.B = v
	case isa.C:
		c.C = v
	case isa.D:
		c.D = v
	case isa.E:
		c.E = v
	case isa.H:
		c.H = v
	case isa.L:
		c.L = v
	default: // isa.M
		c.writeByte(c.hl(), v)
	}
}

func (c *CPU) conditionHolds(cc isa.Condition) bool {
	switch cc {
	case isa.CondNZ:
		return !c.Flags.Z
	case isa.CondZ:
		return c.Flags.Z
	case isa.CondNC:
		return !c.Flags.CY
	case isa.CondC:
		return c.Flags.CY
	case isa.CondPO:
		return !c.Flags.P
	case isa.CondPE:
		return c.Flags.P
	case isa.CondP:
		return !c.Flags.S
	default: // isa.CondM
		return c.Flags.S
	}
}

// Step fetches and decodes the instruction at PC, advances PC past it, and
// executes it. Advancing before dispatch means control-flow instructions
// see their own operand already consumed, and simply overwrite PC outright
// to branch. A halted CPU does not fetch; Step returns immediately.
func (c *CPU) Step() error {
	if c.halted {
		return nil
	}
	start := c.PC
	in, n, err := isa.Decode(c.memory[start:])
	if err != nil {
		return &BadOpcodeError{Address: start, Err: err}
	}
	c.PC = start + uint16(n)
	c.execute(in)
	return nil
}

// GenerateInterrupt simulates hardware asserting INT with an RST vector
// already on the data bus: if interrupts are enabled, it pushes PC and
// jumps to n*8, exactly as RST n does from a decoded instruction. A
// pending HLT is released by this call even though EI was never re-issued,
// since real 8080 hardware resumes the fetch/execute cycle on any accepted
// interrupt, not only after EI.
func (c *CPU) GenerateInterrupt(n byte) {
	if !c.intEnable {
		return
	}
	c.halted = false
	c.intEnable = false
	c.doCall(uint16(n) * 8)
}
