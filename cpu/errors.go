package cpu

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned by LoadIntoMemory when the supplied image is
// larger than the 64 KiB address space.
var ErrOutOfMemory = errors.New("cpu: rom exceeds 65536 bytes")

// ErrIllegalOperand marks a structural misuse that a correctly decoded
// Instruction can never produce: isa's Reg8/RegPair/StackPair split keeps
// this unreachable from real decode output, but the type is kept as the
// defensive fallback spec.md §7 calls for.
var ErrIllegalOperand = errors.New("cpu: illegal operand")

// BadMemoryAccessError marks an address computation that escaped the
// 0..0xFFFF window. With memory sized at exactly 2^16 and all addresses
// carried as uint16, this can never actually be constructed; it exists
// only as the defensive error kind spec.md §7 requires implementations to
// keep on hand.
type BadMemoryAccessError struct {
	Address uint16
}

func (e *BadMemoryAccessError) Error() string {
	return fmt.Sprintf("cpu: bad memory access at 0x%04X", e.Address)
}

// BadOpcodeError is returned from Step when the byte at PC does not decode
// to a defined instruction.
type BadOpcodeError struct {
	Address uint16
	Err     error
}

func (e *BadOpcodeError) Error() string {
	return fmt.Sprintf("cpu: bad opcode at 0x%04X: %v", e.Address, e.Err)
}

func (e *BadOpcodeError) Unwrap() error { return e.Err }
