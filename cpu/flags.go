package cpu

import "github.com/go8080/i8080/isa"

// Flags holds the five 8080 condition codes as independent bits. See
// spec.md §3 for the packed Processor Status Word layout.
type Flags struct {
	Z  bool // zero
	S  bool // sign (bit 7 of result)
	P  bool // parity (even parity over low 8 bits)
	CY bool // carry / borrow
	AC bool // auxiliary (half) carry
}

// Fixed PSW bits per spec.md §3: bit5 and bit3 read as 0, bit1 reads as 1.
const (
	pswSign   = 0x80
	pswZero   = 0x40
	pswAux    = 0x10
	pswParity = 0x04
	pswFixed1 = 0x02
	pswCarry  = 0x01
)

// Pack encodes the flags into a Processor Status Word byte.
func (f Flags) Pack() byte {
	var b byte = pswFixed1
	if f.S {
		b |= pswSign
	}
	if f.Z {
		b |= pswZero
	}
	if f.AC {
		b |= pswAux
	}
	if f.P {
		b |= pswParity
	}
	if f.CY {
		b |= pswCarry
	}
	return b
}

// UnpackFlags decodes a Processor Status Word byte into Flags, ignoring
// the fixed bits.
func UnpackFlags(psw byte) Flags {
	return Flags{
		S:  psw&pswSign != 0,
		Z:  psw&pswZero != 0,
		AC: psw&pswAux != 0,
		P:  psw&pswParity != 0,
		CY: psw&pswCarry != 0,
	}
}

func (c *CPU) updateZSP(result byte) {
	c.Flags.Z = result == 0
	c.Flags.S = result&0x80 != 0
	c.Flags.P = isa.Parity(result)
}
