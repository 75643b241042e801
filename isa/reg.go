package isa

// Reg8 names an 8-bit register or the memory operand M ((H,L) indirect).
type Reg8 int

const (
	A Reg8 = iota
	B
	C
	D
	E
	H
	L
	M
)

func (r Reg8) String() string {
	switch r {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	case E:
		return "E"
	case H:
		return "H"
	case L:
		return "L"
	case M:
		return "M"
	default:
		return "?"
	}
}

// reg8Table maps the 3-bit register field (bits 5-3 or 2-0 of an opcode) to
// a Reg8, per the 8080 manual's fixed encoding: 000=B 001=C 010=D 011=E
// 100=H 101=L 110=M 111=A.
var reg8Table = [8]Reg8{B, C, D, E, H, L, M, A}

// decodeReg8 extracts an 8080 3-bit register field.
func decodeReg8(bits byte) Reg8 {
	return reg8Table[bits&0x07]
}

// RegPair names a 16-bit register pair usable by LXI, INX, DCX, DAD, LDAX
// and STAX. SP stands for the stack pointer itself in this context.
type RegPair int

const (
	BC RegPair = iota
	DE
	HL
	SP
)

func (rp RegPair) String() string {
	switch rp {
	case BC:
		return "B"
	case DE:
		return "D"
	case HL:
		return "H"
	case SP:
		return "SP"
	default:
		return "?"
	}
}

// regPairTable maps the 2-bit pair field (bits 5-4) to a RegPair: 00=BC
// 01=DE 10=HL 11=SP.
var regPairTable = [4]RegPair{BC, DE, HL, SP}

func decodeRegPair(bits byte) RegPair {
	return regPairTable[bits&0x03]
}

// StackPair names a 16-bit register pair usable by PUSH and POP, where the
// SP slot of RegPair is replaced by PSW (accumulator + flags).
type StackPair int

const (
	StackBC StackPair = iota
	StackDE
	StackHL
	PSW
)

func (sp StackPair) String() string {
	switch sp {
	case StackBC:
		return "B"
	case StackDE:
		return "D"
	case StackHL:
		return "H"
	case PSW:
		return "PSW"
	default:
		return "?"
	}
}

var stackPairTable = [4]StackPair{StackBC, StackDE, StackHL, PSW}

func decodeStackPair(bits byte) StackPair {
	return stackPairTable[bits&0x03]
}

// Condition names one of the eight branch/call/return conditions, encoded
// in bits 5-3 of the corresponding opcode.
type Condition int

const (
	CondNZ Condition = iota
	CondZ
	CondNC
	CondC
	CondPO
	CondPE
	CondP
	CondM
)

func (cc Condition) String() string {
	switch cc {
	case CondNZ:
		return "NZ"
	case CondZ:
		return "Z"
	case CondNC:
		return "NC"
	case CondC:
		return "C"
	case CondPO:
		return "PO"
	case CondPE:
		return "PE"
	case CondP:
		return "P"
	case CondM:
		return "M"
	default:
		return "?"
	}
}

var conditionTable = [8]Condition{CondNZ, CondZ, CondNC, CondC, CondPO, CondPE, CondP, CondM}

func decodeCondition(bits byte) Condition {
	return conditionTable[bits&0x07]
}
