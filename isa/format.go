package isa

import "fmt"

// String renders the instruction's printable mnemonic with operands in
// hex, e.g. "MVI B, 0x12" or "JMP 0x1234".
func (in Instruction) String() string {
	switch in.Kind {
	case LXI:
		return fmt.Sprintf("LXI %s, 0x%04X", in.Pair, in.Addr)
	case STAX, LDAX:
		return fmt.Sprintf("%s %s", in.Kind, in.Pair)
	case INX, DCX, DAD:
		return fmt.Sprintf("%s %s", in.Kind, in.Pair)
	case PUSH, POP:
		return fmt.Sprintf("%s %s", in.Kind, in.Stack)
	case INR, DCR:
		return fmt.Sprintf("%s %s", in.Kind, in.Reg)
	case MVI:
		return fmt.Sprintf("MVI %s, 0x%02X", in.Reg, in.Imm8)
	case ADD, ADC, SUB, SBB, ANA, XRA, ORA, CMP:
		return fmt.Sprintf("%s %s", in.Kind, in.Reg)
	case MOV:
		return fmt.Sprintf("MOV %s, %s", in.Dst, in.Reg)
	case JMP, JNZ, JZ, JNC, JC, JPO, JPE, JP, JM,
		CALL, CNZ, CZ, CNC, CC, CPO, CPE, CP, CM,
		SHLD, LHLD, STA, LDA:
		return fmt.Sprintf("%s 0x%04X", in.Kind, in.Addr)
	case ADI, ACI, SUI, SBI, ANI, XRI, ORI, CPI, IN, OUT:
		return fmt.Sprintf("%s 0x%02X", in.Kind, in.Imm8)
	case RST:
		return fmt.Sprintf("RST %d", in.Imm8)
	default:
		return in.Kind.String()
	}
}

// Line is one disassembled instruction, as Disassemble produces it.
type Line struct {
	Addr        uint16
	Instruction Instruction
	Text        string // formatted "0xADDR MNEMONIC"
}

// Disassemble walks rom from offset 0, decoding one instruction per line
// and advancing by its encoded length. A decode failure advances by a
// single byte and renders as a raw data byte, so the walk always reaches
// the end of rom. Grounded in original_source's disassemble() free
// function (eighty-eighty/src/lib.rs).
func Disassemble(rom []byte) []Line {
	var lines []Line
	pos := 0
	for pos < len(rom) {
		addr := uint16(pos)
		in, n, err := Decode(rom[pos:])
		if err != nil {
			lines = append(lines, Line{
				Addr: addr,
				Text: fmt.Sprintf("0x%04X db 0x%02X", addr, rom[pos]),
			})
			pos++
			continue
		}
		lines = append(lines, Line{
			Addr:        addr,
			Instruction: in,
			Text:        fmt.Sprintf("0x%04X %s", addr, in),
		})
		pos += n
	}
	return lines
}
