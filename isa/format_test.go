package isa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstructionString(t *testing.T) {
	require.Equal(t, "LXI H, 0x1234", Instruction{Kind: LXI, Pair: HL, Addr: 0x1234}.String())
	require.Equal(t, "MVI B, 0x42", Instruction{Kind: MVI, Reg: B, Imm8: 0x42}.String())
	require.Equal(t, "MOV B, C", Instruction{Kind: MOV, Dst: B, Reg: C}.String())
	require.Equal(t, "JMP 0x1000", Instruction{Kind: JMP, Addr: 0x1000}.String())
	require.Equal(t, "RST 2", Instruction{Kind: RST, Imm8: 2}.String())
	require.Equal(t, "NOP", Instruction{Kind: NOP}.String())
}

func TestDisassemble(t *testing.T) {
	rom := []byte{0x3E, 0x42, 0x76, 0xC3, 0x00}
	lines := Disassemble(rom)
	// MVI A,0x42 (2 bytes); HLT (1 byte); then a truncated JMP, which
	// Disassemble renders byte-by-byte rather than stopping early.
	require.Equal(t, uint16(0), lines[0].Addr)
	require.Equal(t, MVI, lines[0].Instruction.Kind)
	require.Equal(t, uint16(2), lines[1].Addr)
	require.Equal(t, HLT, lines[1].Instruction.Kind)
	require.Equal(t, uint16(3), lines[2].Addr)
	require.Contains(t, lines[2].Text, "db 0xC3")
}
