package isa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeNoOperand(t *testing.T) {
	in, n, err := Decode([]byte{0x00})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, NOP, in.Kind)
}

func TestDecodeMOV(t *testing.T) {
	// MOV B, C = 01 000 001 = 0x41
	in, n, err := Decode([]byte{0x41})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, MOV, in.Kind)
	require.Equal(t, B, in.Dst)
	require.Equal(t, C, in.Reg)
}

func TestDecodeMOVHalt(t *testing.T) {
	in, _, err := Decode([]byte{0x76})
	require.NoError(t, err)
	require.Equal(t, HLT, in.Kind)
}

func TestDecodeLXI(t *testing.T) {
	in, n, err := Decode([]byte{0x21, 0x34, 0x12})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, LXI, in.Kind)
	require.Equal(t, HL, in.Pair)
	require.Equal(t, uint16(0x1234), in.Addr)
}

func TestDecodeMVI(t *testing.T) {
	in, n, err := Decode([]byte{0x3E, 0x42})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, MVI, in.Kind)
	require.Equal(t, A, in.Reg)
	require.Equal(t, byte(0x42), in.Imm8)
}

func TestDecodeALUGroup(t *testing.T) {
	// ADD B = 0x80, CMP A = 0xBF
	in, _, err := Decode([]byte{0x80})
	require.NoError(t, err)
	require.Equal(t, ADD, in.Kind)
	require.Equal(t, B, in.Reg)

	in, _, err = Decode([]byte{0xBF})
	require.NoError(t, err)
	require.Equal(t, CMP, in.Kind)
	require.Equal(t, A, in.Reg)
}

func TestDecodeJumpAndCall(t *testing.T) {
	in, n, err := Decode([]byte{0xC3, 0x00, 0x10})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, JMP, in.Kind)
	require.Equal(t, uint16(0x1000), in.Addr)

	in, _, err = Decode([]byte{0xCD, 0x00, 0x10})
	require.NoError(t, err)
	require.Equal(t, CALL, in.Kind)

	in, _, err = Decode([]byte{0xC2, 0x00, 0x10})
	require.NoError(t, err)
	require.Equal(t, JNZ, in.Kind)
	cc, ok := in.Condition()
	require.True(t, ok)
	require.Equal(t, CondNZ, cc)
}

func TestDecodeRST(t *testing.T) {
	// RST 2 = 11 010 111 = 0xD7
	in, n, err := Decode([]byte{0xD7})
	require.NoError(t, err)
	require.Equal(t, 1, n, "RST carries its vector in the opcode, not a second byte")
	require.Equal(t, RST, in.Kind)
	require.Equal(t, byte(2), in.Imm8)
}

func TestDecodeDocumentedDuplicates(t *testing.T) {
	cases := []struct {
		op   byte
		kind Kind
	}{
		{0x08, NOP}, {0x10, NOP}, {0x18, NOP}, {0x20, NOP},
		{0x28, NOP}, {0x30, NOP}, {0x38, NOP},
		{0xCB, JMP}, {0xD9, RET},
		{0xDD, CALL}, {0xED, CALL}, {0xFD, CALL},
	}
	for _, tc := range cases {
		buf := []byte{tc.op, 0x00, 0x00}
		in, _, err := Decode(buf)
		require.NoError(t, err, "opcode 0x%02X", tc.op)
		require.Equal(t, tc.kind, in.Kind, "opcode 0x%02X", tc.op)
	}
}

func TestDecodeTruncated(t *testing.T) {
	_, _, err := Decode(nil)
	require.ErrorIs(t, err, ErrTruncated)

	_, _, err = Decode([]byte{0x21, 0x01})
	require.ErrorIs(t, err, ErrTruncated)

	_, _, err = Decode([]byte{0x3E})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestOpBytes(t *testing.T) {
	require.Equal(t, 3, Instruction{Kind: LXI}.OpBytes())
	require.Equal(t, 2, Instruction{Kind: MVI}.OpBytes())
	require.Equal(t, 1, Instruction{Kind: RST}.OpBytes())
	require.Equal(t, 1, Instruction{Kind: NOP}.OpBytes())
}
