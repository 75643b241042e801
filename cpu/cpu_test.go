package cpu

import (
	"testing"

	"github.com/go8080/i8080/isa"
	"github.com/stretchr/testify/require"
)

// recordingBus captures OUT writes and answers a fixed byte for IN, for
// scenarios that exercise the bus interfaces.
type recordingBus struct {
	writes []struct{ port, value byte }
	inByte byte
}

func (b *recordingBus) OUT(port, value byte) {
	b.writes = append(b.writes, struct{ port, value byte }{port, value})
}

func (b *recordingBus) IN(port byte) byte { return b.inByte }

func newTestCPU(t *testing.T, program []byte) *CPU {
	t.Helper()
	c := New(nil)
	require.NoError(t, c.LoadIntoMemory(program))
	return c
}

func exec1(t *testing.T, c *CPU, op byte) {
	t.Helper()
	in, _, err := isa.Decode([]byte{op})
	require.NoError(t, err)
	c.execute(in)
}

// Scenario 1: MVI + ADD computes a simple sum and updates ZSP.
func TestScenarioMVIAdd(t *testing.T) {
	c := newTestCPU(t, []byte{
		0x3E, 0x05, // MVI A, 5
		0x06, 0x03, // MVI B, 3
		0x80, // ADD B
	})
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Step())
	}
	require.Equal(t, byte(8), c.A)
	require.False(t, c.Flags.Z)
	require.False(t, c.Flags.CY)
}

// Scenario 2: ADD carrying out of bit 7 sets CY, AC, and Z.
func TestScenarioAddCarry(t *testing.T) {
	c := newTestCPU(t, []byte{
		0x3E, 0xFF, // MVI A, 0xFF
		0x06, 0x01, // MVI B, 1
		0x80, // ADD B
	})
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Step())
	}
	require.Equal(t, byte(0), c.A)
	require.True(t, c.Flags.Z)
	require.True(t, c.Flags.CY)
	require.True(t, c.Flags.AC)
}

// Scenario 3: LXI + STAX writes A through a register pair pointer.
func TestScenarioLXIStax(t *testing.T) {
	c := newTestCPU(t, []byte{
		0x01, 0x00, 0x20, // LXI B, 0x2000
		0x3E, 0x99, // MVI A, 0x99
		0x02, // STAX B
	})
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Step())
	}
	require.Equal(t, byte(0x99), c.Memory()[0x2000])
}

// Scenario 4: PUSH PSW / POP PSW round-trips A and flags through the stack.
func TestScenarioPushPopPSW(t *testing.T) {
	c := newTestCPU(t, []byte{
		0x3E, 0x42, // MVI A, 0x42
		0xB7,       // ORA A (sets flags from A, clears CY/AC)
		0xF5,       // PUSH PSW
		0x3E, 0x00, // MVI A, 0
		0xF1, // POP PSW
	})
	c.SP = 0x2400
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Step())
	}
	require.Equal(t, byte(0x42), c.A)
	require.False(t, c.Flags.Z)
}

// Scenario 5: a taken conditional jump after a zero result.
func TestScenarioConditionalJumpTaken(t *testing.T) {
	c := newTestCPU(t, []byte{
		0x3E, 0x00, // MVI A, 0
		0xB7,             // ORA A -> Z set
		0xCA, 0x00, 0x10, // JZ 0x1000
	})
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Step())
	}
	require.Equal(t, uint16(0x1000), c.PC)
}

// Scenario 6: an injected interrupt behaves like RST n, releasing a
// pending HLT and pushing the return address onto the stack.
func TestScenarioInterruptReleasesHalt(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xFB, // EI
		0x76, // HLT
	})
	require.NoError(t, c.Step()) // EI
	require.NoError(t, c.Step()) // HLT
	require.True(t, c.Halted())

	pcBeforeInterrupt := c.PC
	c.SP = 0x2400
	c.GenerateInterrupt(2) // RST 2 -> 0x0010
	require.False(t, c.Halted())
	require.Equal(t, uint16(0x0010), c.PC)

	lo := c.Memory()[c.SP]
	hi := c.Memory()[c.SP+1]
	require.Equal(t, pcBeforeInterrupt, pack(hi, lo))
}

func TestINXDCXWraparound(t *testing.T) {
	c := newTestCPU(t, nil)
	c.setBC(0xFFFF)
	exec1(t, c, 0x03) // INX B
	require.Equal(t, uint16(0), c.bc())

	c.setBC(0x0000)
	exec1(t, c, 0x0B) // DCX B
	require.Equal(t, uint16(0xFFFF), c.bc())
}

func TestDADSetsCarry(t *testing.T) {
	c := newTestCPU(t, nil)
	c.setHL(0xFFFF)
	c.setBC(0x0001)
	exec1(t, c, 0x09) // DAD B
	require.Equal(t, uint16(0), c.hl())
	require.True(t, c.Flags.CY)
}

func TestRRCExample(t *testing.T) {
	c := newTestCPU(t, nil)
	c.A = 0xF2 // 1111 0010
	exec1(t, c, 0x0F)
	require.Equal(t, byte(0x79), c.A) // 0111 1001
	require.False(t, c.Flags.CY)

	c.A = 0x01
	exec1(t, c, 0x0F)
	require.Equal(t, byte(0x80), c.A)
	require.True(t, c.Flags.CY)
}

func TestDAAExample(t *testing.T) {
	c := newTestCPU(t, nil)
	c.A = 0x9B
	c.Flags.CY = false
	c.Flags.AC = false
	exec1(t, c, 0x27) // DAA
	require.Equal(t, byte(0x01), c.A)
	require.True(t, c.Flags.CY)
	require.True(t, c.Flags.AC)
}

func TestBusOutIn(t *testing.T) {
	bus := &recordingBus{inByte: 0x7A}
	c := New(bus)
	require.NoError(t, c.LoadIntoMemory([]byte{
		0x3E, 0x55, // MVI A, 0x55
		0xD3, 0x01, // OUT 1
		0xDB, 0x02, // IN 2
	}))
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Step())
	}
	require.Equal(t, byte(0x7A), c.A)
	require.Len(t, bus.writes, 1)
	require.Equal(t, byte(1), bus.writes[0].port)
	require.Equal(t, byte(0x55), bus.writes[0].value)
}

func TestStepOnHaltedCPUIsNoop(t *testing.T) {
	c := newTestCPU(t, []byte{0x76, 0x3E, 0x05})
	require.NoError(t, c.Step())
	require.True(t, c.Halted())
	require.NoError(t, c.Step())
	require.Equal(t, byte(0), c.A)
}

func TestStepReturnsBadOpcodeOnTruncatedTrailingInstruction(t *testing.T) {
	// Step decodes from PC to the end of memory, so a truncated operand can
	// only occur in the last bytes of the address space.
	c := newTestCPU(t, nil)
	c.memory[0xFFFE] = 0x21 // LXI H, <missing third byte>
	c.memory[0xFFFF] = 0x00
	c.PC = 0xFFFE
	err := c.Step()
	require.Error(t, err)
	var badOp *BadOpcodeError
	require.ErrorAs(t, err, &badOp)
}

func TestSnapshotRestore(t *testing.T) {
	c := newTestCPU(t, []byte{0x3E, 0x42})
	require.NoError(t, c.Step())
	snap := c.Snapshot()

	c.A = 0x00
	require.NotEqual(t, snap.A, c.A)

	c.Restore(snap)
	require.Equal(t, byte(0x42), c.A)
}
