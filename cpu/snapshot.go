package cpu

// State is a value copy of everything Step can mutate: registers, flags,
// PC/SP, the halt/interrupt latches, and the full memory image. The web
// front-end this project's original source shipped kept a Vec<Cpu> of these
// for step-back debugging; Snapshot/Restore give host.Runner the same
// capability without exposing CPU's unexported fields.
type State struct {
	A, B, C, D, E, H, L byte
	PC, SP              uint16
	Flags               Flags
	Halted              bool
	IntEnable           bool
	Memory              [65536]byte
}

// Snapshot captures the current architectural state by value.
func (c *CPU) Snapshot() State {
	return State{
		A: c.A, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		PC: c.PC, SP: c.SP,
		Flags:     c.Flags,
		Halted:    c.halted,
		IntEnable: c.intEnable,
		Memory:    c.memory,
	}
}

// Restore replaces the CPU's entire state with a previously captured
// snapshot. The bus reference is untouched.
func (c *CPU) Restore(s State) {
	c.A, c.B, c.C, c.D, c.E, c.H, c.L = s.A, s.B, s.C, s.D, s.E, s.H, s.L
	c.PC, c.SP = s.PC, s.SP
	c.Flags = s.Flags
	c.halted = s.Halted
	c.intEnable = s.IntEnable
	c.memory = s.Memory
}
