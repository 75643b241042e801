package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go8080/i8080/host"
	"github.com/go8080/i8080/isa"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step [rom]",
		Short: "interactively single-step a ROM image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := resolveROM(args)
			if err != nil {
				return err
			}
			r := host.New(host.NewOutSink(log))
			if err := r.LoadFile(rom); err != nil {
				return err
			}
			return runInteractiveStepper(r, cfg.breakpointSet())
		},
	}
}

// runInteractiveStepper puts stdin into raw mode and reads single
// keystrokes, the way the teacher's TerminalHost does for its own console.
// space/n steps, b steps back, c continues to the next breakpoint (or
// halt), i<digit> injects an interrupt, q quits.
func runInteractiveStepper(r *host.Runner, breakpoints map[uint16]bool) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("step: entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	printState(r, breakpoints)
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return err
		}
		switch buf[0] {
		case ' ', 'n':
			if err := r.Step(); err != nil {
				term.Restore(fd, oldState)
				fmt.Printf("\r\nstep error: %v\r\n", err)
				return nil
			}
			printState(r, breakpoints)
		case 'c':
			runToBreakpoint(r, breakpoints)
			printState(r, breakpoints)
		case 'b':
			if !r.StepBack() {
				fmt.Print("\r\nno earlier state\r\n")
			}
			printState(r, breakpoints)
		case 'i':
			vec, err := readInterruptVector(fd)
			if err == nil {
				r.Interrupt(vec)
				printState(r, breakpoints)
			}
		case 'q':
			fmt.Print("\r\n")
			return nil
		}
	}
}

// runToBreakpoint steps until the CPU halts or its PC lands on one of
// breakpoints, whichever comes first. An empty breakpoint set runs to halt.
func runToBreakpoint(r *host.Runner, breakpoints map[uint16]bool) {
	for !r.CPU().Halted() {
		if err := r.Step(); err != nil {
			fmt.Printf("\r\nstep error: %v\r\n", err)
			return
		}
		if breakpoints[r.CPU().PC] {
			return
		}
	}
}

func readInterruptVector(fd int) (byte, error) {
	buf := make([]byte, 1)
	if _, err := os.Stdin.Read(buf); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(string(buf))
	if err != nil || n < 0 || n > 7 {
		return 0, fmt.Errorf("invalid interrupt vector")
	}
	return byte(n), nil
}

func printState(r *host.Runner, breakpoints map[uint16]bool) {
	c := r.CPU()
	mem := c.Memory()
	in, _, _ := isa.Decode(mem[c.PC:])
	marker := "  "
	if breakpoints[c.PC] {
		marker = "* "
	}
	fmt.Printf("\r\n%sPC=0x%04X %-16s A=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X Z=%v S=%v CY=%v halted=%v\r\n",
		marker, c.PC, in.String(), c.A, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.Flags.Z, c.Flags.S, c.Flags.CY, c.Halted())
}
